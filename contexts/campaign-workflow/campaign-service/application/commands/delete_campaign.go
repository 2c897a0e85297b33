package commands

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/campaign-service/application"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type DeleteCampaignCommand struct {
	Principal  identity.Principal
	CampaignID string
}

type DeleteCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

// Execute deletes regardless of status. The result reports whether a row
// was removed; deleting an already-gone campaign is a false result, not an
// error.
func (uc DeleteCampaignUseCase) Execute(ctx context.Context, cmd DeleteCampaignCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanMutateCampaign(cmd.Principal) {
		return false, policyerrors.Denied("campaign.delete", cmd.CampaignID)
	}

	deleted, err := uc.Campaigns.DeleteCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info("campaign deleted",
			"event", "campaign_deleted",
			"module", "campaign-workflow/campaign-service",
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"deleted_by", cmd.Principal.ID,
		)
	}
	return deleted, nil
}
