package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/application"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

// UpdateCampaignCommand patches mutable fields. Status is deliberately not
// patchable here; status changes go through TransitionStatus so the state
// machine stays centralized. CompanyID is immutable after creation.
type UpdateCampaignCommand struct {
	Principal   identity.Principal
	CampaignID  string
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanMutateCampaign(cmd.Principal) {
		return entities.Campaign{}, policyerrors.Denied("campaign.update", cmd.CampaignID)
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}

	if cmd.Name != nil {
		campaign.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		campaign.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.StartDate != nil {
		campaign.StartDate = cmd.StartDate
	}
	if cmd.EndDate != nil {
		campaign.EndDate = cmd.EndDate
	}
	if !campaign.ValidateCreate() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign updated",
		"event", "campaign_updated",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return campaign, nil
}
