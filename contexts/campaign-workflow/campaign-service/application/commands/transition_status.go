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

type TransitionStatusCommand struct {
	Principal  identity.Principal
	CampaignID string
	NewStatus  entities.CampaignStatus
}

type TransitionStatusUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute validates role, existence, then the transition table, and writes
// through the repository's compare-and-set so two racing transitions cannot
// both land. Entering completed stamps CompletedAt in the same write; every
// other target clears it.
func (uc TransitionStatusUseCase) Execute(ctx context.Context, cmd TransitionStatusCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanTransitionCampaign(cmd.Principal) {
		return entities.Campaign{}, policyerrors.Denied("campaign.transition", cmd.CampaignID)
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if !cmd.NewStatus.Valid() || !entities.CanTransition(campaign.Status, cmd.NewStatus) {
		return entities.Campaign{}, domainerrors.InvalidTransition(string(campaign.Status), string(cmd.NewStatus))
	}

	now := uc.Clock.Now().UTC()
	var completedAt *time.Time
	if cmd.NewStatus == entities.CampaignStatusCompleted {
		completedAt = &now
	}

	updated, err := uc.Campaigns.UpdateCampaignStatus(ctx, campaign.CampaignID, campaign.Status, cmd.NewStatus, completedAt, now)
	if err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"campaign_id", updated.CampaignID,
		"from_status", string(campaign.Status),
		"to_status", string(updated.Status),
		"changed_by", cmd.Principal.ID,
	)
	return updated, nil
}
