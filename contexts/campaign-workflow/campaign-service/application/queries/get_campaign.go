package queries

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type GetCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, p identity.Principal, campaignID string) (entities.Campaign, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return entities.Campaign{}, err
	}

	assigned := false
	if p.Role == identity.RoleContractor {
		_, assigned, err = uc.Assignments.GetAssignment(ctx, campaign.CampaignID, p.ID)
		if err != nil {
			return entities.Campaign{}, err
		}
	}
	if !policy.CanReadCampaign(p, campaign.CompanyID, assigned) {
		return entities.Campaign{}, policyerrors.Denied("campaign.read", campaign.CampaignID)
	}

	// The client recency rule applies on direct reads too, not only lists.
	if p.Role == identity.RoleClient && campaign.Status == entities.CampaignStatusCompleted {
		if !policy.ClientCompletedCampaignVisible(campaign.StartDate, campaign.CompletedAt, uc.Clock.Now()) {
			return entities.Campaign{}, policyerrors.Denied("campaign.read", campaign.CampaignID)
		}
	}
	return campaign, nil
}
