package queries

import (
	"context"
	"log/slog"
	"strings"

	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
	domainerrors "fieldproof/contexts/reporting/reporting-service/domain/errors"
	"fieldproof/contexts/reporting/reporting-service/ports"
)

// CampaignProgress reports how far a campaign's evidence has moved through
// review. ProgressPercent is approved over total; an imageless campaign is
// zero percent, never a division error.
type CampaignProgress struct {
	CampaignID      string  `json:"campaign_id"`
	TotalImages     int     `json:"total_images"`
	PendingImages   int     `json:"pending_images"`
	ApprovedImages  int     `json:"approved_images"`
	RejectedImages  int     `json:"rejected_images"`
	ProgressPercent float64 `json:"progress_percent"`
}

type CampaignProgressUseCase struct {
	Campaigns   ports.CampaignSource
	Images      ports.ImageSource
	Assignments ports.AssignmentSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute computes progress for anyone allowed to read the campaign, under
// the same scope rules as a direct campaign read.
func (uc CampaignProgressUseCase) Execute(ctx context.Context, p identity.Principal, campaignID string) (CampaignProgress, error) {
	campaign, found, err := uc.Campaigns.FindCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return CampaignProgress{}, err
	}
	if !found {
		return CampaignProgress{}, domainerrors.ErrCampaignNotFound
	}

	assigned := false
	if p.Role == identity.RoleContractor {
		assigned, err = uc.Assignments.IsAssigned(ctx, campaign.CampaignID, p.ID)
		if err != nil {
			return CampaignProgress{}, err
		}
	}
	if !policy.CanReadCampaign(p, campaign.CompanyID, assigned) {
		return CampaignProgress{}, policyerrors.Denied("report.campaign_progress", campaign.CampaignID)
	}
	if p.Role == identity.RoleClient && campaign.Status == "completed" {
		if !policy.ClientCompletedCampaignVisible(campaign.StartDate, campaign.CompletedAt, uc.Clock.Now()) {
			return CampaignProgress{}, policyerrors.Denied("report.campaign_progress", campaign.CampaignID)
		}
	}

	counts, err := uc.Images.CountCampaignImages(ctx, campaign.CampaignID)
	if err != nil {
		return CampaignProgress{}, err
	}

	progress := CampaignProgress{
		CampaignID:     campaign.CampaignID,
		TotalImages:    counts.Total,
		PendingImages:  counts.Pending,
		ApprovedImages: counts.Approved,
		RejectedImages: counts.Rejected,
	}
	if counts.Total > 0 {
		progress.ProgressPercent = float64(counts.Approved) / float64(counts.Total) * 100
	}
	return progress, nil
}
