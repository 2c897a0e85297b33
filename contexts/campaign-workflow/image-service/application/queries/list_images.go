package queries

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

// campaignVisible applies campaign read scope for image access: images are
// as visible as the campaign they belong to.
func campaignVisible(ctx context.Context, p identity.Principal, campaign ports.CampaignSummary, assignments ports.AssignmentChecker, clock ports.Clock) (bool, error) {
	assigned := false
	if p.Role == identity.RoleContractor {
		var err error
		assigned, err = assignments.IsAssigned(ctx, campaign.CampaignID, p.ID)
		if err != nil {
			return false, err
		}
	}
	if !policy.CanReadCampaign(p, campaign.CompanyID, assigned) {
		return false, nil
	}
	if p.Role == identity.RoleClient && campaign.Status == "completed" {
		if !policy.ClientCompletedCampaignVisible(campaign.StartDate, campaign.CompletedAt, clock.Now()) {
			return false, nil
		}
	}
	return true, nil
}

type ListImagesQuery struct {
	Status string
	Limit  int
	Offset int
}

type ListImagesUseCase struct {
	Images      ports.ImageRepository
	Campaigns   ports.CampaignReader
	Assignments ports.AssignmentChecker
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute lists a campaign's images for anyone who may read the campaign.
func (uc ListImagesUseCase) Execute(ctx context.Context, p identity.Principal, campaignID string, query ListImagesQuery) ([]entities.Image, error) {
	campaign, found, err := uc.Campaigns.FindCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrCampaignNotFound
	}

	visible, err := campaignVisible(ctx, p, campaign, uc.Assignments, uc.Clock)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, policyerrors.Denied("image.list", campaign.CampaignID)
	}

	filter := ports.ImageFilter{
		CampaignID: campaign.CampaignID,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := entities.ImageStatus(raw)
		if !status.Valid() {
			return nil, domainerrors.ErrInvalidImageInput
		}
		filter.Status = status
	}
	return uc.Images.ListImages(ctx, filter)
}

type ListImagesByUploaderUseCase struct {
	Images ports.ImageRepository
	Logger *slog.Logger
}

// Execute lists one uploader's images. Employees see anyone's; everyone else
// only their own.
func (uc ListImagesByUploaderUseCase) Execute(ctx context.Context, p identity.Principal, uploaderID string) ([]entities.Image, error) {
	uploaderID = strings.TrimSpace(uploaderID)
	if p.Role != identity.RoleCompanyEmployee && p.ID != uploaderID {
		return nil, policyerrors.Denied("image.list_by_uploader", uploaderID)
	}
	return uc.Images.ListImages(ctx, ports.ImageFilter{UploaderID: uploaderID})
}
