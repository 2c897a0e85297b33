package bootstrap

import (
	"context"
	"errors"

	campaignerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	campaignports "fieldproof/contexts/campaign-workflow/campaign-service/ports"
	imageports "fieldproof/contexts/campaign-workflow/image-service/ports"
	reportports "fieldproof/contexts/reporting/reporting-service/ports"
)

// The cross-service read ports are satisfied here, in the composition root,
// by thin adapters over the owning repositories. Services stay decoupled;
// only bootstrap knows both sides.

type campaignReader struct {
	campaigns campaignports.CampaignRepository
}

func (a campaignReader) FindCampaign(ctx context.Context, campaignID string) (imageports.CampaignSummary, bool, error) {
	campaign, err := a.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, campaignerrors.ErrCampaignNotFound) {
			return imageports.CampaignSummary{}, false, nil
		}
		return imageports.CampaignSummary{}, false, err
	}
	return imageports.CampaignSummary{
		CampaignID:  campaign.CampaignID,
		CompanyID:   campaign.CompanyID,
		Status:      string(campaign.Status),
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		CompletedAt: campaign.CompletedAt,
	}, true, nil
}

type assignmentChecker struct {
	assignments campaignports.AssignmentRepository
}

func (a assignmentChecker) IsAssigned(ctx context.Context, campaignID string, contractorID string) (bool, error) {
	_, found, err := a.assignments.GetAssignment(ctx, campaignID, contractorID)
	return found, err
}

type reportCampaignSource struct {
	campaigns campaignports.CampaignRepository
}

func (a reportCampaignSource) FindCampaign(ctx context.Context, campaignID string) (reportports.CampaignInfo, bool, error) {
	campaign, err := a.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, campaignerrors.ErrCampaignNotFound) {
			return reportports.CampaignInfo{}, false, nil
		}
		return reportports.CampaignInfo{}, false, err
	}
	return reportports.CampaignInfo{
		CampaignID:  campaign.CampaignID,
		CompanyID:   campaign.CompanyID,
		Status:      string(campaign.Status),
		StartDate:   campaign.StartDate,
		CompletedAt: campaign.CompletedAt,
	}, true, nil
}

func (a reportCampaignSource) ListCampaignInfos(ctx context.Context) ([]reportports.CampaignInfo, error) {
	campaigns, err := a.campaigns.ListCampaigns(ctx, campaignports.CampaignFilter{})
	if err != nil {
		return nil, err
	}
	infos := make([]reportports.CampaignInfo, 0, len(campaigns))
	for _, campaign := range campaigns {
		infos = append(infos, reportports.CampaignInfo{
			CampaignID:  campaign.CampaignID,
			CompanyID:   campaign.CompanyID,
			Status:      string(campaign.Status),
			StartDate:   campaign.StartDate,
			CompletedAt: campaign.CompletedAt,
		})
	}
	return infos, nil
}

type reportImageSource struct {
	images imageports.ImageRepository
}

func (a reportImageSource) CountCampaignImages(ctx context.Context, campaignID string) (reportports.ImageCounts, error) {
	return a.count(ctx, imageports.ImageFilter{CampaignID: campaignID})
}

func (a reportImageSource) CountUploaderImages(ctx context.Context, uploaderID string) (reportports.ImageCounts, error) {
	return a.count(ctx, imageports.ImageFilter{UploaderID: uploaderID})
}

func (a reportImageSource) count(ctx context.Context, filter imageports.ImageFilter) (reportports.ImageCounts, error) {
	images, err := a.images.ListImages(ctx, filter)
	if err != nil {
		return reportports.ImageCounts{}, err
	}
	var counts reportports.ImageCounts
	for _, img := range images {
		counts.Total++
		switch string(img.Status) {
		case "pending":
			counts.Pending++
		case "approved":
			counts.Approved++
		case "rejected":
			counts.Rejected++
		}
	}
	return counts, nil
}
