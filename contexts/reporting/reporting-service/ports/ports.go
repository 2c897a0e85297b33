package ports

import (
	"context"
	"time"
)

// CampaignInfo is the campaign state reporting needs: status for counting
// and the visibility fields for scoping progress reads.
type CampaignInfo struct {
	CampaignID  string
	CompanyID   string
	Status      string
	StartDate   *time.Time
	CompletedAt *time.Time
}

// CampaignSource reads campaign state from the owning service.
type CampaignSource interface {
	FindCampaign(ctx context.Context, campaignID string) (CampaignInfo, bool, error)
	ListCampaignInfos(ctx context.Context) ([]CampaignInfo, error)
}

// ImageCounts is a per-status tally of images within one scope.
type ImageCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// ImageSource reads image tallies from the owning service.
type ImageSource interface {
	CountCampaignImages(ctx context.Context, campaignID string) (ImageCounts, error)
	CountUploaderImages(ctx context.Context, uploaderID string) (ImageCounts, error)
}

// AssignmentSource answers contractor-campaign membership for scoping.
type AssignmentSource interface {
	IsAssigned(ctx context.Context, campaignID string, contractorID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}
