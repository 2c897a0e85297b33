package ports

import (
	"context"
	"io"
	"time"

	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
)

// ImageFilter narrows listings. CampaignID and UploaderID are exact matches;
// Status empty means every status.
type ImageFilter struct {
	CampaignID string
	UploaderID string
	Status     entities.ImageStatus
	Limit      int
	Offset     int
}

// ImageRepository persists image records.
//
// ReviewImage is the compare-and-set review write: it moves the image out of
// pending in a single conditional write. Implementations must fail with
// domainerrors.ErrInvalidState when the image already left pending, so two
// racing reviewers cannot both win, and ErrImageNotFound when the image does
// not exist.
type ImageRepository interface {
	CreateImage(ctx context.Context, img entities.Image) error
	GetImage(ctx context.Context, imageID string) (entities.Image, error)
	ListImages(ctx context.Context, filter ImageFilter) ([]entities.Image, error)
	ReviewImage(ctx context.Context, imageID string, decision entities.ImageStatus, reason string, reviewerID string, now time.Time) (entities.Image, error)
	// DeleteImage reports whether a record was removed. Deleting an absent
	// image is a false result, not an error.
	DeleteImage(ctx context.Context, imageID string) (bool, error)
}

// CampaignSummary is the slice of campaign state this service needs: enough
// to check existence, ownership and openness without importing the campaign
// service's domain.
type CampaignSummary struct {
	CampaignID  string
	CompanyID   string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	CompletedAt *time.Time
}

// CampaignReader resolves campaigns owned by campaign-service. The bool is
// false when the campaign does not exist.
type CampaignReader interface {
	FindCampaign(ctx context.Context, campaignID string) (CampaignSummary, bool, error)
}

// AssignmentChecker answers whether a contractor is assigned to a campaign.
type AssignmentChecker interface {
	IsAssigned(ctx context.Context, campaignID string, contractorID string) (bool, error)
}

// FileUpload carries the incoming blob and its client-declared metadata.
type FileUpload struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

// StoredFile describes where the blob landed and what the store measured.
type StoredFile struct {
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

// FileStore accepts or refuses image content. Implementations enforce size
// and content-type limits and fail with domainerrors.ErrFileRejected.
type FileStore interface {
	Store(ctx context.Context, upload FileUpload) (StoredFile, error)
	Remove(ctx context.Context, storageKey string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
