package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateImage(ctx context.Context, img entities.Image) error {
	row := imageModelFromEntity(img)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetImage(ctx context.Context, imageID string) (entities.Image, error) {
	var row imageModel
	err := r.db.WithContext(ctx).
		Where("image_id = ?", strings.TrimSpace(imageID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Image{}, domainerrors.ErrImageNotFound
		}
		return entities.Image{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListImages(ctx context.Context, filter ports.ImageFilter) ([]entities.Image, error) {
	tx := r.db.WithContext(ctx).Model(&imageModel{})
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if strings.TrimSpace(filter.UploaderID) != "" {
		tx = tx.Where("uploader_id = ?", strings.TrimSpace(filter.UploaderID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	tx = tx.Order("uploaded_at DESC, image_id ASC")
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []imageModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Image, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ReviewImage is the review compare-and-set: the WHERE clause pins pending,
// so of two racing reviews exactly one write lands and the loser observes
// zero affected rows.
func (r *Repository) ReviewImage(ctx context.Context, imageID string, decision entities.ImageStatus, reason string, reviewerID string, now time.Time) (entities.Image, error) {
	id := strings.TrimSpace(imageID)
	reviewedAt := now.UTC()
	result := r.db.WithContext(ctx).
		Model(&imageModel{}).
		Where("image_id = ? AND status = ?", id, string(entities.ImageStatusPending)).
		Updates(map[string]any{
			"status":           string(decision),
			"rejection_reason": reason,
			"reviewed_by":      reviewerID,
			"reviewed_at":      reviewedAt,
			"updated_at":       reviewedAt,
		})
	if result.Error != nil {
		return entities.Image{}, result.Error
	}
	if result.RowsAffected == 0 {
		var row imageModel
		err := r.db.WithContext(ctx).
			Where("image_id = ?", id).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Image{}, domainerrors.ErrImageNotFound
		}
		if err != nil {
			return entities.Image{}, err
		}
		return entities.Image{}, domainerrors.ErrInvalidState
	}
	return r.GetImage(ctx, id)
}

func (r *Repository) DeleteImage(ctx context.Context, imageID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("image_id = ?", strings.TrimSpace(imageID)).
		Delete(&imageModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type imageModel struct {
	ImageID         string     `gorm:"column:image_id;primaryKey"`
	CampaignID      string     `gorm:"column:campaign_id"`
	UploaderID      string     `gorm:"column:uploader_id"`
	FileName        string     `gorm:"column:file_name"`
	ContentType     string     `gorm:"column:content_type"`
	SizeBytes       int64      `gorm:"column:size_bytes"`
	StorageKey      string     `gorm:"column:storage_key"`
	Status          string     `gorm:"column:status"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	ReviewedBy      *string    `gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	UploadedAt      time.Time  `gorm:"column:uploaded_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (imageModel) TableName() string { return "campaign_images" }

func imageModelFromEntity(img entities.Image) imageModel {
	return imageModel{
		ImageID:         strings.TrimSpace(img.ImageID),
		CampaignID:      strings.TrimSpace(img.CampaignID),
		UploaderID:      strings.TrimSpace(img.UploaderID),
		FileName:        strings.TrimSpace(img.FileName),
		ContentType:     strings.TrimSpace(img.ContentType),
		SizeBytes:       img.SizeBytes,
		StorageKey:      strings.TrimSpace(img.StorageKey),
		Status:          string(img.Status),
		RejectionReason: strings.TrimSpace(img.RejectionReason),
		ReviewedBy:      img.ReviewedBy,
		ReviewedAt:      timePtrUTC(img.ReviewedAt),
		UploadedAt:      img.UploadedAt.UTC(),
		UpdatedAt:       img.UpdatedAt.UTC(),
	}
}

func (m imageModel) toEntity() entities.Image {
	return entities.Image{
		ImageID:         m.ImageID,
		CampaignID:      m.CampaignID,
		UploaderID:      m.UploaderID,
		FileName:        m.FileName,
		ContentType:     m.ContentType,
		SizeBytes:       m.SizeBytes,
		StorageKey:      m.StorageKey,
		Status:          entities.ImageStatus(m.Status),
		RejectionReason: m.RejectionReason,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		UploadedAt:      m.UploadedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func timePtrUTC(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
