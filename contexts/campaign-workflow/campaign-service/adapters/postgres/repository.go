package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.CompanyID) != "" {
		tx = tx.Where("company_id = ?", strings.TrimSpace(filter.CompanyID))
	}
	if filter.CampaignIDs != nil {
		if len(filter.CampaignIDs) == 0 {
			return []entities.Campaign{}, nil
		}
		tx = tx.Where("campaign_id IN ?", filter.CampaignIDs)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}
	if filter.StartedAfter != nil {
		tx = tx.Where("start_date >= ?", filter.StartedAfter.UTC())
	}
	if filter.StartedBefore != nil {
		tx = tx.Where("start_date <= ?", filter.StartedBefore.UTC())
	}
	if filter.ClientCompletedCutoff != nil {
		tx = tx.Where(
			"status <> ? OR COALESCE(start_date, completed_at) > ?",
			string(entities.CampaignStatusCompleted),
			filter.ClientCompletedCutoff.UTC(),
		)
	}

	switch filter.Sort {
	case ports.SortNameAsc:
		tx = tx.Order("name ASC")
	case ports.SortCreatedAsc:
		tx = tx.Order("created_at ASC")
	default:
		tx = tx.Order("created_at DESC")
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []campaignModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaign.CampaignID)).
		Updates(map[string]any{
			"name":        strings.TrimSpace(campaign.Name),
			"description": strings.TrimSpace(campaign.Description),
			"start_date":  timePtrUTC(campaign.StartDate),
			"end_date":    timePtrUTC(campaign.EndDate),
			"updated_at":  campaign.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

// UpdateCampaignStatus is the status compare-and-set: the WHERE clause pins
// the expected current status, so of two racing transitions exactly one
// write lands and the loser observes zero affected rows.
func (r *Repository) UpdateCampaignStatus(ctx context.Context, campaignID string, from, to entities.CampaignStatus, completedAt *time.Time, now time.Time) (entities.Campaign, error) {
	id := strings.TrimSpace(campaignID)
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":       string(to),
			"completed_at": timePtrUTC(completedAt),
			"updated_at":   now.UTC(),
		})
	if result.Error != nil {
		return entities.Campaign{}, result.Error
	}
	if result.RowsAffected == 0 {
		var row campaignModel
		err := r.db.WithContext(ctx).
			Where("campaign_id = ?", id).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		if err != nil {
			return entities.Campaign{}, err
		}
		return entities.Campaign{}, domainerrors.InvalidTransition(row.Status, string(to))
	}
	return r.GetCampaign(ctx, id)
}

func (r *Repository) DeleteCampaign(ctx context.Context, campaignID string) (bool, error) {
	id := strings.TrimSpace(campaignID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&assignmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("campaign_id = ?", id).Delete(&campaignModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateAssignment relies on the (campaign_id, contractor_id) primary key:
// concurrent duplicates resolve to one row and the loser sees a conflict.
func (r *Repository) CreateAssignment(ctx context.Context, assignment entities.Assignment) error {
	row := assignmentModel{
		CampaignID:   strings.TrimSpace(assignment.CampaignID),
		ContractorID: strings.TrimSpace(assignment.ContractorID),
		AssignedAt:   assignment.AssignedAt.UTC(),
		AssignedBy:   strings.TrimSpace(assignment.AssignedBy),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "contractor_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAssignmentConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAssignmentConflict
	}
	return nil
}

func (r *Repository) GetAssignment(ctx context.Context, campaignID, contractorID string) (entities.Assignment, bool, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND contractor_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(contractorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Assignment{}, false, nil
		}
		return entities.Assignment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListAssignmentsByCampaign(ctx context.Context, campaignID string) ([]entities.Assignment, error) {
	var rows []assignmentModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("assigned_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Assignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListCampaignIDsByContractor(ctx context.Context, contractorID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&assignmentModel{}).
		Where("contractor_id = ?", strings.TrimSpace(contractorID)).
		Order("campaign_id ASC").
		Pluck("campaign_id", &ids).
		Error; err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *Repository) DeleteAssignment(ctx context.Context, campaignID, contractorID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("campaign_id = ? AND contractor_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(contractorID)).
		Delete(&assignmentModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type campaignModel struct {
	CampaignID  string     `gorm:"column:campaign_id;primaryKey"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	CompanyID   string     `gorm:"column:company_id"`
	Status      string     `gorm:"column:status"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedBy   string     `gorm:"column:created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type assignmentModel struct {
	CampaignID   string    `gorm:"column:campaign_id;primaryKey"`
	ContractorID string    `gorm:"column:contractor_id;primaryKey"`
	AssignedAt   time.Time `gorm:"column:assigned_at"`
	AssignedBy   string    `gorm:"column:assigned_by"`
}

func (assignmentModel) TableName() string { return "contractor_assignments" }

func campaignModelFromEntity(campaign entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:  strings.TrimSpace(campaign.CampaignID),
		Name:        strings.TrimSpace(campaign.Name),
		Description: strings.TrimSpace(campaign.Description),
		CompanyID:   strings.TrimSpace(campaign.CompanyID),
		Status:      string(campaign.Status),
		StartDate:   timePtrUTC(campaign.StartDate),
		EndDate:     timePtrUTC(campaign.EndDate),
		CompletedAt: timePtrUTC(campaign.CompletedAt),
		CreatedBy:   strings.TrimSpace(campaign.CreatedBy),
		CreatedAt:   campaign.CreatedAt.UTC(),
		UpdatedAt:   campaign.UpdatedAt.UTC(),
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:  m.CampaignID,
		Name:        m.Name,
		Description: m.Description,
		CompanyID:   m.CompanyID,
		Status:      entities.CampaignStatus(m.Status),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CompletedAt: m.CompletedAt,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (m assignmentModel) toEntity() entities.Assignment {
	return entities.Assignment{
		CampaignID:   m.CampaignID,
		ContractorID: m.ContractorID,
		AssignedAt:   m.AssignedAt.UTC(),
		AssignedBy:   m.AssignedBy,
	}
}

func timePtrUTC(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
