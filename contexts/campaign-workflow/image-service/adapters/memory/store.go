package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
)

type assignmentKey struct {
	campaignID   string
	contractorID string
}

// Store keeps images in memory together with seeded campaign summaries and
// assignment pairs, so the service runs standalone in tests and demos.
type Store struct {
	mu sync.RWMutex

	images      map[string]entities.Image
	campaigns   map[string]ports.CampaignSummary
	assignments map[assignmentKey]bool
}

func NewStore(campaigns []ports.CampaignSummary) *Store {
	seeded := make(map[string]ports.CampaignSummary, len(campaigns))
	for _, c := range campaigns {
		seeded[c.CampaignID] = c
	}
	return &Store{
		images:      make(map[string]entities.Image),
		campaigns:   seeded,
		assignments: make(map[assignmentKey]bool),
	}
}

// SeedAssignment registers a contractor-campaign pair for IsAssigned.
func (s *Store) SeedAssignment(campaignID string, contractorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignmentKey{campaignID, contractorID}] = true
}

// SeedCampaign registers or replaces a campaign summary.
func (s *Store) SeedCampaign(campaign ports.CampaignSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.CampaignID] = campaign
}

func (s *Store) CreateImage(ctx context.Context, img entities.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[img.ImageID] = img
	return nil
}

func (s *Store) GetImage(ctx context.Context, imageID string) (entities.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[imageID]
	if !ok {
		return entities.Image{}, domainerrors.ErrImageNotFound
	}
	return img, nil
}

func (s *Store) ListImages(ctx context.Context, filter ports.ImageFilter) ([]entities.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Image, 0, len(s.images))
	for _, img := range s.images {
		if filter.CampaignID != "" && img.CampaignID != filter.CampaignID {
			continue
		}
		if filter.UploaderID != "" && img.UploaderID != filter.UploaderID {
			continue
		}
		if filter.Status != "" && img.Status != filter.Status {
			continue
		}
		items = append(items, img)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].UploadedAt.Equal(items[j].UploadedAt) {
			return items[i].ImageID < items[j].ImageID
		}
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []entities.Image{}, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

// ReviewImage is the compare-and-set: the write happens only while the image
// is still pending, so the second of two racing reviews loses.
func (s *Store) ReviewImage(ctx context.Context, imageID string, decision entities.ImageStatus, reason string, reviewerID string, now time.Time) (entities.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[imageID]
	if !ok {
		return entities.Image{}, domainerrors.ErrImageNotFound
	}
	if img.Status != entities.ImageStatusPending {
		return entities.Image{}, domainerrors.ErrInvalidState
	}

	reviewedAt := now.UTC()
	img.Status = decision
	img.RejectionReason = ""
	if decision == entities.ImageStatusRejected {
		img.RejectionReason = reason
	}
	img.ReviewedBy = &reviewerID
	img.ReviewedAt = &reviewedAt
	img.UpdatedAt = reviewedAt
	s.images[imageID] = img
	return img, nil
}

func (s *Store) DeleteImage(ctx context.Context, imageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[imageID]; !ok {
		return false, nil
	}
	delete(s.images, imageID)
	return true, nil
}

func (s *Store) FindCampaign(ctx context.Context, campaignID string) (ports.CampaignSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[campaignID]
	return campaign, ok, nil
}

func (s *Store) IsAssigned(ctx context.Context, campaignID string, contractorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments[assignmentKey{campaignID, contractorID}], nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.ImageRepository = (*Store)(nil)
var _ ports.CampaignReader = (*Store)(nil)
var _ ports.AssignmentChecker = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
