package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"

	"github.com/google/uuid"
)

type assignmentKey struct {
	campaignID   string
	contractorID string
}

type Store struct {
	mu sync.RWMutex

	campaigns   map[string]entities.Campaign
	assignments map[assignmentKey]entities.Assignment
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:   campaigns,
		assignments: make(map[assignmentKey]entities.Assignment),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed map[string]bool
	if filter.CampaignIDs != nil {
		allowed = make(map[string]bool, len(filter.CampaignIDs))
		for _, id := range filter.CampaignIDs {
			allowed[id] = true
		}
	}

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.CompanyID != "" && campaign.CompanyID != filter.CompanyID {
			continue
		}
		if allowed != nil && !allowed[campaign.CampaignID] {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(campaign.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.StartedAfter != nil && (campaign.StartDate == nil || campaign.StartDate.Before(*filter.StartedAfter)) {
			continue
		}
		if filter.StartedBefore != nil && (campaign.StartDate == nil || campaign.StartDate.After(*filter.StartedBefore)) {
			continue
		}
		if filter.ClientCompletedCutoff != nil && campaign.Status == entities.CampaignStatusCompleted {
			marker := campaign.StartDate
			if marker == nil {
				marker = campaign.CompletedAt
			}
			if marker == nil || !marker.After(*filter.ClientCompletedCutoff) {
				continue
			}
		}
		items = append(items, campaign)
	}

	switch filter.Sort {
	case ports.SortNameAsc:
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case ports.SortCreatedAsc:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	default:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []entities.Campaign{}, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.campaigns[campaign.CampaignID]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	// Status and company are not writable through this path.
	campaign.Status = existing.Status
	campaign.CompletedAt = existing.CompletedAt
	campaign.CompanyID = existing.CompanyID
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaignStatus(_ context.Context, campaignID string, from, to entities.CampaignStatus, completedAt *time.Time, now time.Time) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	if campaign.Status != from {
		return entities.Campaign{}, domainerrors.InvalidTransition(string(campaign.Status), string(to))
	}
	campaign.Status = to
	campaign.CompletedAt = completedAt
	campaign.UpdatedAt = now
	s.campaigns[campaign.CampaignID] = campaign
	return campaign, nil
}

func (s *Store) DeleteCampaign(_ context.Context, campaignID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(campaignID)
	if _, exists := s.campaigns[id]; !exists {
		return false, nil
	}
	delete(s.campaigns, id)
	for key := range s.assignments {
		if key.campaignID == id {
			delete(s.assignments, key)
		}
	}
	return true, nil
}

func (s *Store) CreateAssignment(_ context.Context, assignment entities.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignmentKey{assignment.CampaignID, assignment.ContractorID}
	if _, exists := s.assignments[key]; exists {
		return domainerrors.ErrAssignmentConflict
	}
	s.assignments[key] = assignment
	return nil
}

func (s *Store) GetAssignment(_ context.Context, campaignID, contractorID string) (entities.Assignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.assignments[assignmentKey{strings.TrimSpace(campaignID), strings.TrimSpace(contractorID)}]
	return item, exists, nil
}

func (s *Store) ListAssignmentsByCampaign(_ context.Context, campaignID string) ([]entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Assignment, 0)
	for key, item := range s.assignments {
		if key.campaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AssignedAt.Before(items[j].AssignedAt) })
	return items, nil
}

func (s *Store) ListCampaignIDsByContractor(_ context.Context, contractorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for key := range s.assignments {
		if key.contractorID == strings.TrimSpace(contractorID) {
			ids = append(ids, key.campaignID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) DeleteAssignment(_ context.Context, campaignID, contractorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignmentKey{strings.TrimSpace(campaignID), strings.TrimSpace(contractorID)}
	if _, exists := s.assignments[key]; !exists {
		return false, nil
	}
	delete(s.assignments, key)
	return true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
