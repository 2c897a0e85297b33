package memory

import (
	"context"
	"sync"
	"time"

	"fieldproof/contexts/reporting/reporting-service/ports"
)

type assignmentKey struct {
	campaignID   string
	contractorID string
}

type imageRecord struct {
	campaignID string
	uploaderID string
	status     string
}

// Store is a seedable source set for standalone runs and tests. In the
// wired application the sources are backed by the owning services instead.
type Store struct {
	mu sync.RWMutex

	campaigns   map[string]ports.CampaignInfo
	images      map[string]imageRecord
	assignments map[assignmentKey]bool
}

func NewStore(campaigns []ports.CampaignInfo) *Store {
	seeded := make(map[string]ports.CampaignInfo, len(campaigns))
	for _, c := range campaigns {
		seeded[c.CampaignID] = c
	}
	return &Store{
		campaigns:   seeded,
		images:      make(map[string]imageRecord),
		assignments: make(map[assignmentKey]bool),
	}
}

func (s *Store) SeedImage(imageID, campaignID, uploaderID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[imageID] = imageRecord{campaignID: campaignID, uploaderID: uploaderID, status: status}
}

func (s *Store) SeedAssignment(campaignID, contractorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignmentKey{campaignID, contractorID}] = true
}

func (s *Store) FindCampaign(ctx context.Context, campaignID string) (ports.CampaignInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.campaigns[campaignID]
	return info, ok, nil
}

func (s *Store) ListCampaignInfos(ctx context.Context) ([]ports.CampaignInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]ports.CampaignInfo, 0, len(s.campaigns))
	for _, info := range s.campaigns {
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *Store) CountCampaignImages(ctx context.Context, campaignID string) (ports.ImageCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts ports.ImageCounts
	for _, img := range s.images {
		if img.campaignID != campaignID {
			continue
		}
		tally(&counts, img.status)
	}
	return counts, nil
}

func (s *Store) CountUploaderImages(ctx context.Context, uploaderID string) (ports.ImageCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts ports.ImageCounts
	for _, img := range s.images {
		if img.uploaderID != uploaderID {
			continue
		}
		tally(&counts, img.status)
	}
	return counts, nil
}

func (s *Store) IsAssigned(ctx context.Context, campaignID string, contractorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments[assignmentKey{campaignID, contractorID}], nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func tally(counts *ports.ImageCounts, status string) {
	counts.Total++
	switch status {
	case "pending":
		counts.Pending++
	case "approved":
		counts.Approved++
	case "rejected":
		counts.Rejected++
	}
}

var _ ports.CampaignSource = (*Store)(nil)
var _ ports.ImageSource = (*Store)(nil)
var _ ports.AssignmentSource = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
