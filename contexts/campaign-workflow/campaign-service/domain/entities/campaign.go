package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusNew        CampaignStatus = "new"
	CampaignStatusInProgress CampaignStatus = "in_progress"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusCancelled  CampaignStatus = "cancelled"
)

// Campaign is a unit of work scoped to one client company. CompanyID is
// immutable after creation; status changes only through the transition
// table below.
type Campaign struct {
	CampaignID  string
	Name        string
	Description string
	CompanyID   string
	Status      CampaignStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CompletedAt *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusNew, CampaignStatusInProgress, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	default:
		return false
	}
}

func (s CampaignStatus) Terminal() bool {
	return s == CampaignStatusCompleted || s == CampaignStatusCancelled
}

// CanTransition is the whole lifecycle table. Self-transitions are invalid
// and terminal states have no outgoing edges.
func CanTransition(from, to CampaignStatus) bool {
	switch from {
	case CampaignStatusNew:
		return to == CampaignStatusInProgress || to == CampaignStatusCancelled
	case CampaignStatusInProgress:
		return to == CampaignStatusCompleted || to == CampaignStatusCancelled
	case CampaignStatusCompleted, CampaignStatusCancelled:
		return false
	default:
		return false
	}
}

func (c Campaign) ValidateCreate() bool {
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > 200 {
		return false
	}
	if strings.TrimSpace(c.CompanyID) == "" {
		return false
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return false
	}
	return true
}

// AcceptsAssignments reports whether contractors may still be assigned.
func (c Campaign) AcceptsAssignments() bool {
	return c.Status == CampaignStatusNew || c.Status == CampaignStatusInProgress
}
