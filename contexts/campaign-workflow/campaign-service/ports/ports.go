package ports

import (
	"context"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
)

// CampaignFilter combines the caller-supplied filters with the implicit
// scope set by the access policy. Scope fields are populated by the list
// use case only; callers can never widen them.
type CampaignFilter struct {
	// Scope (implicit, policy-owned).
	CompanyID             string
	CampaignIDs           []string // nil means unrestricted, empty means nothing visible
	ClientCompletedCutoff *time.Time

	// Caller-supplied.
	Status        entities.CampaignStatus
	Search        string
	StartedAfter  *time.Time
	StartedBefore *time.Time
	Sort          string
	Limit         int
	Offset        int
}

const (
	SortCreatedDesc = "created_at_desc"
	SortCreatedAsc  = "created_at_asc"
	SortNameAsc     = "name_asc"
)

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	// UpdateCampaign writes the mutable non-status fields.
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	// UpdateCampaignStatus is a compare-and-set: the write succeeds only if
	// the stored status still equals from. A lost race surfaces as
	// ErrInvalidTransition; a missing campaign as ErrCampaignNotFound.
	UpdateCampaignStatus(ctx context.Context, campaignID string, from, to entities.CampaignStatus, completedAt *time.Time, now time.Time) (entities.Campaign, error)
	// DeleteCampaign reports whether a row was removed; deleting an absent
	// campaign is not an error.
	DeleteCampaign(ctx context.Context, campaignID string) (bool, error)
}

type AssignmentRepository interface {
	// CreateAssignment fails with ErrAssignmentConflict when the
	// (campaign, contractor) pair already exists; concurrent callers resolve
	// to exactly one persisted row.
	CreateAssignment(ctx context.Context, assignment entities.Assignment) error
	GetAssignment(ctx context.Context, campaignID, contractorID string) (entities.Assignment, bool, error)
	ListAssignmentsByCampaign(ctx context.Context, campaignID string) ([]entities.Assignment, error)
	ListCampaignIDsByContractor(ctx context.Context, contractorID string) ([]string, error)
	// DeleteAssignment reports whether a row was removed; a missing pair is
	// a no-op success.
	DeleteAssignment(ctx context.Context, campaignID, contractorID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
