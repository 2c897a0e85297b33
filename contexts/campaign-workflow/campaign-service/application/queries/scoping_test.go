package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/adapters/memory"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
)

var (
	employee   = identity.Principal{ID: "emp-1", Role: identity.RoleCompanyEmployee}
	client     = identity.Principal{ID: "cli-1", Role: identity.RoleClient, CompanyID: "co-1"}
	contractor = identity.Principal{ID: "con-1", Role: identity.RoleContractor}
)

// fixedClock pins the recency cutoff to the instant the fixtures were
// seeded against, so the assertions hold regardless of when the test runs.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func seedStore(t *testing.T, now time.Time) *memory.Store {
	t.Helper()
	recent := now.AddDate(0, 0, -10)
	stale := now.AddDate(0, -2, 0)
	store := memory.NewStore([]entities.Campaign{
		{CampaignID: "c-new", Name: "Draft survey", CompanyID: "co-1", Status: entities.CampaignStatusNew, CreatedAt: now, UpdatedAt: now},
		{CampaignID: "c-active", Name: "Active survey", CompanyID: "co-1", Status: entities.CampaignStatusInProgress, CreatedAt: now, UpdatedAt: now},
		{CampaignID: "c-done-recent", Name: "Recent audit", CompanyID: "co-1", Status: entities.CampaignStatusCompleted, StartDate: &recent, CompletedAt: &recent, CreatedAt: now, UpdatedAt: now},
		{CampaignID: "c-done-stale", Name: "Old audit", CompanyID: "co-1", Status: entities.CampaignStatusCompleted, StartDate: &stale, CompletedAt: &stale, CreatedAt: now, UpdatedAt: now},
		{CampaignID: "c-other", Name: "Other company", CompanyID: "co-2", Status: entities.CampaignStatusInProgress, CreatedAt: now, UpdatedAt: now},
	})
	if err := store.CreateAssignment(context.Background(), entities.Assignment{
		CampaignID: "c-active", ContractorID: contractor.ID, AssignedAt: now, AssignedBy: employee.ID,
	}); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return store
}

func ids(campaigns []entities.Campaign) map[string]bool {
	out := make(map[string]bool, len(campaigns))
	for _, c := range campaigns {
		out[c.CampaignID] = true
	}
	return out
}

func TestListScopesByRole(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := seedStore(t, now)
	list := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: fixedClock{now: now}}

	employeeView, err := list.Execute(context.Background(), employee, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("employee list: %v", err)
	}
	if len(employeeView) != 5 {
		t.Fatalf("employee must see every campaign, got %d", len(employeeView))
	}

	clientView, err := list.Execute(context.Background(), client, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("client list: %v", err)
	}
	got := ids(clientView)
	if got["c-other"] {
		t.Fatalf("client must not see another company's campaigns")
	}
	if got["c-done-stale"] {
		t.Fatalf("client must not see completed campaigns older than one month")
	}
	for _, want := range []string{"c-new", "c-active", "c-done-recent"} {
		if !got[want] {
			t.Fatalf("client view missing %s", want)
		}
	}

	contractorView, err := list.Execute(context.Background(), contractor, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("contractor list: %v", err)
	}
	if len(contractorView) != 1 || contractorView[0].CampaignID != "c-active" {
		t.Fatalf("contractor must see exactly their assigned campaigns, got %v", ids(contractorView))
	}
}

func TestListContractorWithNoAssignments(t *testing.T) {
	store := seedStore(t, time.Now().UTC())
	list := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: store}

	lonely := identity.Principal{ID: "con-none", Role: identity.RoleContractor}
	view, err := list.Execute(context.Background(), lonely, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(view) != 0 {
		t.Fatalf("unassigned contractor must see nothing, got %d", len(view))
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	store := seedStore(t, time.Now().UTC())
	list := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: store}
	_, err := list.Execute(context.Background(), employee, ListCampaignsQuery{Status: "archived"})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected validation error for unknown status filter, got %v", err)
	}
}

func TestListStatusFilterComposesWithScope(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := seedStore(t, now)
	list := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: fixedClock{now: now}}

	view, err := list.Execute(context.Background(), client, ListCampaignsQuery{Status: "completed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(view) != 1 || view[0].CampaignID != "c-done-recent" {
		t.Fatalf("status filter must compose with the recency cutoff, got %v", ids(view))
	}
}

func TestClientRecencyFollowsInjectedClock(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := seedStore(t, now)

	list := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: fixedClock{now: now}}
	view, err := list.Execute(context.Background(), client, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !ids(view)["c-done-recent"] {
		t.Fatalf("campaign completed 10 days ago must be visible at seed time")
	}

	// Two months later the same campaign has aged out of the window.
	later := ListCampaignsUseCase{Campaigns: store, Assignments: store, Clock: fixedClock{now: now.AddDate(0, 2, 0)}}
	view, err = later.Execute(context.Background(), client, ListCampaignsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids(view)["c-done-recent"] {
		t.Fatalf("cutoff must move with the clock, stale campaign still visible")
	}
}

func TestGetEnforcesVisibility(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := seedStore(t, now)
	get := GetCampaignUseCase{Campaigns: store, Assignments: store, Clock: fixedClock{now: now}}

	// Contractor reads only assigned campaigns.
	if _, err := get.Execute(context.Background(), contractor, "c-active"); err != nil {
		t.Fatalf("assigned contractor read failed: %v", err)
	}
	_, err := get.Execute(context.Background(), contractor, "c-new")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for unassigned contractor, got %v", err)
	}

	// Client company boundary and completed recency both apply to direct reads.
	_, err = get.Execute(context.Background(), client, "c-other")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial across companies, got %v", err)
	}
	if _, err := get.Execute(context.Background(), client, "c-done-recent"); err != nil {
		t.Fatalf("recent completed campaign must stay visible: %v", err)
	}
	_, err = get.Execute(context.Background(), client, "c-done-stale")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for stale completed campaign, got %v", err)
	}

	_, err = get.Execute(context.Background(), employee, "ghost")
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
