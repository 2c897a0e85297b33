package queries

import (
	"context"
	"errors"
	"math"
	"testing"

	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	"fieldproof/contexts/reporting/reporting-service/adapters/memory"
	domainerrors "fieldproof/contexts/reporting/reporting-service/domain/errors"
	"fieldproof/contexts/reporting/reporting-service/ports"
)

var (
	employee   = identity.Principal{ID: "emp-1", Role: identity.RoleCompanyEmployee}
	client     = identity.Principal{ID: "cli-1", Role: identity.RoleClient, CompanyID: "co-1"}
	contractor = identity.Principal{ID: "con-1", Role: identity.RoleContractor}
)

func seedStore() *memory.Store {
	store := memory.NewStore([]ports.CampaignInfo{
		{CampaignID: "camp-1", CompanyID: "co-1", Status: "in_progress"},
		{CampaignID: "camp-2", CompanyID: "co-1", Status: "new"},
		{CampaignID: "camp-3", CompanyID: "co-2", Status: "completed"},
		{CampaignID: "camp-4", CompanyID: "co-2", Status: "cancelled"},
		{CampaignID: "camp-5", CompanyID: "co-2", Status: "in_progress"},
	})
	store.SeedAssignment("camp-1", contractor.ID)

	store.SeedImage("img-1", "camp-1", contractor.ID, "approved")
	store.SeedImage("img-2", "camp-1", contractor.ID, "approved")
	store.SeedImage("img-3", "camp-1", contractor.ID, "rejected")
	store.SeedImage("img-4", "camp-1", "con-2", "pending")
	store.SeedImage("img-5", "camp-3", contractor.ID, "pending")
	return store
}

func TestStatusCounts(t *testing.T) {
	store := seedStore()
	counts := StatusCountsUseCase{Campaigns: store}

	result, err := counts.Execute(context.Background(), employee)
	if err != nil {
		t.Fatalf("status counts failed: %v", err)
	}
	want := StatusCounts{New: 1, InProgress: 2, Completed: 1, Cancelled: 1, Total: 5}
	if result != want {
		t.Fatalf("counts mismatch: got %+v, want %+v", result, want)
	}

	for _, p := range []identity.Principal{client, contractor} {
		_, err := counts.Execute(context.Background(), p)
		if !errors.Is(err, policyerrors.ErrPermissionDenied) {
			t.Fatalf("role %s: expected denial, got %v", p.Role, err)
		}
	}
}

func TestCampaignProgress(t *testing.T) {
	store := seedStore()
	progress := CampaignProgressUseCase{Campaigns: store, Images: store, Assignments: store, Clock: store}

	result, err := progress.Execute(context.Background(), employee, "camp-1")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if result.TotalImages != 4 || result.ApprovedImages != 2 || result.RejectedImages != 1 || result.PendingImages != 1 {
		t.Fatalf("tally mismatch: %+v", result)
	}
	if math.Abs(result.ProgressPercent-50) > 1e-9 {
		t.Fatalf("expected 50%%, got %f", result.ProgressPercent)
	}
}

func TestCampaignProgressNoImages(t *testing.T) {
	store := seedStore()
	progress := CampaignProgressUseCase{Campaigns: store, Images: store, Assignments: store, Clock: store}

	result, err := progress.Execute(context.Background(), employee, "camp-2")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if result.TotalImages != 0 || result.ProgressPercent != 0 {
		t.Fatalf("imageless campaign must report zero progress, got %+v", result)
	}
}

func TestCampaignProgressScope(t *testing.T) {
	store := seedStore()
	progress := CampaignProgressUseCase{Campaigns: store, Images: store, Assignments: store, Clock: store}

	if _, err := progress.Execute(context.Background(), contractor, "camp-1"); err != nil {
		t.Fatalf("assigned contractor progress failed: %v", err)
	}
	_, err := progress.Execute(context.Background(), contractor, "camp-2")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for unassigned campaign, got %v", err)
	}
	_, err = progress.Execute(context.Background(), client, "camp-3")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial across companies, got %v", err)
	}
	_, err = progress.Execute(context.Background(), employee, "ghost")
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestContractorApprovalRate(t *testing.T) {
	store := seedStore()
	rate := ContractorApprovalRateUseCase{Images: store}

	result, err := rate.Execute(context.Background(), employee, contractor.ID)
	if err != nil {
		t.Fatalf("approval rate failed: %v", err)
	}
	// 2 approved, 1 rejected, 1 pending: pending does not dilute the rate.
	if result.TotalImages != 4 || result.ReviewedImages != 3 || result.ApprovedImages != 2 {
		t.Fatalf("tally mismatch: %+v", result)
	}
	if math.Abs(result.ApprovalRate-100*2.0/3.0) > 1e-9 {
		t.Fatalf("unexpected rate %f", result.ApprovalRate)
	}

	// Contractor sees their own rate, nobody else's.
	if _, err := rate.Execute(context.Background(), contractor, contractor.ID); err != nil {
		t.Fatalf("self lookup failed: %v", err)
	}
	_, err = rate.Execute(context.Background(), contractor, "con-2")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for foreign rate, got %v", err)
	}
	_, err = rate.Execute(context.Background(), client, contractor.ID)
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for client, got %v", err)
	}

	// Nothing reviewed yet: zero rate, no division error.
	fresh, err := rate.Execute(context.Background(), employee, "con-3")
	if err != nil {
		t.Fatalf("empty rate failed: %v", err)
	}
	if fresh.ApprovalRate != 0 || fresh.TotalImages != 0 {
		t.Fatalf("expected zeroes for unknown contractor, got %+v", fresh)
	}
}
