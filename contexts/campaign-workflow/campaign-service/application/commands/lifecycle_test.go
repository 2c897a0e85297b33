package commands

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

func newFixture() (*memory.Store, CreateCampaignUseCase, TransitionStatusUseCase, AssignContractorUseCase, RemoveAssignmentUseCase, DeleteCampaignUseCase) {
	store := memory.NewStore(nil)
	return store,
		CreateCampaignUseCase{Campaigns: store, Clock: store, IDGen: store},
		TransitionStatusUseCase{Campaigns: store, Clock: store},
		AssignContractorUseCase{Campaigns: store, Assignments: store, Clock: store},
		RemoveAssignmentUseCase{Campaigns: store, Assignments: store},
		DeleteCampaignUseCase{Campaigns: store}
}

func mustCreate(t *testing.T, create CreateCampaignUseCase) entities.Campaign {
	t.Helper()
	campaign, err := create.Execute(context.Background(), CreateCampaignCommand{
		Principal: employee,
		Name:      "Store refit evidence",
		CompanyID: "co-1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return campaign
}

func TestCreateRequiresEmployee(t *testing.T) {
	_, create, _, _, _, _ := newFixture()
	for _, p := range []identity.Principal{client, contractor} {
		_, err := create.Execute(context.Background(), CreateCampaignCommand{
			Principal: p,
			Name:      "nope",
			CompanyID: "co-1",
		})
		if !errors.Is(err, policyerrors.ErrPermissionDenied) {
			t.Fatalf("role %s: expected permission denied, got %v", p.Role, err)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	_, create, _, _, _, _ := newFixture()
	_, err := create.Execute(context.Background(), CreateCampaignCommand{Principal: employee, Name: "", CompanyID: "co-1"})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	_, err = create.Execute(context.Background(), CreateCampaignCommand{Principal: employee, Name: "x", CompanyID: " "})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected validation error for missing company, got %v", err)
	}
}

func TestCreateStartsNew(t *testing.T) {
	_, create, _, _, _, _ := newFixture()
	campaign := mustCreate(t, create)
	if campaign.Status != entities.CampaignStatusNew {
		t.Fatalf("new campaign must start in status new, got %s", campaign.Status)
	}
	if campaign.CreatedBy != employee.ID {
		t.Fatalf("createdBy must record the acting principal")
	}
	if campaign.CompletedAt != nil {
		t.Fatalf("completedAt must be null outside completed")
	}
}

func TestCompletedAtTracksStatus(t *testing.T) {
	_, create, transition, _, _, _ := newFixture()
	campaign := mustCreate(t, create)

	inProgress, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusInProgress,
	})
	if err != nil {
		t.Fatalf("new -> in_progress failed: %v", err)
	}
	if inProgress.CompletedAt != nil {
		t.Fatalf("completedAt must stay null outside completed")
	}

	completed, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusCompleted,
	})
	if err != nil {
		t.Fatalf("in_progress -> completed failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("entering completed must set completedAt")
	}
}

func TestIllegalTransitionsRejected(t *testing.T) {
	_, create, transition, _, _, _ := newFixture()
	campaign := mustCreate(t, create)

	// new -> completed skips in_progress.
	_, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusCompleted,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	// Self-transition.
	_, err = transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusNew,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid self-transition, got %v", err)
	}

	// Terminal states have no exits.
	if _, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusCancelled,
	}); err != nil {
		t.Fatalf("new -> cancelled failed: %v", err)
	}
	_, err = transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusInProgress,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected terminal state to reject transitions, got %v", err)
	}
}

func TestTransitionRequiresEmployee(t *testing.T) {
	_, create, transition, _, _, _ := newFixture()
	campaign := mustCreate(t, create)
	_, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  contractor,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusInProgress,
	})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestTransitionMissingCampaign(t *testing.T) {
	_, _, transition, _, _, _ := newFixture()
	_, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: "ghost",
		NewStatus:  entities.CampaignStatusInProgress,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignmentLifecycle(t *testing.T) {
	_, create, transition, assign, remove, _ := newFixture()
	campaign := mustCreate(t, create)

	first, err := assign.Execute(context.Background(), AssignContractorCommand{
		Principal:    employee,
		CampaignID:   campaign.CampaignID,
		ContractorID: "con-1",
	})
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	if first.AssignedBy != employee.ID {
		t.Fatalf("assignedBy must record the acting principal")
	}

	// Duplicate pair is a conflict, not a silent dedup.
	_, err = assign.Execute(context.Background(), AssignContractorCommand{
		Principal:    employee,
		CampaignID:   campaign.CampaignID,
		ContractorID: "con-1",
	})
	if !errors.Is(err, domainerrors.ErrAssignmentConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Assigning to a terminal campaign fails InvalidState.
	if _, err := transition.Execute(context.Background(), TransitionStatusCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		NewStatus:  entities.CampaignStatusCancelled,
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	_, err = assign.Execute(context.Background(), AssignContractorCommand{
		Principal:    employee,
		CampaignID:   campaign.CampaignID,
		ContractorID: "con-2",
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on terminal campaign, got %v", err)
	}

	// Removal stays allowed on terminal campaigns; missing pair is a no-op.
	removed, err := remove.Execute(context.Background(), RemoveAssignmentCommand{
		Principal:    employee,
		CampaignID:   campaign.CampaignID,
		ContractorID: "con-1",
	})
	if err != nil || !removed {
		t.Fatalf("expected removal to succeed, got %v, %v", removed, err)
	}
	removed, err = remove.Execute(context.Background(), RemoveAssignmentCommand{
		Principal:    employee,
		CampaignID:   campaign.CampaignID,
		ContractorID: "con-1",
	})
	if err != nil {
		t.Fatalf("removing a missing assignment must not error: %v", err)
	}
	if removed {
		t.Fatalf("removing a missing assignment must report false")
	}
}

func TestDeleteCampaignNeverErrorsWhenGone(t *testing.T) {
	_, create, _, _, _, del := newFixture()
	campaign := mustCreate(t, create)

	deleted, err := del.Execute(context.Background(), DeleteCampaignCommand{Principal: employee, CampaignID: campaign.CampaignID})
	if err != nil || !deleted {
		t.Fatalf("expected delete true, got %v, %v", deleted, err)
	}
	deleted, err = del.Execute(context.Background(), DeleteCampaignCommand{Principal: employee, CampaignID: campaign.CampaignID})
	if err != nil {
		t.Fatalf("repeat delete must not error: %v", err)
	}
	if deleted {
		t.Fatalf("repeat delete must report false")
	}

	_, err = del.Execute(context.Background(), DeleteCampaignCommand{Principal: contractor, CampaignID: "anything"})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for contractor delete, got %v", err)
	}
}

func TestUpdateCannotTouchStatus(t *testing.T) {
	store, create, _, _, _, _ := newFixture()
	campaign := mustCreate(t, create)

	name := "renamed"
	update := UpdateCampaignUseCase{Campaigns: store, Clock: store}
	updated, err := update.Execute(context.Background(), UpdateCampaignCommand{
		Principal:  employee,
		CampaignID: campaign.CampaignID,
		Name:       &name,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("name patch not applied")
	}
	if updated.Status != entities.CampaignStatusNew {
		t.Fatalf("update path must not change status")
	}

	_, err = update.Execute(context.Background(), UpdateCampaignCommand{Principal: employee, CampaignID: "ghost", Name: &name})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found for missing campaign, got %v", err)
	}
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	_, create, _, _, _, _ := newFixture()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)
	_, err := create.Execute(context.Background(), CreateCampaignCommand{
		Principal: employee,
		Name:      "backwards",
		CompanyID: "co-1",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
