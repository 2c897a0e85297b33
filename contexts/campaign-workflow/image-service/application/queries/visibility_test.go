package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldproof/contexts/campaign-workflow/image-service/adapters/memory"
	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
)

var (
	employee   = identity.Principal{ID: "emp-1", Role: identity.RoleCompanyEmployee}
	client     = identity.Principal{ID: "cli-1", Role: identity.RoleClient, CompanyID: "co-1"}
	contractor = identity.Principal{ID: "con-1", Role: identity.RoleContractor}
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	now := time.Now().UTC()
	stale := now.AddDate(0, -2, 0)
	store := memory.NewStore([]ports.CampaignSummary{
		{CampaignID: "camp-1", CompanyID: "co-1", Status: "in_progress"},
		{CampaignID: "camp-other", CompanyID: "co-2", Status: "in_progress"},
		{CampaignID: "camp-stale", CompanyID: "co-1", Status: "completed", StartDate: &stale, CompletedAt: &stale},
	})
	store.SeedAssignment("camp-1", contractor.ID)

	for i, img := range []entities.Image{
		{ImageID: "img-pending", CampaignID: "camp-1", UploaderID: contractor.ID, FileName: "a.jpg", Status: entities.ImageStatusPending},
		{ImageID: "img-approved", CampaignID: "camp-1", UploaderID: contractor.ID, FileName: "b.jpg", Status: entities.ImageStatusApproved},
		{ImageID: "img-other", CampaignID: "camp-other", UploaderID: "con-2", FileName: "c.jpg", Status: entities.ImageStatusPending},
		{ImageID: "img-stale", CampaignID: "camp-stale", UploaderID: contractor.ID, FileName: "d.jpg", Status: entities.ImageStatusApproved},
	} {
		img.UploadedAt = now.Add(time.Duration(i) * time.Minute)
		img.UpdatedAt = img.UploadedAt
		if err := store.CreateImage(context.Background(), img); err != nil {
			t.Fatalf("seed image: %v", err)
		}
	}
	return store
}

func TestListImagesFollowsCampaignVisibility(t *testing.T) {
	store := seedStore(t)
	list := ListImagesUseCase{Images: store, Campaigns: store, Assignments: store, Clock: store}

	items, err := list.Execute(context.Background(), contractor, "camp-1", ListImagesQuery{})
	if err != nil {
		t.Fatalf("assigned contractor list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 images, got %d", len(items))
	}

	_, err = list.Execute(context.Background(), contractor, "camp-other", ListImagesQuery{})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for unassigned campaign, got %v", err)
	}

	// Stale completed campaign hides its images from the client.
	_, err = list.Execute(context.Background(), client, "camp-stale", ListImagesQuery{})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for stale completed campaign, got %v", err)
	}

	_, err = list.Execute(context.Background(), employee, "ghost", ListImagesQuery{})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestListImagesStatusFilter(t *testing.T) {
	store := seedStore(t)
	list := ListImagesUseCase{Images: store, Campaigns: store, Assignments: store, Clock: store}

	items, err := list.Execute(context.Background(), employee, "camp-1", ListImagesQuery{Status: "approved"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ImageID != "img-approved" {
		t.Fatalf("status filter failed, got %d items", len(items))
	}

	_, err = list.Execute(context.Background(), employee, "camp-1", ListImagesQuery{Status: "flagged"})
	if !errors.Is(err, domainerrors.ErrInvalidImageInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}
}

func TestListImagesByUploaderScope(t *testing.T) {
	store := seedStore(t)
	list := ListImagesByUploaderUseCase{Images: store}

	items, err := list.Execute(context.Background(), contractor, contractor.ID)
	if err != nil {
		t.Fatalf("own listing failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 own images, got %d", len(items))
	}

	if _, err := list.Execute(context.Background(), employee, contractor.ID); err != nil {
		t.Fatalf("employee must list anyone's uploads: %v", err)
	}

	_, err = list.Execute(context.Background(), contractor, "con-2")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for foreign uploads, got %v", err)
	}
}

func TestGetImageVisibility(t *testing.T) {
	store := seedStore(t)
	get := GetImageUseCase{Images: store, Campaigns: store, Assignments: store, Clock: store}

	if _, err := get.Execute(context.Background(), contractor, "img-pending"); err != nil {
		t.Fatalf("assigned contractor read failed: %v", err)
	}
	_, err := get.Execute(context.Background(), contractor, "img-other")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for foreign campaign image, got %v", err)
	}
	_, err = get.Execute(context.Background(), client, "img-stale")
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for stale campaign image, got %v", err)
	}
	_, err = get.Execute(context.Background(), employee, "ghost")
	if !errors.Is(err, domainerrors.ErrImageNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
