package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fieldproof/contexts/campaign-workflow/image-service/adapters/filestore"
	"fieldproof/contexts/campaign-workflow/image-service/adapters/memory"
	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
)

var (
	employee   = identity.Principal{ID: "emp-1", Role: identity.RoleCompanyEmployee}
	contractor = identity.Principal{ID: "con-1", Role: identity.RoleContractor}
	client     = identity.Principal{ID: "cli-1", Role: identity.RoleClient, CompanyID: "co-1"}
)

func newFixture() (*memory.Store, UploadImageUseCase, ReviewImageUseCase, DeleteImageUseCase) {
	store := memory.NewStore([]ports.CampaignSummary{
		{CampaignID: "camp-1", CompanyID: "co-1", Status: "in_progress"},
	})
	store.SeedAssignment("camp-1", contractor.ID)
	files := filestore.NewMemoryFileStore()
	upload := UploadImageUseCase{Images: store, Campaigns: store, Assignments: store, Files: files, Clock: store, IDGen: store}
	review := ReviewImageUseCase{Images: store, Clock: store}
	del := DeleteImageUseCase{Images: store, Files: files}
	return store, upload, review, del
}

func mustUpload(t *testing.T, upload UploadImageUseCase, p identity.Principal) entities.Image {
	t.Helper()
	img, err := upload.Execute(context.Background(), UploadImageCommand{
		Principal:   p,
		CampaignID:  "camp-1",
		FileName:    "evidence.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   4,
		Content:     strings.NewReader("jpeg"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	return img
}

func TestUploadStartsPending(t *testing.T) {
	_, upload, _, _ := newFixture()
	img := mustUpload(t, upload, contractor)
	if img.Status != entities.ImageStatusPending {
		t.Fatalf("fresh upload must be pending, got %s", img.Status)
	}
	if img.StorageKey == "" {
		t.Fatalf("upload must record a storage key")
	}
	if img.ReviewedBy != nil || img.ReviewedAt != nil {
		t.Fatalf("review fields must be unset while pending")
	}
}

func TestUploadScope(t *testing.T) {
	store, upload, _, _ := newFixture()
	store.SeedCampaign(ports.CampaignSummary{CampaignID: "camp-2", CompanyID: "co-1", Status: "new"})

	// Contractor not assigned to camp-2.
	_, err := upload.Execute(context.Background(), UploadImageCommand{
		Principal: contractor, CampaignID: "camp-2",
		FileName: "a.jpg", ContentType: "image/jpeg", SizeBytes: 1, Content: strings.NewReader("x"),
	})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for unassigned contractor, got %v", err)
	}

	// Clients never upload.
	_, err = upload.Execute(context.Background(), UploadImageCommand{
		Principal: client, CampaignID: "camp-1",
		FileName: "a.jpg", ContentType: "image/jpeg", SizeBytes: 1, Content: strings.NewReader("x"),
	})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for client upload, got %v", err)
	}

	// Unknown campaign is NotFound before any policy verdict.
	_, err = upload.Execute(context.Background(), UploadImageCommand{
		Principal: employee, CampaignID: "ghost",
		FileName: "a.jpg", ContentType: "image/jpeg", SizeBytes: 1, Content: strings.NewReader("x"),
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestUploadContentRules(t *testing.T) {
	_, upload, _, _ := newFixture()
	_, err := upload.Execute(context.Background(), UploadImageCommand{
		Principal: employee, CampaignID: "camp-1",
		FileName: "notes.txt", ContentType: "text/plain", SizeBytes: 4, Content: strings.NewReader("text"),
	})
	if !errors.Is(err, domainerrors.ErrFileRejected) {
		t.Fatalf("expected file rejection for content type, got %v", err)
	}

	_, err = upload.Execute(context.Background(), UploadImageCommand{
		Principal: employee, CampaignID: "camp-1",
		FileName: "", ContentType: "image/jpeg", SizeBytes: 4, Content: strings.NewReader("jpeg"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidImageInput) {
		t.Fatalf("expected invalid input for blank file name, got %v", err)
	}
}

func TestReviewSinglePass(t *testing.T) {
	_, upload, review, _ := newFixture()
	img := mustUpload(t, upload, contractor)

	approved, err := review.Approve(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != entities.ImageStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if approved.ReviewedBy == nil || *approved.ReviewedBy != employee.ID {
		t.Fatalf("review must record the reviewer")
	}
	if approved.ReviewedAt == nil {
		t.Fatalf("review must record the time")
	}

	// Second review of any kind loses.
	_, err = review.Reject(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID, Reason: "blurry"})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on re-review, got %v", err)
	}
	_, err = review.Approve(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on repeated approve, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	_, upload, review, _ := newFixture()
	img := mustUpload(t, upload, contractor)

	_, err := review.Reject(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID, Reason: "  "})
	if !errors.Is(err, domainerrors.ErrInvalidImageInput) {
		t.Fatalf("expected invalid input for blank reason, got %v", err)
	}

	rejected, err := review.Reject(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID, Reason: "wrong site"})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.RejectionReason != "wrong site" {
		t.Fatalf("rejection reason not recorded")
	}

	// The blank reason is reported even when the image already left pending.
	_, err = review.Reject(context.Background(), ReviewImageCommand{Principal: employee, ImageID: img.ImageID, Reason: ""})
	if !errors.Is(err, domainerrors.ErrInvalidImageInput) {
		t.Fatalf("input validation must precede the state check, got %v", err)
	}
}

func TestReviewScope(t *testing.T) {
	_, upload, review, _ := newFixture()
	img := mustUpload(t, upload, contractor)

	for _, p := range []identity.Principal{contractor, client} {
		_, err := review.Approve(context.Background(), ReviewImageCommand{Principal: p, ImageID: img.ImageID})
		if !errors.Is(err, policyerrors.ErrPermissionDenied) {
			t.Fatalf("role %s: expected denial, got %v", p.Role, err)
		}
	}

	_, err := review.Approve(context.Background(), ReviewImageCommand{Principal: employee, ImageID: "ghost"})
	if !errors.Is(err, domainerrors.ErrImageNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteScope(t *testing.T) {
	_, upload, review, del := newFixture()

	// Uploader deletes their own pending image.
	own := mustUpload(t, upload, contractor)
	if err := del.Execute(context.Background(), DeleteImageCommand{Principal: contractor, ImageID: own.ImageID}); err != nil {
		t.Fatalf("uploader delete of pending image failed: %v", err)
	}

	// After review the uploader loses deletion; the employee keeps it.
	reviewed := mustUpload(t, upload, contractor)
	if _, err := review.Approve(context.Background(), ReviewImageCommand{Principal: employee, ImageID: reviewed.ImageID}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	err := del.Execute(context.Background(), DeleteImageCommand{Principal: contractor, ImageID: reviewed.ImageID})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for uploader delete after review, got %v", err)
	}
	if err := del.Execute(context.Background(), DeleteImageCommand{Principal: employee, ImageID: reviewed.ImageID}); err != nil {
		t.Fatalf("employee delete failed: %v", err)
	}

	// Someone else's pending image is off limits.
	other := mustUpload(t, upload, employee)
	err = del.Execute(context.Background(), DeleteImageCommand{Principal: contractor, ImageID: other.ImageID})
	if !errors.Is(err, policyerrors.ErrPermissionDenied) {
		t.Fatalf("expected denial for foreign pending image, got %v", err)
	}

	err = del.Execute(context.Background(), DeleteImageCommand{Principal: employee, ImageID: "ghost"})
	if !errors.Is(err, domainerrors.ErrImageNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
