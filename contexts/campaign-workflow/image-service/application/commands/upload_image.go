package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/image-service/application"
	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type UploadImageCommand struct {
	Principal   identity.Principal
	CampaignID  string
	FileName    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

type UploadImageUseCase struct {
	Images      ports.ImageRepository
	Campaigns   ports.CampaignReader
	Assignments ports.AssignmentChecker
	Files       ports.FileStore
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// Execute stores a new image in pending status. Employees upload to any
// campaign; contractors only to campaigns they are assigned to. The file
// store validates the content itself and its refusal aborts the record.
func (uc UploadImageUseCase) Execute(ctx context.Context, cmd UploadImageCommand) (entities.Image, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaignID := strings.TrimSpace(cmd.CampaignID)

	campaign, found, err := uc.Campaigns.FindCampaign(ctx, campaignID)
	if err != nil {
		return entities.Image{}, err
	}
	if !found {
		return entities.Image{}, domainerrors.ErrCampaignNotFound
	}

	assigned := false
	if cmd.Principal.Role == identity.RoleContractor {
		assigned, err = uc.Assignments.IsAssigned(ctx, campaign.CampaignID, cmd.Principal.ID)
		if err != nil {
			return entities.Image{}, err
		}
	}
	if !policy.CanUploadImage(cmd.Principal, assigned) {
		return entities.Image{}, policyerrors.Denied("image.upload", campaign.CampaignID)
	}

	imageID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Image{}, err
	}

	now := uc.Clock.Now().UTC()
	img := entities.Image{
		ImageID:     imageID,
		CampaignID:  campaign.CampaignID,
		UploaderID:  cmd.Principal.ID,
		FileName:    strings.TrimSpace(cmd.FileName),
		ContentType: strings.TrimSpace(cmd.ContentType),
		SizeBytes:   cmd.SizeBytes,
		Status:      entities.ImageStatusPending,
		UploadedAt:  now,
		UpdatedAt:   now,
	}
	if !img.ValidateUpload() {
		return entities.Image{}, domainerrors.ErrInvalidImageInput
	}

	stored, err := uc.Files.Store(ctx, ports.FileUpload{
		FileName:    img.FileName,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		Content:     cmd.Content,
	})
	if err != nil {
		return entities.Image{}, err
	}
	img.StorageKey = stored.StorageKey
	img.ContentType = stored.ContentType
	img.SizeBytes = stored.SizeBytes

	if err := uc.Images.CreateImage(ctx, img); err != nil {
		if removeErr := uc.Files.Remove(ctx, stored.StorageKey); removeErr != nil {
			logger.Warn("orphaned blob after failed image insert",
				"event", "image_blob_orphaned",
				"module", "campaign-workflow/image-service",
				"layer", "application",
				"storage_key", stored.StorageKey,
				"error", removeErr.Error(),
			)
		}
		return entities.Image{}, err
	}

	logger.Info("image uploaded",
		"event", "image_uploaded",
		"module", "campaign-workflow/image-service",
		"layer", "application",
		"image_id", img.ImageID,
		"campaign_id", img.CampaignID,
		"uploader_id", img.UploaderID,
		"size_bytes", img.SizeBytes,
	)
	return img, nil
}
