package commands

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/image-service/application"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type DeleteImageCommand struct {
	Principal identity.Principal
	ImageID   string
}

type DeleteImageUseCase struct {
	Images ports.ImageRepository
	Files  ports.FileStore
	Logger *slog.Logger
}

// Execute removes an image record and its blob. Employees delete any image;
// a contractor deletes only their own uploads and only while the image is
// still pending. The scope check needs the record, so a missing image is
// NotFound here rather than the idempotent false of campaign deletion.
func (uc DeleteImageUseCase) Execute(ctx context.Context, cmd DeleteImageCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	img, err := uc.Images.GetImage(ctx, strings.TrimSpace(cmd.ImageID))
	if err != nil {
		return err
	}
	if !policy.CanDeleteImage(cmd.Principal, img.UploaderID, img.Pending()) {
		return policyerrors.Denied("image.delete", img.ImageID)
	}

	removed, err := uc.Images.DeleteImage(ctx, img.ImageID)
	if err != nil {
		return err
	}
	if removed && img.StorageKey != "" {
		if err := uc.Files.Remove(ctx, img.StorageKey); err != nil {
			logger.Warn("blob removal failed after image delete",
				"event", "image_blob_orphaned",
				"module", "campaign-workflow/image-service",
				"layer", "application",
				"storage_key", img.StorageKey,
				"error", err.Error(),
			)
		}
	}

	logger.Info("image deleted",
		"event", "image_deleted",
		"module", "campaign-workflow/image-service",
		"layer", "application",
		"image_id", img.ImageID,
		"campaign_id", img.CampaignID,
	)
	return nil
}
