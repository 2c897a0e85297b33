package commands

import (
	"context"
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

type ReviewImageCommand struct {
	Principal identity.Principal
	ImageID   string
	Reason    string
}

type ReviewImageUseCase struct {
	Images ports.ImageRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Approve marks a pending image approved. Approval may carry no reason.
func (uc ReviewImageUseCase) Approve(ctx context.Context, cmd ReviewImageCommand) (entities.Image, error) {
	return uc.review(ctx, cmd, entities.ImageStatusApproved)
}

// Reject marks a pending image rejected. The reason is mandatory and is
// validated before the state is even looked at, so a blank reason against an
// already-reviewed image reports the input problem, not the state one.
func (uc ReviewImageUseCase) Reject(ctx context.Context, cmd ReviewImageCommand) (entities.Image, error) {
	if strings.TrimSpace(cmd.Reason) == "" {
		return entities.Image{}, domainerrors.ErrInvalidImageInput
	}
	return uc.review(ctx, cmd, entities.ImageStatusRejected)
}

func (uc ReviewImageUseCase) review(ctx context.Context, cmd ReviewImageCommand, decision entities.ImageStatus) (entities.Image, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanReviewImage(cmd.Principal) {
		return entities.Image{}, policyerrors.Denied("image.review", cmd.ImageID)
	}

	reason := strings.TrimSpace(cmd.Reason)
	if decision != entities.ImageStatusRejected {
		reason = ""
	}

	// The conditional write is the arbiter: only one reviewer moves the
	// image out of pending, the loser gets ErrInvalidState.
	img, err := uc.Images.ReviewImage(ctx, strings.TrimSpace(cmd.ImageID), decision, reason, cmd.Principal.ID, uc.Clock.Now().UTC())
	if err != nil {
		return entities.Image{}, err
	}

	logger.Info("image reviewed",
		"event", "image_reviewed",
		"module", "campaign-workflow/image-service",
		"layer", "application",
		"image_id", img.ImageID,
		"campaign_id", img.CampaignID,
		"decision", string(decision),
		"reviewer_id", cmd.Principal.ID,
	)
	return img, nil
}
