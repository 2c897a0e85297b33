package queries

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
)

type GetImageUseCase struct {
	Images      ports.ImageRepository
	Campaigns   ports.CampaignReader
	Assignments ports.AssignmentChecker
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc GetImageUseCase) Execute(ctx context.Context, p identity.Principal, imageID string) (entities.Image, error) {
	img, err := uc.Images.GetImage(ctx, strings.TrimSpace(imageID))
	if err != nil {
		return entities.Image{}, err
	}

	campaign, found, err := uc.Campaigns.FindCampaign(ctx, img.CampaignID)
	if err != nil {
		return entities.Image{}, err
	}
	if !found {
		return entities.Image{}, domainerrors.ErrCampaignNotFound
	}

	visible, err := campaignVisible(ctx, p, campaign, uc.Assignments, uc.Clock)
	if err != nil {
		return entities.Image{}, err
	}
	if !visible {
		return entities.Image{}, policyerrors.Denied("image.read", img.ImageID)
	}
	return img, nil
}
