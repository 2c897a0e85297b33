package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/application"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type CreateCampaignCommand struct {
	Principal   identity.Principal
	Name        string
	Description string
	CompanyID   string
	StartDate   *time.Time
	EndDate     *time.Time
}

type CreateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanCreateCampaign(cmd.Principal) {
		return entities.Campaign{}, policyerrors.Denied("campaign.create", "")
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	campaign := entities.Campaign{
		CampaignID:  campaignID,
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		CompanyID:   strings.TrimSpace(cmd.CompanyID),
		Status:      entities.CampaignStatusNew,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		CreatedBy:   cmd.Principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !campaign.ValidateCreate() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"company_id", campaign.CompanyID,
		"created_by", campaign.CreatedBy,
	)
	return campaign, nil
}
