package commands

import (
	"context"
	"log/slog"
	"strings"

	"fieldproof/contexts/campaign-workflow/campaign-service/application"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
)

type AssignContractorCommand struct {
	Principal    identity.Principal
	CampaignID   string
	ContractorID string
}

type AssignContractorUseCase struct {
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute assigns a contractor while the campaign is still open. Duplicate
// assignment surfaces as a conflict; the repository's uniqueness guarantee
// makes concurrent duplicates resolve to exactly one row.
func (uc AssignContractorUseCase) Execute(ctx context.Context, cmd AssignContractorCommand) (entities.Assignment, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanManageAssignments(cmd.Principal) {
		return entities.Assignment{}, policyerrors.Denied("campaign.assign", cmd.CampaignID)
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Assignment{}, err
	}
	if !campaign.AcceptsAssignments() {
		return entities.Assignment{}, domainerrors.InvalidState("assign contractor", string(campaign.Status))
	}

	assignment := entities.Assignment{
		CampaignID:   campaign.CampaignID,
		ContractorID: strings.TrimSpace(cmd.ContractorID),
		AssignedAt:   uc.Clock.Now().UTC(),
		AssignedBy:   cmd.Principal.ID,
	}
	if !assignment.Validate() {
		return entities.Assignment{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Assignments.CreateAssignment(ctx, assignment); err != nil {
		return entities.Assignment{}, err
	}

	logger.Info("contractor assigned",
		"event", "contractor_assigned",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"campaign_id", assignment.CampaignID,
		"contractor_id", assignment.ContractorID,
	)
	return assignment, nil
}

type RemoveAssignmentCommand struct {
	Principal    identity.Principal
	CampaignID   string
	ContractorID string
}

type RemoveAssignmentUseCase struct {
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Logger      *slog.Logger
}

// Execute removes an assignment in any campaign state, including terminal
// ones, so mistakes stay correctable. A missing assignment is a no-op
// success.
func (uc RemoveAssignmentUseCase) Execute(ctx context.Context, cmd RemoveAssignmentCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanManageAssignments(cmd.Principal) {
		return false, policyerrors.Denied("campaign.unassign", cmd.CampaignID)
	}

	if _, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID)); err != nil {
		return false, err
	}

	removed, err := uc.Assignments.DeleteAssignment(ctx, strings.TrimSpace(cmd.CampaignID), strings.TrimSpace(cmd.ContractorID))
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info("contractor unassigned",
			"event", "contractor_unassigned",
			"module", "campaign-workflow/campaign-service",
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"contractor_id", cmd.ContractorID,
		)
	}
	return removed, nil
}
