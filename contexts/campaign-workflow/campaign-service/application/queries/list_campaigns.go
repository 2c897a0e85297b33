package queries

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

type ListCampaignsQuery struct {
	Status        string
	Search        string
	StartedAfter  *time.Time
	StartedBefore *time.Time
	Sort          string
	Limit         int
	Offset        int
}

type ListCampaignsUseCase struct {
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute applies the principal's read scope before any caller-supplied
// filter; the implicit scope is never overridable. Clients additionally get
// the completed-recency cutoff folded into the filter so stale completed
// campaigns stay invisible even without an explicit date filter.
func (uc ListCampaignsUseCase) Execute(ctx context.Context, p identity.Principal, query ListCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	filter := ports.CampaignFilter{
		Search:        strings.TrimSpace(query.Search),
		StartedAfter:  query.StartedAfter,
		StartedBefore: query.StartedBefore,
		Sort:          query.Sort,
		Limit:         query.Limit,
		Offset:        query.Offset,
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := entities.CampaignStatus(raw)
		if !status.Valid() {
			return nil, domainerrors.ErrInvalidCampaignInput
		}
		filter.Status = status
	}

	switch p.Role {
	case identity.RoleCompanyEmployee:
		// Unrestricted.
	case identity.RoleClient:
		if !p.Valid() {
			return nil, policyerrors.Denied("campaign.list", "")
		}
		filter.CompanyID = p.CompanyID
		cutoff := policy.ClientCompletedCutoff(uc.Clock.Now())
		filter.ClientCompletedCutoff = &cutoff
	case identity.RoleContractor:
		ids, err := uc.Assignments.ListCampaignIDsByContractor(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		filter.CampaignIDs = ids
	default:
		return nil, policyerrors.Denied("campaign.list", "")
	}

	items, err := uc.Campaigns.ListCampaigns(ctx, filter)
	if err != nil {
		return nil, err
	}

	logger.Debug("campaigns listed",
		"event", "campaigns_listed",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"principal_id", p.ID,
		"role", string(p.Role),
		"count", len(items),
	)
	return items, nil
}
