package queries

import (
	"context"
	"log/slog"

	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
	"fieldproof/contexts/reporting/reporting-service/application"
	"fieldproof/contexts/reporting/reporting-service/ports"
)

// StatusCounts tallies campaigns per lifecycle status. Statuses with no
// campaigns appear with a zero, so the report shape is stable.
type StatusCounts struct {
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

type StatusCountsUseCase struct {
	Campaigns ports.CampaignSource
	Logger    *slog.Logger
}

// Execute counts the whole portfolio. Employee only: the figure spans every
// company, which no client or contractor scope can see.
func (uc StatusCountsUseCase) Execute(ctx context.Context, p identity.Principal) (StatusCounts, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !policy.CanViewStatistics(p) {
		return StatusCounts{}, policyerrors.Denied("report.status_counts", "")
	}

	infos, err := uc.Campaigns.ListCampaignInfos(ctx)
	if err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, info := range infos {
		switch info.Status {
		case "new":
			counts.New++
		case "in_progress":
			counts.InProgress++
		case "completed":
			counts.Completed++
		case "cancelled":
			counts.Cancelled++
		}
		counts.Total++
	}

	logger.Debug("status counts computed",
		"event", "report_status_counts",
		"module", "reporting/reporting-service",
		"layer", "application",
		"total", counts.Total,
	)
	return counts, nil
}
