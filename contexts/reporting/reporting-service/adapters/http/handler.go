package httpadapter

import (
	"context"
	"log/slog"

	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	"fieldproof/contexts/reporting/reporting-service/application/queries"
	httptransport "fieldproof/contexts/reporting/reporting-service/transport/http"
)

type Handler struct {
	StatusCounts           queries.StatusCountsUseCase
	CampaignProgress       queries.CampaignProgressUseCase
	ContractorApprovalRate queries.ContractorApprovalRateUseCase
	Logger                 *slog.Logger
}

func (h Handler) StatusCountsHandler(ctx context.Context, p identity.Principal) (httptransport.StatusCountsResponse, error) {
	counts, err := h.StatusCounts.Execute(ctx, p)
	if err != nil {
		return httptransport.StatusCountsResponse{}, err
	}
	return httptransport.StatusCountsResponse{Counts: counts}, nil
}

func (h Handler) CampaignProgressHandler(ctx context.Context, p identity.Principal, campaignID string) (httptransport.CampaignProgressResponse, error) {
	progress, err := h.CampaignProgress.Execute(ctx, p, campaignID)
	if err != nil {
		return httptransport.CampaignProgressResponse{}, err
	}
	return httptransport.CampaignProgressResponse{Progress: progress}, nil
}

func (h Handler) ContractorApprovalRateHandler(ctx context.Context, p identity.Principal, contractorID string) (httptransport.ContractorApprovalRateResponse, error) {
	rate, err := h.ContractorApprovalRate.Execute(ctx, p, contractorID)
	if err != nil {
		return httptransport.ContractorApprovalRateResponse{}, err
	}
	return httptransport.ContractorApprovalRateResponse{Rate: rate}, nil
}
