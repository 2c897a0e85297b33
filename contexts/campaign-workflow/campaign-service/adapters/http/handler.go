package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/application/commands"
	"fieldproof/contexts/campaign-workflow/campaign-service/application/queries"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	httptransport "fieldproof/contexts/campaign-workflow/campaign-service/transport/http"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
)

type Handler struct {
	CreateCampaign   commands.CreateCampaignUseCase
	UpdateCampaign   commands.UpdateCampaignUseCase
	TransitionStatus commands.TransitionStatusUseCase
	DeleteCampaign   commands.DeleteCampaignUseCase
	AssignContractor commands.AssignContractorUseCase
	RemoveAssignment commands.RemoveAssignmentUseCase
	ListCampaigns    queries.ListCampaignsUseCase
	GetCampaign      queries.GetCampaignUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateCampaignHandler(ctx context.Context, p identity.Principal, req httptransport.CreateCampaignRequest) (httptransport.CreateCampaignResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Principal:   p,
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) UpdateCampaignHandler(ctx context.Context, p identity.Principal, campaignID string, req httptransport.UpdateCampaignRequest) (httptransport.UpdateCampaignResponse, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return httptransport.UpdateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return httptransport.UpdateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign, err := h.UpdateCampaign.Execute(ctx, commands.UpdateCampaignCommand{
		Principal:   p,
		CampaignID:  campaignID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return httptransport.UpdateCampaignResponse{}, err
	}
	return httptransport.UpdateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) TransitionStatusHandler(ctx context.Context, p identity.Principal, campaignID string, req httptransport.TransitionStatusRequest) (httptransport.TransitionStatusResponse, error) {
	campaign, err := h.TransitionStatus.Execute(ctx, commands.TransitionStatusCommand{
		Principal:  p,
		CampaignID: campaignID,
		NewStatus:  entities.CampaignStatus(strings.TrimSpace(strings.ToLower(req.Status))),
	})
	if err != nil {
		return httptransport.TransitionStatusResponse{}, err
	}
	return httptransport.TransitionStatusResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, p identity.Principal, campaignID string) (httptransport.DeleteCampaignResponse, error) {
	deleted, err := h.DeleteCampaign.Execute(ctx, commands.DeleteCampaignCommand{
		Principal:  p,
		CampaignID: campaignID,
	})
	if err != nil {
		return httptransport.DeleteCampaignResponse{}, err
	}
	return httptransport.DeleteCampaignResponse{Deleted: deleted}, nil
}

func (h Handler) AssignContractorHandler(ctx context.Context, p identity.Principal, campaignID string, req httptransport.AssignContractorRequest) (httptransport.AssignContractorResponse, error) {
	assignment, err := h.AssignContractor.Execute(ctx, commands.AssignContractorCommand{
		Principal:    p,
		CampaignID:   campaignID,
		ContractorID: req.ContractorID,
	})
	if err != nil {
		return httptransport.AssignContractorResponse{}, err
	}
	return httptransport.AssignContractorResponse{
		Assignment: httptransport.AssignmentDTO{
			CampaignID:   assignment.CampaignID,
			ContractorID: assignment.ContractorID,
			AssignedAt:   assignment.AssignedAt.Format(time.RFC3339),
			AssignedBy:   assignment.AssignedBy,
		},
	}, nil
}

func (h Handler) RemoveAssignmentHandler(ctx context.Context, p identity.Principal, campaignID, contractorID string) (httptransport.RemoveAssignmentResponse, error) {
	removed, err := h.RemoveAssignment.Execute(ctx, commands.RemoveAssignmentCommand{
		Principal:    p,
		CampaignID:   campaignID,
		ContractorID: contractorID,
	})
	if err != nil {
		return httptransport.RemoveAssignmentResponse{}, err
	}
	return httptransport.RemoveAssignmentResponse{Removed: removed}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, p identity.Principal, query queries.ListCampaignsQuery) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, p, query)
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, p identity.Principal, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, p, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	result := httptransport.CampaignDTO{
		CampaignID:  item.CampaignID,
		Name:        item.Name,
		Description: item.Description,
		CompanyID:   item.CompanyID,
		Status:      string(item.Status),
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
	if item.StartDate != nil {
		result.StartDate = item.StartDate.UTC().Format(time.RFC3339)
	}
	if item.EndDate != nil {
		result.EndDate = item.EndDate.UTC().Format(time.RFC3339)
	}
	if item.CompletedAt != nil {
		result.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	return result
}

func parseDate(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return parseDate(*raw)
}
