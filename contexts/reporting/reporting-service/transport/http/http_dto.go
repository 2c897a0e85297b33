package http

import "fieldproof/contexts/reporting/reporting-service/application/queries"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusCountsResponse struct {
	Counts queries.StatusCounts `json:"counts"`
}

type CampaignProgressResponse struct {
	Progress queries.CampaignProgress `json:"progress"`
}

type ContractorApprovalRateResponse struct {
	Rate queries.ContractorApprovalRate `json:"rate"`
}
