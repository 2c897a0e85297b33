package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CampaignDTO struct {
	CampaignID  string `json:"campaign_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CompanyID   string `json:"company_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type UpdateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type TransitionStatusRequest struct {
	Status string `json:"status"`
}

type TransitionStatusResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type DeleteCampaignResponse struct {
	Deleted bool `json:"deleted"`
}

type AssignContractorRequest struct {
	ContractorID string `json:"contractor_id"`
}

type AssignmentDTO struct {
	CampaignID   string `json:"campaign_id"`
	ContractorID string `json:"contractor_id"`
	AssignedAt   string `json:"assigned_at"`
	AssignedBy   string `json:"assigned_by"`
}

type AssignContractorResponse struct {
	Assignment AssignmentDTO `json:"assignment"`
}

type RemoveAssignmentResponse struct {
	Removed bool `json:"removed"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}
