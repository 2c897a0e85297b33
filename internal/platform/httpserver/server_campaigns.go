package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fieldproof/contexts/campaign-workflow/campaign-service/application/queries"
	campaignhttp "fieldproof/contexts/campaign-workflow/campaign-service/transport/http"
)

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), p, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	query := r.URL.Query()
	listQuery := queries.ListCampaignsQuery{
		Status: query.Get("status"),
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
	}
	if raw := query.Get("started_after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeCampaignError(w, http.StatusBadRequest, "invalid_date", "started_after must be RFC3339")
			return
		}
		listQuery.StartedAfter = &parsed
	}
	if raw := query.Get("started_before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeCampaignError(w, http.StatusBadRequest, "invalid_date", "started_before must be RFC3339")
			return
		}
		listQuery.StartedBefore = &parsed
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeCampaignError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		listQuery.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeCampaignError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		listQuery.Offset = offset
	}

	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context(), p, listQuery)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), p, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.UpdateCampaignHandler(r.Context(), p, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.campaigns.Handler.DeleteCampaignHandler(r.Context(), p, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransitionStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req campaignhttp.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.TransitionStatusHandler(r.Context(), p, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignContractor(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req campaignhttp.AssignContractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.AssignContractorHandler(r.Context(), p, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.campaigns.Handler.RemoveAssignmentHandler(r.Context(), p, r.PathValue("campaign_id"), r.PathValue("contractor_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
