package httpserver

import "net/http"

func (s *Server) handleStatusCounts(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeReportError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.reports.Handler.StatusCountsHandler(r.Context(), p)
	if err != nil {
		writeReportDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCampaignProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeReportError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.reports.Handler.CampaignProgressHandler(r.Context(), p, r.PathValue("campaign_id"))
	if err != nil {
		writeReportDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContractorApprovalRate(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeReportError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.reports.Handler.ContractorApprovalRateHandler(r.Context(), p, r.PathValue("contractor_id"))
	if err != nil {
		writeReportDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
