package httpserver

import (
	"errors"
	"net/http"

	campaignerrors "fieldproof/contexts/campaign-workflow/campaign-service/domain/errors"
	campaignhttp "fieldproof/contexts/campaign-workflow/campaign-service/transport/http"
	imageerrors "fieldproof/contexts/campaign-workflow/image-service/domain/errors"
	imagehttp "fieldproof/contexts/campaign-workflow/image-service/transport/http"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	reporterrors "fieldproof/contexts/reporting/reporting-service/domain/errors"
	reporthttp "fieldproof/contexts/reporting/reporting-service/transport/http"
	"fieldproof/internal/platform/metrics"
)

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policyerrors.ErrPermissionDenied):
		writeCampaignError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidTransition):
		metrics.StateConflicts.WithLabelValues("invalid_transition").Inc()
		writeCampaignError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidState):
		metrics.StateConflicts.WithLabelValues("invalid_state").Inc()
		writeCampaignError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, campaignerrors.ErrAssignmentConflict):
		metrics.StateConflicts.WithLabelValues("assignment_conflict").Inc()
		writeCampaignError(w, http.StatusConflict, "assignment_conflict", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput):
		writeCampaignError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeImageDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policyerrors.ErrPermissionDenied):
		writeImageError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, imageerrors.ErrImageNotFound):
		writeImageError(w, http.StatusNotFound, "image_not_found", err.Error())
	case errors.Is(err, imageerrors.ErrCampaignNotFound):
		writeImageError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, imageerrors.ErrInvalidState):
		metrics.StateConflicts.WithLabelValues("review_conflict").Inc()
		writeImageError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, imageerrors.ErrFileRejected):
		writeImageError(w, http.StatusUnprocessableEntity, "file_rejected", err.Error())
	case errors.Is(err, imageerrors.ErrInvalidImageInput):
		writeImageError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		writeImageError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReportDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policyerrors.ErrPermissionDenied):
		writeReportError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, reporterrors.ErrCampaignNotFound):
		writeReportError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	default:
		writeReportError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{Code: code, Message: message})
}

func writeImageError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, imagehttp.ErrorResponse{Code: code, Message: message})
}

func writeReportError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reporthttp.ErrorResponse{Code: code, Message: message})
}

// writeServerError reports failures owned by the platform layer itself,
// independent of which service the route belongs to.
func writeServerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: code, Message: message})
}
