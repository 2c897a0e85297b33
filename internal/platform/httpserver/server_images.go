package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"fieldproof/contexts/campaign-workflow/image-service/application/queries"
	imagehttp "fieldproof/contexts/campaign-workflow/image-service/transport/http"
)

// maxUploadMemory bounds the multipart parse buffer; larger file parts
// spill to disk. maxUploadBytes cuts the whole request off at the
// transport: the blob store's file cap plus multipart framing headroom.
const (
	maxUploadMemory = 8 << 20
	maxUploadBytes  = 12 << 20
)

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeImageError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "upload exceeds the maximum request size")
			return
		}
		writeImageError(w, http.StatusBadRequest, "invalid_multipart", "request body must be multipart/form-data with a file part")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeImageError(w, http.StatusBadRequest, "missing_file", "a file part named \"file\" is required")
		return
	}
	defer file.Close()

	resp, err := s.images.Handler.UploadImageHandler(
		r.Context(),
		p,
		r.PathValue("campaign_id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	query := r.URL.Query()
	resp, err := s.images.Handler.ListImagesHandler(r.Context(), p, r.PathValue("campaign_id"), queries.ListImagesQuery{
		Status: query.Get("status"),
	})
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.images.Handler.GetImageHandler(r.Context(), p, r.PathValue("image_id"))
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveImage(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.images.Handler.ApproveImageHandler(r.Context(), p, r.PathValue("image_id"))
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectImage(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req imagehttp.ReviewImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeImageError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.images.Handler.RejectImageHandler(r.Context(), p, r.PathValue("image_id"), req)
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.images.Handler.DeleteImageHandler(r.Context(), p, r.PathValue("image_id"))
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListImagesByUploader(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(r)
	if !ok {
		writeImageError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.images.Handler.ListImagesByUploaderHandler(r.Context(), p, r.PathValue("uploader_id"))
	if err != nil {
		writeImageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
