// Package httpserver is the single HTTP surface of the process: it mounts
// every module's routes on one mux, resolves the caller identity from the
// gateway headers, and carries the cross-cutting middleware (metrics, rate
// limiting on mutations).
package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	campaignservice "fieldproof/contexts/campaign-workflow/campaign-service"
	imageservice "fieldproof/contexts/campaign-workflow/image-service"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	reportingservice "fieldproof/contexts/reporting/reporting-service"
	"fieldproof/internal/platform/metrics"

	_ "fieldproof/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	limiter *rate.Limiter

	campaigns campaignservice.Module
	images    imageservice.Module
	reports   reportingservice.Module
}

type Options struct {
	Addr   string
	Logger *slog.Logger

	// MutationRateLimit is requests per second across all mutating routes;
	// zero disables the limiter. MutationBurst is the bucket size.
	MutationRateLimit float64
	MutationBurst     int
}

func New(
	campaigns campaignservice.Module,
	images imageservice.Module,
	reports reportingservice.Module,
	opts Options,
) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		campaigns: campaigns,
		images:    images,
		reports:   reports,
	}
	if opts.MutationRateLimit > 0 {
		burst := opts.MutationBurst
		if burst <= 0 {
			burst = int(opts.MutationRateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.MutationRateLimit), burst)
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.route("POST /api/v1/campaigns", s.mutation(s.handleCreateCampaign))
	s.route("GET /api/v1/campaigns", s.handleListCampaigns)
	s.route("GET /api/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.route("PATCH /api/v1/campaigns/{campaign_id}", s.mutation(s.handleUpdateCampaign))
	s.route("DELETE /api/v1/campaigns/{campaign_id}", s.mutation(s.handleDeleteCampaign))
	s.route("POST /api/v1/campaigns/{campaign_id}/status", s.mutation(s.handleTransitionStatus))
	s.route("POST /api/v1/campaigns/{campaign_id}/contractors", s.mutation(s.handleAssignContractor))
	s.route("DELETE /api/v1/campaigns/{campaign_id}/contractors/{contractor_id}", s.mutation(s.handleRemoveAssignment))

	s.route("POST /api/v1/campaigns/{campaign_id}/images", s.mutation(s.handleUploadImage))
	s.route("GET /api/v1/campaigns/{campaign_id}/images", s.handleListImages)
	s.route("GET /api/v1/images/{image_id}", s.handleGetImage)
	s.route("POST /api/v1/images/{image_id}/approve", s.mutation(s.handleApproveImage))
	s.route("POST /api/v1/images/{image_id}/reject", s.mutation(s.handleRejectImage))
	s.route("DELETE /api/v1/images/{image_id}", s.mutation(s.handleDeleteImage))
	s.route("GET /api/v1/uploaders/{uploader_id}/images", s.handleListImagesByUploader)

	s.route("GET /api/v1/reports/campaign-status", s.handleStatusCounts)
	s.route("GET /api/v1/campaigns/{campaign_id}/progress", s.handleCampaignProgress)
	s.route("GET /api/v1/contractors/{contractor_id}/approval-rate", s.handleContractorApprovalRate)
}

// route wraps a handler with request metrics keyed by the route pattern.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(recorder, r)
		metrics.ObserveRequest(pattern, strconv.Itoa(recorder.status), time.Since(start).Seconds())
		if recorder.status == http.StatusForbidden {
			metrics.PermissionDenials.WithLabelValues(pattern).Inc()
		}
	})
}

// mutation applies the shared token bucket to a mutating handler.
func (s *Server) mutation(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			metrics.RateLimited.Inc()
			writeServerError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		handler(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// resolvePrincipal reads the gateway identity headers. The process trusts
// them; authenticating the caller is the gateway's job.
func resolvePrincipal(r *http.Request) (identity.Principal, bool) {
	role, ok := identity.ParseRole(strings.TrimSpace(r.Header.Get("X-User-Role")))
	if !ok {
		return identity.Principal{}, false
	}
	p := identity.Principal{
		ID:        strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role:      role,
		CompanyID: strings.TrimSpace(r.Header.Get("X-Company-Id")),
	}
	if !p.Valid() {
		return identity.Principal{}, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
