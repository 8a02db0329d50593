package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/request"
	healthuc "github.com/meetlab/scholarmatch/internal/usecase/health"
	profilesuc "github.com/meetlab/scholarmatch/internal/usecase/profiles"
	recommenduc "github.com/meetlab/scholarmatch/internal/usecase/recommend"
)

// errorCode is a machine-readable error identifier in API responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeProfileNotFound        errorCode = "profile_not_found"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeStoreUnavailable       errorCode = "store_unavailable"
	codeInternalError          errorCode = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the recommendation and profile APIs over HTTP.
type Server struct {
	recommend     *recommenduc.Service
	profiles      *profilesuc.Service
	health        *healthuc.Service
	maxTopK       int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxTopK bounds the per-request
// top_k parameter; 0 means unbounded.
func NewServer(
	recommend *recommenduc.Service,
	profiles *profilesuc.Service,
	health *healthuc.Service,
	maxTopK int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		profiles:  profiles,
		health:    health,
		maxTopK:   maxTopK,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, codeProfileNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// RegisterRoutes mounts all API routes on the given router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/{user_id}/recommendations", s.Recommend)
		r.Get("/profiles", s.ListProfiles)
		r.Put("/profiles/{id}", s.UpsertProfile)
		r.Get("/profiles/{id}", s.GetProfile)
		r.Delete("/profiles/{id}", s.DeleteProfile)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type recommendRequest struct {
	TopK       *int     `json:"top_k"`
	MinScore   *float64 `json:"min_score"`
	ApplyMMR   *bool    `json:"apply_mmr"`
	MMRLambda  *float64 `json:"mmr_lambda"`
	Preference *string  `json:"preference"`
}

type recommendationItem struct {
	ProfileID   string  `json:"profile_id"`
	Score       float64 `json:"score"`
	MatchReason string  `json:"match_reason,omitempty"`
}

type recommendResponse struct {
	UserID          string               `json:"user_id"`
	Count           int                  `json:"count"`
	Recommendations []recommendationItem `json:"recommendations"`
}

// Recommend handles POST /api/v1/users/{user_id}/recommendations.
// An empty body means "all defaults".
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var body recommendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	topK := derefInt(body.TopK, request.DefaultTopK)
	minScore := derefFloat(body.MinScore, request.DefaultMinScore)
	applyMMR := derefBool(body.ApplyMMR, request.DefaultApplyMMR)
	mmrLambda := derefFloat(body.MMRLambda, request.DefaultMMRLambda)
	preference := ""
	if body.Preference != nil {
		preference = *body.Preference
	}

	if s.maxTopK > 0 && topK > s.maxTopK {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("top_k must be between 1 and %d", s.maxTopK))
		return
	}

	req, err := request.New(userID, topK, minScore, applyMMR, mmrLambda, preference)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	recs, err := s.recommend.Recommend(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recommendationItem, len(recs))
	for i := range recs {
		items[i] = recommendationItem{
			ProfileID:   recs[i].ProfileID(),
			Score:       recs[i].Score(),
			MatchReason: recs[i].MatchReason(),
		}
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		UserID:          userID,
		Count:           len(items),
		Recommendations: items,
	})
}

type profileRequest struct {
	Name        string    `json:"name"`
	Affiliation string    `json:"affiliation"`
	Interests   []string  `json:"interests"`
	Embedding   []float32 `json:"embedding"`
}

type profileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Affiliation string    `json:"affiliation,omitempty"`
	Interests   []string  `json:"interests,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

type profileListResponse struct {
	Items []profileResponse `json:"items"`
	Count int               `json:"count"`
}

// UpsertProfile handles PUT /api/v1/profiles/{id}.
func (s *Server) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body profileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, created, err := s.profiles.Upsert(r.Context(), id, body.Name, body.Affiliation, body.Interests, body.Embedding)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, profileToResponse(&p, false))
}

// GetProfile handles GET /api/v1/profiles/{id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(&p, true))
}

// ListProfiles handles GET /api/v1/profiles.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ps, err := s.profiles.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]profileResponse, len(ps))
	for i := range ps {
		items[i] = profileToResponse(&ps[i], false)
	}
	writeJSON(w, http.StatusOK, profileListResponse{Items: items, Count: len(items)})
}

// DeleteProfile handles DELETE /api/v1/profiles/{id}.
func (s *Server) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func profileToResponse(p *domprof.Profile, includeEmbedding bool) profileResponse {
	resp := profileResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Affiliation: p.Affiliation(),
		Interests:   p.Interests(),
	}
	if includeEmbedding {
		resp.Embedding = p.Embedding()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidParameter,
		domain.ErrProfileNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
