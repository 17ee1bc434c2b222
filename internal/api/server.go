// internal/api/server.go
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/metrics"
	"enre-reclamos/internal/models"
	listclaims "enre-reclamos/internal/workers/claims/list-claims"
	submitclaim "enre-reclamos/internal/workers/claims/submit-claim"
	toggleschedule "enre-reclamos/internal/workers/schedule/toggle-schedule"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ClaimSubmitter interface {
	Execute(ctx context.Context, input *submitclaim.Input) (*submitclaim.Output, error)
}

type ClaimLister interface {
	Execute(ctx context.Context) (*listclaims.Output, error)
}

type ScheduleToggler interface {
	Execute(ctx context.Context, input *toggleschedule.Input) (*models.ToggleResult, error)
}

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

type Dependencies struct {
	Logger    logger.Logger
	Submitter ClaimSubmitter
	Lister    ClaimLister
	Toggler   ScheduleToggler
	Ready     map[string]ReadinessCheck
}

// Server is the token gated control surface.
type Server struct {
	name      string
	version   string
	code      string
	logger    logger.Logger
	errors    *errors.ErrorHandler
	submitter ClaimSubmitter
	lister    ClaimLister
	toggler   ScheduleToggler
	ready     map[string]ReadinessCheck
}

// NewServer requires validationCode to be a UUID; it is compared in canonical form.
func NewServer(name, version, validationCode string, deps Dependencies) (*Server, error) {
	code, err := uuid.Parse(validationCode)
	if err != nil {
		return nil, fmt.Errorf("validation code must be a UUID")
	}
	if deps.Submitter == nil || deps.Lister == nil || deps.Toggler == nil {
		return nil, fmt.Errorf("submitter, lister and toggler are required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Server{
		name:      name,
		version:   version,
		code:      code.String(),
		logger:    log.WithFields(map[string]interface{}{"component": "control-api"}),
		errors:    errors.NewErrorHandler(log),
		submitter: deps.Submitter,
		lister:    deps.Lister,
		toggler:   deps.Toggler,
		ready:     deps.Ready,
	}, nil
}

// Routes builds the request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /{$}", s.handleVersion)
	s.handle(mux, "GET /start/{code}", s.gated(s.handleToggle(true)))
	s.handle(mux, "GET /stop/{code}", s.gated(s.handleToggle(false)))
	s.handle(mux, "GET /list/{code}", s.gated(s.handleList))
	s.handle(mux, "GET /run/{code}", s.gated(s.handleRun))

	s.handle(mux, "GET /health", s.handleHealth)
	s.handle(mux, "GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.instrument(pattern, h))
}

// instrument counts and logs requests by route pattern. The raw path holds
// the token and is never logged.
func (s *Server) instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.ControlRequests.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
		s.logger.Debug("request served", map[string]interface{}{
			"route":      pattern,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

// gated rejects requests whose path token is not a UUID (404) or is not the
// validation code (401). Nothing downstream runs on rejection.
func (s *Server) gated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := uuid.Parse(r.PathValue("code"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if subtle.ConstantTimeCompare([]byte(code.String()), []byte(s.code)) != 1 {
			s.errors.WriteError(w, r, errors.NewUnauthorizedError())
			return
		}
		next(w, r)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "%s %s", s.name, s.version)
}

func (s *Server) handleToggle(enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.toggler.Execute(r.Context(), &toggleschedule.Input{Enable: enable})
		if err != nil {
			s.errors.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	output, err := s.lister.Execute(r.Context())
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Claims)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	output, err := s.submitter.Execute(r.Context(), &submitclaim.Input{Trigger: "manual"})
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	for name, check := range s.ready {
		if err := check(ctx); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not ready",
			"failed": failed,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
