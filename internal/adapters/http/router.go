package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/ports"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/observability/metrics"
)

const (
	serviceName = "match-api"

	maxUploadBytes    = 32 << 20
	backpressureWait  = 200 * time.Millisecond
	resumeFileField   = "resume"
	resumeTextField   = "resume_text"
	jobDescriptionKey = "job_description"
	resumeKindField   = "resume_kind"
)

type Router struct {
	matcher ports.ResumeMatcher
	metrics *metrics.Metrics

	rateLimitRPS   float64
	rateLimitBurst int
	maxInFlight    int
}

func NewRouter(matcher ports.ResumeMatcher, m *metrics.Metrics, rateLimitRPS float64, rateLimitBurst, maxInFlight int) *Router {
	return &Router{
		matcher:        matcher,
		metrics:        m,
		rateLimitRPS:   rateLimitRPS,
		rateLimitBurst: rateLimitBurst,
		maxInFlight:    maxInFlight,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/match", rt.match)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = backpressureMiddleware(handler, rt.maxInFlight, backpressureWait)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) match(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	req, err := parseMatchRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	report, err := rt.matcher.Match(r.Context(), req)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if rt.metrics != nil {
			rt.metrics.RecordMatchFailure(serviceName, matchFailureStatus(err))
		}
		slog.Error("match_failed",
			"request_id", requestIDFromContext(r.Context()),
			"status", status,
			"error", err,
		)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordMatchSuccess(serviceName, time.Since(start), report.CombinedScore, report.ExtractionStrategy, report.LowConfidence)
	}
	writeJSON(w, http.StatusOK, report)
}

// parseMatchRequest accepts the original upload form shape: an optional
// resume file plus resume_text, and the job description textarea. At least
// one resume source is required.
func parseMatchRequest(r *http.Request) (domain.MatchRequest, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.MatchRequest{}, errors.New("request must be multipart/form-data")
	}

	req := domain.MatchRequest{
		JobDescription: r.FormValue(jobDescriptionKey),
		Resume: domain.Document{
			ManualText: r.FormValue(resumeTextField),
		},
	}

	file, header, err := r.FormFile(resumeFileField)
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return domain.MatchRequest{}, errors.New("read resume upload")
		}
		req.Resume.Data = data
		req.Resume.Filename = header.Filename
		req.Resume.Kind = resumeKind(r.FormValue(resumeKindField), header.Filename)
	case errors.Is(err, http.ErrMissingFile):
		if strings.TrimSpace(req.Resume.ManualText) == "" {
			return domain.MatchRequest{}, errors.New("either a resume file or resume_text is required")
		}
	default:
		return domain.MatchRequest{}, errors.New("invalid resume upload")
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return domain.MatchRequest{}, errors.New("job_description is required")
	}
	return req, nil
}

func resumeKind(declared, filename string) domain.DocumentKind {
	switch domain.DocumentKind(strings.ToLower(strings.TrimSpace(declared))) {
	case domain.KindPDF:
		return domain.KindPDF
	case domain.KindScannedPDF:
		return domain.KindScannedPDF
	case domain.KindPlainText:
		return domain.KindPlainText
	}
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return domain.KindPlainText
	}
	return domain.KindPDF
}

func matchFailureStatus(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid_input"
	case domain.IsKind(err, domain.ErrCapabilityUnavailable):
		return "capability_unavailable"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
