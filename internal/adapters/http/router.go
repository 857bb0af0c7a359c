package httpadapter

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/brieflab/briefsight/internal/config"
	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/ports"
	"github.com/brieflab/briefsight/internal/observability/metrics"
)

const (
	serviceName      = "api"
	backpressureWait = 2 * time.Second
)

type Router struct {
	cfg         config.Config
	ingestor    ports.BriefIngestor
	reader      ports.BriefReader
	analyzer    ports.TextAnalyzer
	metrics     *metrics.HTTPServerMetrics
	allowedExts map[string]struct{}
}

func NewRouter(
	cfg config.Config,
	ingestor ports.BriefIngestor,
	reader ports.BriefReader,
	analyzer ports.TextAnalyzer,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:         cfg,
		ingestor:    ingestor,
		reader:      reader,
		analyzer:    analyzer,
		metrics:     serverMetrics,
		allowedExts: parseExtensions(cfg.AllowedExtensions),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/briefs", rt.uploadBrief)
	mux.HandleFunc("/v1/briefs/", rt.getBriefByID)
	mux.HandleFunc("/v1/insights", rt.analyzeText)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.onRateLimited)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) onRateLimited(path string) {
	if rt.metrics != nil {
		rt.metrics.RecordRateLimited(serviceName, path)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadBrief(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes+1)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := rt.allowedExts[ext]; !ok {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{
			"error": "unsupported file extension, allowed: " + rt.cfg.AllowedExtensions,
		})
		return
	}
	if rt.cfg.MaxUploadBytes > 0 && fileHeader.Size > rt.cfg.MaxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file exceeds upload size limit"})
		return
	}

	brief, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, ext, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, brief)
}

func (rt *Router) getBriefByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/briefs/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "brief id is required"})
		return
	}

	brief, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, brief)
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	insights, err := rt.analyzer.AnalyzeText(r.Context(), req.Text)
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(serviceName, "/v1/insights", err, len(req.Text), time.Since(start))
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	rt.recordInsightMetrics(insights)
	writeJSON(w, http.StatusOK, insights)
}

func (rt *Router) recordInsightMetrics(insights domain.Insights) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordDocumentType(serviceName, insights.DocumentType.Label)
	rt.metrics.RecordCategoryMatches(serviceName, "copy_rules", len(insights.Guidelines.CopyRules))
	rt.metrics.RecordCategoryMatches(serviceName, "design_rules", len(insights.Guidelines.DesignRules))
	rt.metrics.RecordCategoryMatches(serviceName, "accessibility_rules", len(insights.Guidelines.AccessibilityRules))
	rt.metrics.RecordCategoryMatches(serviceName, "legal_rules", len(insights.Guidelines.LegalRules))
	rt.metrics.RecordCategoryMatches(serviceName, "warnings", len(insights.Warnings))
}

func parseExtensions(csv string) map[string]struct{} {
	exts := make(map[string]struct{})
	for _, ext := range strings.Split(csv, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return exts
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
