package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/pkg/sma"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, docs []string) (*sma.Report, error)
}

// DocumentLoader resolves a platform name to its stored comments.
type DocumentLoader interface {
	Load(ctx context.Context, platform string) ([]string, error)
	Names() []string
}

// AnalyzeHandler handles analysis requests
type AnalyzeHandler struct {
	analyzer Analyzer
	loader   DocumentLoader
	maxBody  int64
	log      zerolog.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(analyzer Analyzer, loader DocumentLoader, maxBody int64, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		loader:   loader,
		maxBody:  maxBody,
		log:      log,
	}
}

// AnalyzeRequest selects the documents to analyze. Documents win over Platform.
type AnalyzeRequest struct {
	Platform  string   `json:"platform"`
	Documents []string `json:"documents"`
}

// Analyze runs the pipeline over inline documents or a platform's stored comments.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	docs := req.Documents
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if len(docs) == 0 {
		if platform == "" {
			h.respondWithError(w, http.StatusBadRequest, "platform or documents required", nil)
			return
		}
		if h.loader == nil {
			h.respondWithError(w, http.StatusBadRequest, "no document sources configured", nil)
			return
		}
		loaded, err := h.loader.Load(r.Context(), platform)
		if err != nil {
			h.respondWithError(w, statusFor(err), messageFor(err), err)
			return
		}
		docs = loaded
	}

	report, err := h.analyzer.Analyze(r.Context(), docs)
	if err != nil {
		h.respondWithError(w, statusFor(err), messageFor(err), err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// Platforms lists the configured platform names.
func (h *AnalyzeHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if h.loader != nil {
		names = h.loader.Names()
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{"platforms": names})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput),
		errors.Is(err, internalerr.ErrSchema),
		errors.Is(err, internalerr.ErrUnknownSource):
		return http.StatusBadRequest
	case errors.Is(err, internalerr.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput):
		return "No valid documents to analyze"
	case errors.Is(err, internalerr.ErrSchema):
		return "No valid text column found"
	case errors.Is(err, internalerr.ErrUnknownSource):
		return "File not found or platform invalid"
	case errors.Is(err, internalerr.ErrNoContent):
		return "Corpus has no analyzable terms"
	case errors.Is(err, context.DeadlineExceeded):
		return "Analysis timed out"
	default:
		return "Analysis failed"
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func (h *AnalyzeHandler) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	if err != nil && code >= 500 {
		h.log.Error().Err(err).Int("code", code).Msg(message)
	} else if err != nil {
		h.log.Debug().Err(err).Int("code", code).Msg(message)
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
