package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/codelens-ai/codelens/internal/analyze"
	"github.com/codelens-ai/codelens/internal/providers"
	"github.com/codelens-ai/codelens/internal/redact"
	"github.com/codelens-ai/codelens/internal/tokens"
	"github.com/codelens-ai/codelens/internal/usage"
)

// maxUploadBytes bounds multipart uploads (original tool documents support
// for files up to 100KB; this is a generous transport-level cap).
const maxUploadBytes = 1 << 20

type analyzePayload struct {
	Code        string  `json:"code"`
	Language    string  `json:"language"`
	Mode        string  `json:"mode"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorPayload{Error: msg})
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload analyzePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	s.runAnalysis(w, r, payload)
}

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	if redact.BlockedPath(header.Filename, s.cfg.Privacy.RedactPaths) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("refusing to analyze %q: blocked by path policy", header.Filename))
		return
	}

	code, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading upload: %v", err))
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = analyze.DetectLanguage(header.Filename)
	}

	s.runAnalysis(w, r, analyzePayload{
		Code:     string(code),
		Language: language,
		Mode:     r.FormValue("mode"),
	})
}

// runAnalysis is the shared tail of both analyze endpoints: one provider
// call, one usage record on success.
func (s *Service) runAnalysis(w http.ResponseWriter, r *http.Request, payload analyzePayload) {
	req := analyze.Request{
		Code:        payload.Code,
		Language:    payload.Language,
		Mode:        analyze.Mode(payload.Mode),
		Temperature: payload.Temperature,
		MaxTokens:   payload.MaxTokens,
	}
	opts := analyze.Options{
		InputBudget:   s.cfg.InputBudget,
		RedactSecrets: s.cfg.Privacy.RedactSecrets,
		Rules:         s.rules,
		Model:         s.cfg.Model,
	}

	result, err := analyze.Run(r.Context(), s.completer, req, opts)
	if err != nil {
		var ve *analyze.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Error())
		case providers.IsRateLimited(err):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case providers.IsAuthError(err):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	s.usage.Record(usage.Entry{
		Timestamp:  result.Timestamp,
		Language:   result.Language,
		Mode:       string(result.Mode),
		DurationMs: result.DurationMs,
		Tokens:     result.TokensUsed,
	})

	writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.usage.Snapshot())
}

func (s *Service) handleUsageReset(w http.ResponseWriter, r *http.Request) {
	s.usage.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type metaPayload struct {
	Provider    string         `json:"provider"`
	Model       string         `json:"model"`
	Languages   []string       `json:"languages"`
	Modes       []analyze.Mode `json:"modes"`
	InputBudget int            `json:"inputBudget"`
	MaxTokens   int            `json:"maxTokens"`
	Temperature float64        `json:"temperature"`
}

func (s *Service) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metaPayload{
		Provider:    s.completer.Name(),
		Model:       s.cfg.Model,
		Languages:   analyze.SupportedLanguages,
		Modes:       analyze.Modes(),
		InputBudget: s.cfg.InputBudget,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(s.startTime).Seconds()),
	})
}

// estimatePayload is served to the UI for live token feedback.
type estimatePayload struct {
	Characters int `json:"characters"`
	Tokens     int `json:"tokens"`
	Budget     int `json:"budget"`
}

func (s *Service) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, estimatePayload{
		Characters: len(payload.Code),
		Tokens:     tokens.Estimate(payload.Code),
		Budget:     s.cfg.InputBudget,
	})
}
