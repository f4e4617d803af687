package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/msto63/mCALC/foundation/calc"
	mcparser "github.com/msto63/mCALC/foundation/calc/parser"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	"github.com/msto63/mCALC/internal/history/store"
	"github.com/msto63/mCALC/pkg/core/health"
)

// maxBodyBytes bounds request bodies; the engine applies its own rune limit
const maxBodyBytes = 1 << 20

// EvalRequest represents an evaluation request
type EvalRequest struct {
	Expression string `json:"expression"`
}

// EvalResponse represents an evaluation result. Result is null when the
// value is infinite or NaN; ResultText always carries the display form.
type EvalResponse struct {
	ID         string   `json:"id"`
	Expression string   `json:"expression"`
	Result     *float64 `json:"result"`
	ResultText string   `json:"result_text"`
	Tree       string   `json:"tree"`
	DurationMS float64  `json:"duration_ms"`
	Cached     bool     `json:"cached,omitempty"`
}

// TokenInfo represents one scanned token
type TokenInfo struct {
	Type     string   `json:"type"`
	Text     string   `json:"text,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Position int      `json:"position"`
}

// TokensResponse represents the token stream of an expression
type TokensResponse struct {
	Expression string      `json:"expression"`
	Tokens     []TokenInfo `json:"tokens"`
}

// HistoryItem represents one history entry
type HistoryItem struct {
	ID           string    `json:"id"`
	Expression   string    `json:"expression"`
	Result       *float64  `json:"result"`
	ResultText   string    `json:"result_text,omitempty"`
	Tree         string    `json:"tree,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   float64   `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse represents a page of history entries
type HistoryResponse struct {
	Entries []HistoryItem `json:"entries"`
	Total   int           `json:"total"`
}

// ClearResponse reports how many history entries were removed
type ClearResponse struct {
	Removed int64 `json:"removed"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Position *int   `json:"position,omitempty"`
}

// handleEval handles POST /api/v1/eval
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.evaluate(r.Context(), req.Expression)
	if err != nil {
		writeCodedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// evaluate runs one expression through cache, engine, metrics and history.
// Shared by the REST and WebSocket endpoints.
func (s *Server) evaluate(ctx context.Context, expression string) (*EvalResponse, error) {
	entry := store.NewEntry(expression)
	start := time.Now()

	var (
		res      *calc.Result
		cached   bool
		duration time.Duration
	)
	if v, ok := s.cache.Get(expression); ok {
		res, cached = v.(*calc.Result), true
		duration = time.Since(start)
		s.metrics.cacheHits.Inc()
		s.metrics.ObserveEvaluation(resultCached, duration)
	}

	if res == nil {
		var err error
		res, err = s.engine.Evaluate(ctx, expression)
		if err != nil {
			code := mcerror.GetCode(err)
			s.metrics.ObserveEvaluation(string(code), time.Since(start))

			entry.ErrorCode = string(code)
			entry.ErrorMessage = err.Error()
			entry.DurationMS = durationMS(time.Since(start))
			s.record(ctx, entry)
			return nil, err
		}
		duration = res.Duration
		s.metrics.ObserveEvaluation(resultOK, duration)
		s.cache.Set(expression, res)
	}

	entry.Result = res.Value
	entry.Tree = res.Infix()
	entry.DurationMS = durationMS(duration)
	s.record(ctx, entry)

	resp := &EvalResponse{
		ID:         entry.ID,
		Expression: expression,
		ResultText: res.ValueText(),
		Tree:       entry.Tree,
		DurationMS: entry.DurationMS,
		Cached:     cached,
	}
	if res.IsFinite() {
		v := res.Value
		resp.Result = &v
	}
	return resp, nil
}

// record stores a history entry; failures are logged, not returned
func (s *Server) record(ctx context.Context, entry *store.Entry) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("Failed to record history entry", "id", entry.ID, "error", err)
	}
}

// handleTokens handles POST /api/v1/tokens
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := s.engine.Tokenize(r.Context(), req.Expression)
	if err != nil {
		writeCodedError(w, err)
		return
	}

	resp := TokensResponse{
		Expression: req.Expression,
		Tokens:     make([]TokenInfo, len(tokens)),
	}
	for i, tok := range tokens {
		info := TokenInfo{
			Type:     tok.Type.String(),
			Text:     tok.Text,
			Position: tok.Position,
		}
		if tok.Type == mcparser.TokenNumber {
			v := tok.Number
			info.Value = &v
		}
		resp.Tokens[i] = info
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHistoryList handles GET /api/v1/history?limit=N
func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if !s.requireHistory(w) {
		return
	}

	limit := s.config.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, string(mcerror.CodeInvalidInput), "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	entries, err := s.history.List(r.Context(), limit)
	if err != nil {
		writeCodedError(w, err)
		return
	}
	total, err := s.history.Count(r.Context())
	if err != nil {
		writeCodedError(w, err)
		return
	}

	resp := HistoryResponse{Entries: make([]HistoryItem, len(entries)), Total: total}
	for i, e := range entries {
		resp.Entries[i] = toHistoryItem(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHistoryGet handles GET /api/v1/history/{id}
func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireHistory(w) {
		return
	}

	entry, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCodedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryItem(entry))
}

// handleHistoryClear handles DELETE /api/v1/history
func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if !s.requireHistory(w) {
		return
	}

	removed, err := s.history.Clear(r.Context())
	if err != nil {
		writeCodedError(w, err)
		return
	}
	s.logger.Info("History cleared", "removed", removed)
	writeJSON(w, http.StatusOK, ClearResponse{Removed: removed})
}

func (s *Server) requireHistory(w http.ResponseWriter) bool {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, string(mcerror.CodeServiceUnavailable), "History is disabled", nil)
		return false
	}
	return true
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := s.health.Check(ctx)
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func toHistoryItem(e *store.Entry) HistoryItem {
	item := HistoryItem{
		ID:           e.ID,
		Expression:   e.Expression,
		ResultText:   e.ResultText(),
		Tree:         e.Tree,
		ErrorCode:    e.ErrorCode,
		ErrorMessage: e.ErrorMessage,
		DurationMS:   e.DurationMS,
		CreatedAt:    e.CreatedAt,
	}
	if !e.Failed() && calc.IsFinite(e.Result) {
		v := e.Result
		item.Result = &v
	}
	return item
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, string(mcerror.CodeInputTooLong), "Request body too large", nil)
			return false
		}
		writeError(w, http.StatusBadRequest, string(mcerror.CodeInvalidInput), "Invalid JSON: "+err.Error(), nil)
		return false
	}
	return true
}

// errorBody converts an error into a status and response body
func errorBody(err error) (int, ErrorResponse) {
	e, ok := mcerror.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorResponse{
			Code:    string(mcerror.CodeInternal),
			Message: err.Error(),
		}
	}

	resp := ErrorResponse{Code: string(e.Code()), Message: e.Error()}
	if pos, ok := calc.ErrorPosition(err); ok {
		resp.Position = &pos
	}
	return e.Code().HTTPStatus(), resp
}

func writeCodedError(w http.ResponseWriter, err error) {
	status, resp := errorBody(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, position *int) {
	writeJSON(w, status, ErrorResponse{
		Code:     code,
		Message:  message,
		Position: position,
	})
}

// newRequestID returns an ID for WebSocket frames that carry none
func newRequestID() string {
	return uuid.New().String()
}
