package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nofa/openclaw/internal/clock"
)

// envelope is the uniform success response body.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// errorBody is the uniform failure response body. Code is the service-level
// error code consumers switch on; the HTTP status only mirrors its class.
type errorBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Service-level error codes, grouped by workflow.
const (
	codeTaskNotFound     = 40401
	codeSuggestionMatch  = 40301
	codeTaskNeedsConfirm = 42201
	codeTaskConflict     = 40901
	codeOppNotFound      = 40411
	codeOppNeedsConfirm  = 42211
	codeOppInvalidState  = 40911
	codeMalformedRequest = 40001
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func fail(w http.ResponseWriter, r *http.Request, status int, message string, code int) {
	writeJSON(w, status, errorBody{
		Success:   false,
		Message:   message,
		Code:      code,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: clock.NowUTC().Format("2006-01-02T15:04:05Z"),
	})
}
