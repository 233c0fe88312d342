package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/nofa/openclaw/service/opportunity"
	"github.com/nofa/openclaw/service/task"
	"github.com/nofa/openclaw/service/workflow"
	"github.com/nofa/openclaw/tracing"
)

// Service routes HTTP traffic to the task and opportunity stores.
type Service struct {
	tasks         task.Service
	opportunities opportunity.Service
	logger        zerolog.Logger
}

// New creates the gateway.
func New(tasks task.Service, opportunities opportunity.Service, logger zerolog.Logger) *Service {
	return &Service{tasks: tasks, opportunities: opportunities, logger: logger}
}

// Router builds the chi router with all endpoints mounted under
// /nofa/openclaw.
func (g *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(g.requestLogger)

	r.Route("/nofa/openclaw", func(r chi.Router) {
		r.Post("/accounts", g.handleConnectAccount)
		r.Post("/suggestions", g.handleCreateSuggestion)
		r.Post("/approvals", g.handleSubmitApproval)
		r.Get("/tasks/{taskID}", g.handleGetTask)

		r.Route("/skill", func(r chi.Router) {
			r.Post("/opportunities", g.handleCreateOpportunity)
			r.Get("/opportunities", g.handleListOpportunities)
			r.Get("/opportunities/next", g.handleNextOpportunity)
			r.Post("/opportunities/{opportunityID}/decision", g.handleSubmitDecision)
			r.Get("/decisions", g.handleListDecisions)
			r.Get("/admin", g.handleAdminConsole)
		})
	})
	return r
}

func (g *Service) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		g.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	})
}

type accountConnectRequest struct {
	UserID    string `json:"user_id"`
	Exchange  string `json:"exchange"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Label     string `json:"label,omitempty"`
	Mode      string `json:"mode"`
}

// handleConnectAccount is the mock account-connect endpoint: credentials are
// acknowledged, masked and never verified or stored.
func (g *Service) handleConnectAccount(w http.ResponseWriter, r *http.Request) {
	var body accountConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" || body.Exchange == "" {
		fail(w, r, http.StatusBadRequest, "Invalid account connect payload", codeMalformedRequest)
		return
	}
	ok(w, map[string]any{
		"account_id":           "acc_" + body.Exchange + "_demo_" + body.UserID,
		"status":               "connected_mock",
		"permissions_detected": []string{"trade", "read"},
		"masked_key":           maskKey(body.APIKey),
	}, "OpenClaw connected to NOFA account (mock)")
}

func maskKey(value string) string {
	if len(value) <= 7 {
		if len(value) < 2 {
			return value + "***"
		}
		return value[:2] + "***"
	}
	return value[:4] + "***" + value[len(value)-4:]
}

func (g *Service) handleCreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var suggestion task.Suggestion
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil || suggestion.SuggestionID == "" {
		fail(w, r, http.StatusBadRequest, "Invalid suggestion payload", codeMalformedRequest)
		return
	}

	ctx, span := tracing.StartSpan(r.Context(), "task.create", "SERVER")
	snapshot, duplicate, err := g.tasks.CreateTask(ctx, &suggestion)
	tracing.EndSpan(span, err)
	if err != nil {
		g.failTask(w, r, err)
		return
	}

	message := "Suggestion delivered to OpenClaw approval channel (mock)"
	if duplicate {
		message = "Duplicate suggestion ignored (idempotent)"
	}
	ok(w, map[string]any{
		"task_id":         snapshot.TaskID,
		"delivery_status": "sent_mock",
		"approval_status": snapshot.State,
	}, message)
}

func (g *Service) handleSubmitApproval(w http.ResponseWriter, r *http.Request) {
	var approval task.Approval
	if err := json.NewDecoder(r.Body).Decode(&approval); err != nil || approval.TaskID == "" {
		fail(w, r, http.StatusBadRequest, "Invalid approval payload", codeMalformedRequest)
		return
	}

	ctx, span := tracing.StartSpan(r.Context(), "task.applyApproval", "SERVER")
	snapshot, duplicate, err := g.tasks.ApplyApproval(ctx, &approval)
	tracing.EndSpan(span, err)
	if err != nil {
		g.failTask(w, r, err)
		return
	}

	if duplicate {
		ok(w, approvalData(snapshot, true), "Duplicate approval ignored (idempotent)")
		return
	}
	if snapshot.State == task.StateRejected {
		ok(w, approvalData(snapshot, false), "Rejection accepted")
		return
	}
	ok(w, approvalData(snapshot, false), "Approval accepted")
}

// approvalData reports the transition the caller triggered. A fresh yes is
// reported as next_state=approved with the execution already underway, which
// is what the approval channel expects to display.
func approvalData(t *task.Task, duplicate bool) map[string]any {
	nextState := "approved"
	executionStatus := "executing_mock"
	switch {
	case t.State == task.StateRejected:
		nextState, executionStatus = "rejected", "canceled"
	case duplicate && t.State == task.StateExecuted:
		nextState = "executed"
	}
	return map[string]any{
		"status":           "accepted",
		"next_state":       nextState,
		"execution_status": executionStatus,
	}
}

func (g *Service) handleGetTask(w http.ResponseWriter, r *http.Request) {
	snapshot, err := g.tasks.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		g.failTask(w, r, err)
		return
	}
	ok(w, snapshot, "Task fetched")
}

type opportunityRequest struct {
	Pair        string  `json:"pair"`
	Action      string  `json:"action"`
	Quantity    float64 `json:"qty"`
	Leverage    string  `json:"lev"`
	Rationale   string  `json:"rationale,omitempty"`
	Source      string  `json:"source,omitempty"`
	RequestedBy string  `json:"requested_by,omitempty"`
}

func (g *Service) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var body opportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Pair == "" {
		fail(w, r, http.StatusBadRequest, "Invalid opportunity payload", codeMalformedRequest)
		return
	}
	item, err := g.opportunities.Create(r.Context(), &opportunity.Opportunity{
		Title:       body.Source,
		Pair:        body.Pair,
		Action:      body.Action,
		Quantity:    body.Quantity,
		Leverage:    body.Leverage,
		Rationale:   body.Rationale,
		RequestedBy: body.RequestedBy,
	})
	if err != nil {
		g.failOpportunity(w, r, err)
		return
	}
	ok(w, item, "NOFA Trading Opportunity created for OpenClaw")
}

func (g *Service) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	items, err := g.opportunities.List(r.Context())
	if err != nil {
		g.failOpportunity(w, r, err)
		return
	}
	ok(w, items, "Opportunity list fetched")
}

func (g *Service) handleNextOpportunity(w http.ResponseWriter, r *http.Request) {
	item, err := g.opportunities.NextPending(r.Context())
	if err != nil {
		g.failOpportunity(w, r, err)
		return
	}
	message := "Next pending opportunity fetched"
	if item == nil {
		message = "No pending opportunity"
	}
	ok(w, item, message)
}

type decisionRequest struct {
	UserID   string `json:"user_id"`
	Decision string `json:"decision"`
	Channel  string `json:"channel,omitempty"`
	RawText  string `json:"raw_text,omitempty"`
}

func (g *Service) handleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		fail(w, r, http.StatusBadRequest, "Invalid decision payload", codeMalformedRequest)
		return
	}

	ctx, span := tracing.StartSpan(r.Context(), "opportunity.applyDecision", "SERVER")
	item, duplicate, err := g.opportunities.ApplyDecision(ctx, chi.URLParam(r, "opportunityID"), &opportunity.Decision{
		UserID:   body.UserID,
		Decision: body.Decision,
		Channel:  body.Channel,
		RawText:  body.RawText,
	})
	tracing.EndSpan(span, err)
	if err != nil {
		g.failOpportunity(w, r, err)
		return
	}
	ok(w, map[string]any{
		"opportunity_id": item.ID,
		"status":         item.Status,
		"decision":       item.Decision,
		"duplicate":      duplicate,
	}, "Decision recorded")
}

func (g *Service) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	decisions, err := g.opportunities.Decisions(r.Context())
	if err != nil {
		g.failOpportunity(w, r, err)
		return
	}
	ok(w, decisions, "Decision log fetched")
}

func (g *Service) failTask(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *workflow.ConflictError
	if errors.As(err, &conflict) && conflict.Diff != "" {
		g.logger.Warn().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("diff", conflict.Diff).
			Msg("conflicting approval resubmission")
	}
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		fail(w, r, http.StatusNotFound, "Task not found", codeTaskNotFound)
	case errors.Is(err, workflow.ErrMismatch):
		fail(w, r, http.StatusForbidden, "User/account or suggestion mismatch", codeSuggestionMatch)
	case errors.Is(err, workflow.ErrNeedsConfirmation):
		fail(w, r, http.StatusUnprocessableEntity, "Unknown decision text, needs_confirmation", codeTaskNeedsConfirm)
	case errors.Is(err, workflow.ErrConflict):
		fail(w, r, http.StatusConflict, "Duplicate approval callback (conflict payload)", codeTaskConflict)
	case errors.Is(err, workflow.ErrInvalidState):
		fail(w, r, http.StatusConflict, "Task state does not accept approval", codeTaskConflict)
	default:
		fail(w, r, http.StatusBadRequest, err.Error(), codeMalformedRequest)
	}
}

func (g *Service) failOpportunity(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		fail(w, r, http.StatusNotFound, "Opportunity not found", codeOppNotFound)
	case errors.Is(err, workflow.ErrNeedsConfirmation):
		fail(w, r, http.StatusUnprocessableEntity, "Unknown decision text, needs_confirmation", codeOppNeedsConfirm)
	case errors.Is(err, workflow.ErrInvalidState), errors.Is(err, workflow.ErrConflict):
		fail(w, r, http.StatusConflict, "Opportunity does not accept decision in current state", codeOppInvalidState)
	default:
		fail(w, r, http.StatusBadRequest, err.Error(), codeMalformedRequest)
	}
}
