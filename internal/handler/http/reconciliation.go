package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
)

type ReconciliationHandler interface {
	ListIssues(w http.ResponseWriter, r *http.Request)
	RequestManualEntry(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
}

type reconciliationHandlerImpl struct {
	reconciliationService reconciliation.ReconciliationService
}

func NewReconciliationHandler(reconciliationService reconciliation.ReconciliationService) ReconciliationHandler {
	return &reconciliationHandlerImpl{reconciliationService: reconciliationService}
}

// ListIssues implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) ListIssues(w http.ResponseWriter, r *http.Request) {
	req := reconciliation.ListIssuesRequest{
		Month: r.URL.Query().Get("month"),
	}

	issues, err := h.reconciliationService.ListIssues(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, issues)
}

// RequestManualEntry implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) RequestManualEntry(w http.ResponseWriter, r *http.Request) {
	var req reconciliation.ManualRequestInput

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.reconciliationService.RequestManualEntry(r.Context(), req)
	if err != nil {
		slog.Error("RequestManualEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry requested", created)
}

// ListPendingRequests implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.reconciliationService.ListPendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
