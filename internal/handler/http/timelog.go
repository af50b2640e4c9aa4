package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimelogHandler interface {
	LogBatch(w http.ResponseWriter, r *http.Request)
	DayLogs(w http.ResponseWriter, r *http.Request)
	RemainingBudget(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	ListTasks(w http.ResponseWriter, r *http.Request)
}

type timelogHandlerImpl struct {
	timelogService timelog.TimelogService
}

func NewTimelogHandler(timelogService timelog.TimelogService) TimelogHandler {
	return &timelogHandlerImpl{timelogService: timelogService}
}

// LogBatch implements TimelogHandler.
func (h *timelogHandlerImpl) LogBatch(w http.ResponseWriter, r *http.Request) {
	var req timelog.LogBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("LogBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	logs, err := h.timelogService.LogBatch(r.Context(), req)
	if err != nil {
		slog.Error("LogBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time logged successfully", logs)
}

// DayLogs implements TimelogHandler.
func (h *timelogHandlerImpl) DayLogs(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	logs, err := h.timelogService.DayLogs(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// RemainingBudget implements TimelogHandler.
func (h *timelogHandlerImpl) RemainingBudget(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	budget, err := h.timelogService.RemainingBudget(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, budget)
}

// UpdateEntry implements TimelogHandler.
func (h *timelogHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req timelog.UpdateEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	entry, err := h.timelogService.UpdateEntry(r.Context(), req)
	if err != nil {
		slog.Error("UpdateEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// DeleteEntry implements TimelogHandler.
func (h *timelogHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.timelogService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time log entry deleted", nil)
}

// ListTasks implements TimelogHandler.
func (h *timelogHandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.timelogService.ListTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}
