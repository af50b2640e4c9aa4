package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	TodaySnapshot(w http.ResponseWriter, r *http.Request)
	DaySummary(w http.ResponseWriter, r *http.Request)
	Backfill(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	ListMySessions(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService     attendance.AttendanceService
	reconciliationService reconciliation.ReconciliationService
}

func NewAttendanceHandler(
	attendanceService attendance.AttendanceService,
	reconciliationService reconciliation.ReconciliationService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService:     attendanceService,
		reconciliationService: reconciliationService,
	}
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PunchIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	snapshot, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		// The blocked response carries the issues so the client can show
		// what must be resolved first.
		if errors.Is(err, attendance.ErrBlockedByIssues) {
			h.respondBlocked(w, r)
			return
		}
		slog.Error("PunchIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punched in successfully", snapshot)
}

func (h *attendanceHandlerImpl) respondBlocked(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	blocking, err := h.reconciliationService.BlockingIssues(r.Context(), sess.EmployeeID, sess.Timezone)
	if err != nil {
		slog.Error("Failed to derive blocking issues", "error", err)
		response.Conflict(w, "Unresolved attendance issues on earlier days block punching in")
		return
	}

	response.ConflictWithData(w,
		"Unresolved attendance issues on earlier days block punching in",
		map[string]interface{}{"blocking_issues": blocking},
	)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PunchOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	snapshot, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		slog.Error("PunchOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// TodaySnapshot implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodaySnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.attendanceService.TodaySnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// DaySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) DaySummary(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	summary, err := h.attendanceService.DaySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Backfill implements AttendanceHandler.
func (h *attendanceHandlerImpl) Backfill(w http.ResponseWriter, r *http.Request) {
	var req attendance.BackfillRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Backfill decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.attendanceService.Backfill(r.Context(), req)
	if err != nil {
		slog.Error("Backfill service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.attendanceService.ManualEntry(r.Context(), req)
	if err != nil {
		slog.Error("ManualEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry recorded", created)
}

// ListMySessions implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMySessions(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MySessionsFilter{}

	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	list, err := h.attendanceService.ListMySessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(list.TotalCount) / list.Limit
	if int(list.TotalCount)%list.Limit != 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, list.Sessions, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: totalPages,
	})
}
