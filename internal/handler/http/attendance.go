package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	YearMonths(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler. The body is optional.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req attendance.ClockInRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("ClockIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ClockIn(r.Context(), principal, req)
	if err != nil {
		slog.Error("ClockIn service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.Created(w, response.Msg("CLOCK_IN_SUCCESS", "Clocked in"), resp)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ClockOut(r.Context(), principal, req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("CLOCK_OUT_SUCCESS", "Clocked out"), resp)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	req := attendance.TodayRequest{Date: r.URL.Query().Get("date")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.GetToday(r.Context(), principal, req)
	if err != nil {
		slog.Error("Today service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("ATTENDANCE_FETCHED", "Attendance retrieved"), resp)
}

// Monthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := attendance.MonthlySummaryRequest{
		YearMonth:     query.Get("yearMonth"),
		StartWorkTime: query.Get("startWorkTime"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.MonthlySummary(r.Context(), principal, req)
	if err != nil {
		slog.Error("Monthly service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("MONTHLY_SUMMARY", "Monthly summary retrieved"), resp)
}

// YearMonths implements AttendanceHandler.
func (h *attendanceHandlerImpl) YearMonths(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.ListYearMonths(r.Context(), principal)
	if err != nil {
		slog.Error("YearMonths service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
