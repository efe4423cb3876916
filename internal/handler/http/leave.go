package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Leave types
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpsertTypes(w http.ResponseWriter, r *http.Request)
	DeleteTypes(w http.ResponseWriter, r *http.Request)

	// Policy
	GetPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)

	// Requests
	Yearly(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
	loc          *time.Location
	now          func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService, loc *time.Location) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
		loc:          loc,
		now:          time.Now,
	}
}

// yearParam reads the "year" query value, defaulting to the current year.
func (h *leaveHandlerImpl) yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return h.now().In(h.loc).Year(), nil
	}
	year, err := validator.ParseYear(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: "year", Message: "year " + err.Error()}}
	}
	return year, nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: "id", Message: "id must be a positive integer"}}
	}
	return id, nil
}

// ListTypes implements LeaveHandler.
func (h *leaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		slog.Error("ListTypes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_TYPES_FETCHED", "Leave types retrieved"), resp)
}

// UpsertTypes implements LeaveHandler.
func (h *leaveHandlerImpl) UpsertTypes(w http.ResponseWriter, r *http.Request) {
	var req leave.UpsertLeaveTypesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertTypes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.UpsertLeaveTypes(r.Context(), req)
	if err != nil {
		slog.Error("UpsertTypes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_TYPES_UPSERTED", "Leave types saved"), resp)
}

// DeleteTypes implements LeaveHandler.
func (h *leaveHandlerImpl) DeleteTypes(w http.ResponseWriter, r *http.Request) {
	var req leave.DeleteLeaveTypesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DeleteTypes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.DeleteLeaveTypes(r.Context(), req)
	if err != nil {
		slog.Error("DeleteTypes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_TYPES_DELETED", "Leave types deleted"), resp)
}

// GetPolicy implements LeaveHandler. The policy row is created on first read.
func (h *leaveHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.GetLeavePolicy(r.Context(), year)
	if err != nil {
		slog.Error("GetPolicy service error", "error", err, "year", year)
		response.HandleError(w, err)
		return
	}

	if resp.Created {
		response.Created(w, response.Msg("LEAVE_POLICY_CREATED", "Leave policy created"), resp)
		return
	}
	response.SuccessWithMessage(w, response.Msg("LEAVE_POLICY_FETCHED", "Leave policy retrieved"), resp)
}

// UpdatePolicy implements LeaveHandler.
func (h *leaveHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeavePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.UpdateLeavePolicy(r.Context(), req)
	if err != nil {
		slog.Error("UpdatePolicy service error", "error", err, "year", req.Year)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_POLICY_UPDATED", "Leave policy updated"), resp)
}

// Yearly implements LeaveHandler.
func (h *leaveHandlerImpl) Yearly(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	year, err := h.yearParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.GetLeaves(r.Context(), principal, year)
	if err != nil {
		slog.Error("Yearly service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVES_FETCHED", "Leaves retrieved"), resp)
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.CreateLeave(r.Context(), principal, req)
	if err != nil {
		slog.Error("CreateLeave service error", "error", err, "email", principal.Email)
		response.HandleError(w, err)
		return
	}

	response.Created(w, response.Msg("LEAVE_REQUESTED", "Leave request submitted"), resp)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.ApproveLeave(r.Context(), principal, id)
	if err != nil {
		slog.Error("ApproveLeave service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_APPROVED", "Leave request approved"), resp)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.RejectLeave(r.Context(), principal, id, req)
	if err != nil {
		slog.Error("RejectLeave service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LEAVE_REJECTED", "Leave request rejected"), resp)
}
