package leave

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE TYPE DTOs
// ========================================

type UpsertLeaveTypeItem struct {
	ID   *int   `json:"id,omitempty"`
	Type string `json:"type"`
	Days *Days  `json:"days"`
}

type UpsertLeaveTypesRequest struct {
	LeaveTypes []UpsertLeaveTypeItem `json:"leaveTypes"`
}

func (r *UpsertLeaveTypesRequest) Validate() error {
	if len(r.LeaveTypes) == 0 {
		return ErrLeaveTypesRequired
	}

	var errs validator.ValidationErrors
	for i := range r.LeaveTypes {
		item := &r.LeaveTypes[i]
		item.Type = strings.TrimSpace(item.Type)
		prefix := fmt.Sprintf("leaveTypes[%d]", i)

		if item.ID != nil && *item.ID <= 0 {
			errs.Add(prefix+".id", "id must be a positive integer")
		}
		if item.Type == "" {
			errs.Add(prefix+".type", "type is required")
		} else if !validator.MaxLength(item.Type, 50) {
			errs.Add(prefix+".type", "type must be at most 50 characters")
		}
		if item.Days == nil {
			errs.Add(prefix+".days", "days is required")
		} else if *item.Days < 0 {
			errs.Add(prefix+".days", "days cannot be negative")
		}
	}
	return errs.Err()
}

// DeleteLeaveTypesRequest keeps raw JSON values so non-integer ids can be filtered out.
type DeleteLeaveTypesRequest struct {
	IDs []any `json:"ids"`
}

// ValidIDs returns the positive integer ids, dropping anything else.
func (r *DeleteLeaveTypesRequest) ValidIDs() []int {
	var ids []int
	for _, raw := range r.IDs {
		f, ok := raw.(float64)
		if !ok || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
			continue
		}
		ids = append(ids, int(f))
	}
	return ids
}

func (r *DeleteLeaveTypesRequest) Validate() error {
	if len(r.IDs) == 0 {
		return ErrLeaveTypeIDsRequired
	}
	if len(r.ValidIDs()) == 0 {
		return ErrNoValidLeaveTypeIDs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID   int     `json:"id"`
	Type string  `json:"type"`
	Days float64 `json:"days"`
}

type BatchResult struct {
	Count int `json:"count"`
}

// ========================================
// POLICY DTOs
// ========================================

type UpdateLeavePolicyRequest struct {
	Year int  `json:"year"`
	Days *int `json:"days"`
}

func (r *UpdateLeavePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 1900 || r.Year > 9999 {
		errs.Add("year", "year must be a four digit year")
	}
	if r.Days == nil {
		errs.Add("days", "days is required")
	} else if *r.Days < 0 || *r.Days > 366 {
		errs.Add("days", "days must be between 0 and 366")
	}
	return errs.Err()
}

type LeavePolicyResponse struct {
	Year    int  `json:"year"`
	Days    int  `json:"days"`
	Created bool `json:"created"`
}

// ========================================
// REQUEST DTOs
// ========================================

type CreateLeaveRequest struct {
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
	CreatedAt *string `json:"createdAt,omitempty"`

	ParsedStartDate time.Time  `json:"-"`
	ParsedEndDate   time.Time  `json:"-"`
	ParsedCreatedAt *time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.LeaveType = strings.TrimSpace(r.LeaveType)
	if r.LeaveType == "" {
		errs.Add("leaveType", "leaveType is required")
	}

	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs.Add("startDate", "startDate is required")
	} else if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
	} else {
		r.ParsedStartDate, startOK = d, true
	}

	if validator.IsEmpty(r.EndDate) {
		errs.Add("endDate", "endDate is required")
	} else if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
	} else {
		r.ParsedEndDate, endOK = d, true
	}

	if r.CreatedAt != nil {
		if t, ok := validator.IsValidDateTime(*r.CreatedAt); ok {
			r.ParsedCreatedAt = &t
		} else {
			errs.Add("createdAt", "createdAt must be an RFC3339 timestamp")
		}
	}

	if err := errs.Err(); err != nil {
		return err
	}
	if startOK && endOK {
		if r.ParsedEndDate.Before(r.ParsedStartDate) {
			return ErrInvalidLeaveRange
		}
		if CountDays(r.ParsedStartDate, r.ParsedEndDate) > MaxLeaveDays {
			return ErrLeaveRangeTooLong
		}
	}
	return nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              int64      `json:"id"`
	LeaveType       string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Days            int        `json:"days"`
	Status          Status     `json:"status"`
	Reason          *string    `json:"reason"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		LeaveType:       r.LeaveTypeName,
		StartDate:       r.StartDate.Format(time.DateOnly),
		EndDate:         r.EndDate.Format(time.DateOnly),
		Days:            CountDays(r.StartDate, r.EndDate),
		Status:          r.Status,
		Reason:          r.Reason,
		CreatedAt:       r.CreatedAt,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
	}
}

// ========================================
// YEARLY BALANCE DTOs
// ========================================

type BalanceSummary struct {
	TotalLeaves     int `json:"total_leaves"`
	UsedLeaves      int `json:"used_leaves"`
	PendingLeaves   int `json:"pending_leaves"`
	RemainingLeaves int `json:"remaining_leaves"`
}

// LeaveRecord is one leave day with the details of its request.
type LeaveRecord struct {
	ID              int64      `json:"id"`
	Date            string     `json:"date"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Status          Status     `json:"status"`
	Reason          *string    `json:"reason"`
	LeaveType       string     `json:"leave_type"`
	ApproverName    *string    `json:"approver_name"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at"`
}

type YearlyLeavesResponse struct {
	Year    int            `json:"year"`
	Summary BalanceSummary `json:"summary"`
	Records []LeaveRecord  `json:"records"`
}
