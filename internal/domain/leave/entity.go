package leave

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Days is a leave allotment. It decodes from a JSON number or a numeric string.
type Days float64

func (d *Days) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("days must be numeric: %q", s)
		}
		*d = Days(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("days must be numeric: %s", data)
	}
	*d = Days(f)
	return nil
}

// LeaveType is a catalog entry referenced by leave requests.
type LeaveType struct {
	ID        int
	Type      string
	Days      float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeavePolicy is the yearly allotment shared by every user.
type LeavePolicy struct {
	ID        int
	Year      int
	Days      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveRequest struct {
	ID              int64
	UserID          uuid.UUID
	LeaveTypeID     int
	StartDate       time.Time
	EndDate         time.Time
	Status          Status
	Reason          *string
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	RejectionReason *string
	ApproverID      *uuid.UUID

	// Join
	LeaveTypeName string
	ApproverName  *string
}

func (r *LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}

// LeaveDay is one calendar day of a leave request, joined to its parent.
type LeaveDay struct {
	ID      int64
	Date    time.Time
	Request LeaveRequest
}

// MaxLeaveDays bounds the number of calendar days in a single request.
const MaxLeaveDays = 366

// CountDays returns the number of calendar days from start to end inclusive, or 0 when end is before start.
func CountDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int((e.Unix()-s.Unix())/86400) + 1
}

// ExpandDates returns every UTC calendar day from start to end inclusive.
// Weekends and holidays are not skipped. An end before start yields nil.
func ExpandDates(start, end time.Time) []time.Time {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
