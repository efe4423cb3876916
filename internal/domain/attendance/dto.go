package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

// ClockInRequest may override the day and the clock-in instant; both default to now.
type ClockInRequest struct {
	Date    *string `json:"date,omitempty"`
	ClockIn *string `json:"clockin,omitempty"`
	Note    *string `json:"note,omitempty"`

	ParsedDate    *time.Time `json:"-"`
	ParsedClockIn *time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		} else {
			r.ParsedDate = &d
		}
	}

	if r.ClockIn != nil {
		t, ok := validator.IsValidDateTime(*r.ClockIn)
		if !ok {
			errs.Add("clockin", "clockin must be an RFC3339 timestamp")
		} else {
			r.ParsedClockIn = &t
		}
	}

	if r.Note != nil && !validator.MaxLength(*r.Note, 500) {
		errs.Add("note", "note must be at most 500 characters")
	}

	return errs.Err()
}

type ClockOutRequest struct {
	AttendanceID int64   `json:"attendanceId"`
	ClockOut     *string `json:"clockout,omitempty"`

	ParsedClockOut *time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AttendanceID <= 0 {
		errs.Add("attendanceId", "attendanceId must be a positive integer")
	}

	if r.ClockOut != nil {
		t, ok := validator.IsValidDateTime(*r.ClockOut)
		if !ok {
			errs.Add("clockout", "clockout must be an RFC3339 timestamp")
		} else {
			r.ParsedClockOut = &t
		}
	}

	return errs.Err()
}

type TodayRequest struct {
	Date string

	ParsedDate *time.Time
}

func (r *TodayRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	d, ok := validator.IsValidDate(r.Date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	r.ParsedDate = &d
	return nil
}

// AttendanceResponse has all fields null when no record exists for the requested day.
type AttendanceResponse struct {
	ID       *int64     `json:"id"`
	UserID   *string    `json:"user_id"`
	Date     *string    `json:"date"`
	ClockIn  *time.Time `json:"clockin"`
	ClockOut *time.Time `json:"clockout"`
	WorkTime *int       `json:"worktime"`
	Note     *string    `json:"note"`
}

// NewAttendanceResponse renders timestamps in loc.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	id := a.ID
	userID := a.UserID.String()
	date := a.Date.Format(time.DateOnly)
	return AttendanceResponse{
		ID:       &id,
		UserID:   &userID,
		Date:     &date,
		ClockIn:  inLocation(a.ClockIn, loc),
		ClockOut: inLocation(a.ClockOut, loc),
		WorkTime: a.WorkTime,
		Note:     a.Note,
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(loc)
	return &local
}

// ========================================
// MONTHLY SUMMARY DTOs
// ========================================

type MonthlySummaryRequest struct {
	YearMonth     string
	StartWorkTime string

	Year        int        `json:"-"`
	Month       time.Month `json:"-"`
	StartMinute int        `json:"-"`
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.YearMonth) {
		errs.Add("yearMonth", "yearMonth is required")
	} else if year, month, err := validator.ParseYearMonth(r.YearMonth); err != nil {
		errs.Add("yearMonth", "yearMonth "+err.Error())
	} else {
		r.Year, r.Month = year, month
	}

	// An empty start time is filled from configuration by the service.
	if validator.IsEmpty(r.StartWorkTime) {
		r.StartWorkTime = ""
	} else if minute, err := validator.ParseClockTime(r.StartWorkTime); err != nil {
		errs.Add("startWorkTime", "startWorkTime "+err.Error())
	} else {
		r.StartMinute = minute
	}

	return errs.Err()
}

type MonthlySummary struct {
	WorkedDays           int `json:"worked_days"`
	TotalWorkMinutes     int `json:"total_work_minutes"`
	AverageWorkMinutes   int `json:"average_work_minutes"`
	TotalOvertimeMinutes int `json:"total_overtime_minutes"`
	TotalLateMinutes     int `json:"total_late_minutes"`
}

type MonthlyRecord struct {
	ID          int64      `json:"id"`
	Date        string     `json:"date"`
	ClockIn     *time.Time `json:"clockin"`
	ClockOut    *time.Time `json:"clockout"`
	WorkTime    *int       `json:"worktime"`
	LateMinutes int        `json:"late_minutes"`
	// LeaveType is always null: days linked to an approved or pending leave are not listed.
	LeaveType   *string    `json:"leave_type"`
	Note        *string    `json:"note"`
}

type MonthlySummaryResponse struct {
	YearMonth     string          `json:"year_month"`
	StartWorkTime string          `json:"start_work_time"`
	Summary       MonthlySummary  `json:"summary"`
	Records       []MonthlyRecord `json:"records"`
}

type YearMonthsResponse struct {
	YearMonths []string `json:"year_months"`
}
