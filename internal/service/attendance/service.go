package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	loc           *time.Location
	workStartTime string
	metrics       *metrics.Metrics
	now           func() time.Time
}

// NewAttendanceService computes local dates and lateness in loc. workStartTime (HH:MM)
// is used when a monthly summary request omits the start time.
func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	loc *time.Location,
	workStartTime string,
	m *metrics.Metrics,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		loc:                  loc,
		workStartTime:        workStartTime,
		metrics:              m,
		now:                  time.Now,
	}
}

// localDate returns the calendar day of t in loc as a UTC midnight.
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, principal auth.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	userData, err := s.UserRepository.GetByEmail(ctx, principal.Email)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	clockIn := s.now()
	if req.ParsedClockIn != nil {
		clockIn = *req.ParsedClockIn
	}

	date := localDate(clockIn, s.loc)
	if req.ParsedDate != nil {
		date = *req.ParsedDate
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:  userData.ID,
		Date:    date,
		ClockIn: &clockIn,
		Note:    req.Note,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.ClockIn()
	return attendance.NewAttendanceResponse(created, s.loc), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, principal auth.Principal, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	userData, err := s.UserRepository.GetByEmail(ctx, principal.Email)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.UserID != userData.ID {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotOwned
	}
	if record.IsClockedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}
	if record.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}

	clockOut := s.now()
	if req.ParsedClockOut != nil {
		clockOut = *req.ParsedClockOut
	}
	if clockOut.Before(*record.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeClockIn
	}

	workTime := attendance.WorkedMinutes(*record.ClockIn, clockOut)

	updated, err := s.AttendanceRepository.CompleteClockOut(ctx, record.ID, userData.ID, clockOut, workTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.ClockOut()
	return attendance.NewAttendanceResponse(updated, s.loc), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, principal auth.Principal, req attendance.TodayRequest) (attendance.AttendanceResponse, error) {
	userData, err := s.UserRepository.GetByEmail(ctx, principal.Email)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := localDate(s.now(), s.loc)
	if req.ParsedDate != nil {
		date = *req.ParsedDate
	}

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userData.ID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, nil
		}
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(record, s.loc), nil
}

// MonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, principal auth.Principal, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
	if req.StartWorkTime == "" {
		minute, err := validator.ParseClockTime(s.workStartTime)
		if err != nil {
			return attendance.MonthlySummaryResponse{}, fmt.Errorf("invalid configured work start time %q: %w", s.workStartTime, err)
		}
		req.StartWorkTime, req.StartMinute = s.workStartTime, minute
	}

	userData, err := s.UserRepository.GetByEmail(ctx, principal.Email)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	rows, err := s.AttendanceRepository.ListMonthly(ctx, userData.ID, req.Year, req.Month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	summary, records := Summarize(rows, req.StartMinute, s.loc)

	return attendance.MonthlySummaryResponse{
		YearMonth:     fmt.Sprintf("%04d-%02d", req.Year, int(req.Month)),
		StartWorkTime: req.StartWorkTime,
		Summary:       summary,
		Records:       records,
	}, nil
}

// ListYearMonths implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListYearMonths(ctx context.Context, principal auth.Principal) (attendance.YearMonthsResponse, error) {
	userData, err := s.UserRepository.GetByEmail(ctx, principal.Email)
	if err != nil {
		return attendance.YearMonthsResponse{}, err
	}

	months, err := s.AttendanceRepository.ListYearMonths(ctx, userData.ID)
	if err != nil {
		return attendance.YearMonthsResponse{}, err
	}
	return attendance.YearMonthsResponse{YearMonths: months}, nil
}
