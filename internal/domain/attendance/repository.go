package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	// Create inserts a new row; a second row for the same (user, date) returns ErrAlreadyClockedIn.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id int64) (Attendance, error)
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (Attendance, error)
	// CompleteClockOut sets clock-out only while it is still null and returns ErrAlreadyClockedOut otherwise.
	CompleteClockOut(ctx context.Context, id int64, userID uuid.UUID, clockOut time.Time, workTime int) (Attendance, error)
	// ListMonthly excludes days covered by an approved or pending leave, ordered by date.
	ListMonthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]Attendance, error)
	ListYearMonths(ctx context.Context, userID uuid.UUID) ([]string, error)
}
