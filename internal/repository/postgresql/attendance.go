package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.user_id, a.date, a.clockin, a.clockout, a.worktime, a.note, a.leave_date_id, a.created_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.WorkTime, &a.Note, &a.LeaveDateID, &a.CreatedAt)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances AS a (user_id, date, clockin, note)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, a.UserID, a.Date, a.ClockIn, a.Note))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.user_id = $1 AND a.date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by date: %w", err)
	}
	return a, nil
}

// CompleteClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CompleteClockOut(ctx context.Context, id int64, userID uuid.UUID, clockOut time.Time, workTime int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances AS a
		SET clockout = $3, worktime = $4
		WHERE a.id = $1 AND a.user_id = $2 AND a.clockout IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, userID, clockOut, workTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to clock out: %w", err)
	}
	return a, nil
}

// ListMonthly implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListMonthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN leave_dates ld ON a.leave_date_id = ld.id
		LEFT JOIN leaves l ON ld.leave_id = l.id
		WHERE a.user_id = $1
		  AND a.date >= $2 AND a.date < $3
		  AND (l.id IS NULL OR l.status NOT IN ('approved', 'pending'))
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListYearMonths implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListYearMonths(ctx context.Context, userID uuid.UUID) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT TO_CHAR(date, 'YYYY-MM') AS ym
		FROM attendances
		WHERE user_id = $1
		ORDER BY ym ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance months: %w", err)
	}
	defer rows.Close()

	months := []string{}
	for rows.Next() {
		var ym string
		if err := rows.Scan(&ym); err != nil {
			return nil, fmt.Errorf("failed to scan attendance month: %w", err)
		}
		months = append(months, ym)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return months, nil
}
