package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT l.id, l.user_id, l.leave_type_id, l.startdate, l.enddate, l.status, l.reason,
		   l.created_at, l.approved_at, l.rejection_reason, l.approver_id,
		   lt.type AS leave_type_name,
		   ap.name AS approver_name
	FROM leaves l
	JOIN leave_types lt ON l.leave_type_id = lt.id
	LEFT JOIN users ap ON l.approver_id = ap.id
`

func leaveRequestDest(r *leave.LeaveRequest) []any {
	return []any{
		&r.ID, &r.UserID, &r.LeaveTypeID, &r.StartDate, &r.EndDate, &r.Status, &r.Reason,
		&r.CreatedAt, &r.ApprovedAt, &r.RejectionReason, &r.ApproverID,
		&r.LeaveTypeName, &r.ApproverName,
	}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest, days []time.Time) (leave.LeaveRequest, error) {
	var id int64
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		insertQuery := `
			INSERT INTO leaves (user_id, leave_type_id, startdate, enddate, status, reason, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		if err := q.QueryRow(txCtx, insertQuery,
			req.UserID, req.LeaveTypeID, req.StartDate, req.EndDate, leave.StatusPending, req.Reason, req.CreatedAt,
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		if _, err := q.Exec(txCtx, `
			INSERT INTO leave_dates (leave_id, date)
			SELECT $1, d FROM UNNEST($2::date[]) AS d
		`, id, days); err != nil {
			return fmt.Errorf("failed to create leave dates: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return r.getByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id)
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, leaveRequestSelect+" WHERE l.id = $1", id).Scan(leaveRequestDest(&req)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListDaysByUserAndYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListDaysByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]leave.LeaveDay, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := `
		SELECT ld.id, ld.date,
			   l.id, l.user_id, l.leave_type_id, l.startdate, l.enddate, l.status, l.reason,
			   l.created_at, l.approved_at, l.rejection_reason, l.approver_id,
			   lt.type, ap.name
		FROM leave_dates ld
		JOIN leaves l ON ld.leave_id = l.id
		JOIN leave_types lt ON l.leave_type_id = lt.id
		LEFT JOIN users ap ON l.approver_id = ap.id
		WHERE l.user_id = $1
		  AND l.startdate >= $2 AND l.startdate < $3
		ORDER BY l.startdate ASC, ld.date ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave days: %w", err)
	}
	defer rows.Close()

	days := []leave.LeaveDay{}
	for rows.Next() {
		var d leave.LeaveDay
		dest := append([]any{&d.ID, &d.Date}, leaveRequestDest(&d.Request)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan leave day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id int64, status leave.Status, approverID uuid.UUID, rejectionReason *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE leaves
		SET status = $2, approver_id = $3, approved_at = NOW(), rejection_reason = $4
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, updateQuery, id, status, approverID, rejectionReason)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.getByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	return r.getByID(ctx, id)
}
