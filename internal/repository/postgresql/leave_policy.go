package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.LeavePolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

const leavePolicyColumns = `id, year, days, created_at, updated_at`

func scanLeavePolicy(row pgx.Row) (leave.LeavePolicy, error) {
	var p leave.LeavePolicy
	err := row.Scan(&p.ID, &p.Year, &p.Days, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetByYear implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByYear(ctx context.Context, year int) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanLeavePolicy(q.QueryRow(ctx, `SELECT `+leavePolicyColumns+` FROM leave_policies WHERE year = $1`, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrLeavePolicyNotFound
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}
	return p, nil
}

// CreateIfAbsent implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) CreateIfAbsent(ctx context.Context, year, days int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO leave_policies (year, days)
		VALUES ($1, $2)
		ON CONFLICT (year) DO NOTHING
	`, year, days)
	if err != nil {
		return false, fmt.Errorf("failed to create leave policy: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateDays implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) UpdateDays(ctx context.Context, year, days int) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_policies
		SET days = $2, updated_at = NOW()
		WHERE year = $1
		RETURNING ` + leavePolicyColumns

	p, err := scanLeavePolicy(q.QueryRow(ctx, query, year, days))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrLeavePolicyNotFound
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to update leave policy: %w", err)
	}
	return p, nil
}
