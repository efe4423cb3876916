package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LeaveTypeRepository interface {
	List(ctx context.Context) ([]LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	Update(ctx context.Context, lt LeaveType) (LeaveType, error)
	DeleteByIDs(ctx context.Context, ids []int) (int64, error)
}

type LeavePolicyRepository interface {
	GetByYear(ctx context.Context, year int) (LeavePolicy, error)
	// CreateIfAbsent inserts a policy unless the year already has one and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, year, days int) (bool, error)
	UpdateDays(ctx context.Context, year, days int) (LeavePolicy, error)
}

type LeaveRequestRepository interface {
	// Create inserts the request and one leave_dates row per entry of days.
	Create(ctx context.Context, req LeaveRequest, days []time.Time) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	// ListDaysByUserAndYear returns per-day rows of requests starting within year (UTC).
	ListDaysByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]LeaveDay, error)
	// Decide moves a pending request to approved or rejected; non-pending requests return ErrLeaveAlreadyProcessed.
	Decide(ctx context.Context, id int64, status Status, approverID uuid.UUID, rejectionReason *string) (LeaveRequest, error)
}
