package leave

import (
	"context"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
)

type LeaveService interface {
	// Catalog
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	UpsertLeaveTypes(ctx context.Context, req UpsertLeaveTypesRequest) (BatchResult, error)
	DeleteLeaveTypes(ctx context.Context, req DeleteLeaveTypesRequest) (BatchResult, error)

	// Policy
	GetLeavePolicy(ctx context.Context, year int) (LeavePolicyResponse, error)
	UpdateLeavePolicy(ctx context.Context, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error)

	// Requests
	GetLeaves(ctx context.Context, principal auth.Principal, year int) (YearlyLeavesResponse, error)
	CreateLeave(ctx context.Context, principal auth.Principal, req CreateLeaveRequest) (LeaveRequestResponse, error)
	ApproveLeave(ctx context.Context, approver auth.Principal, id int64) (LeaveRequestResponse, error)
	RejectLeave(ctx context.Context, approver auth.Principal, id int64, req RejectLeaveRequest) (LeaveRequestResponse, error)
}
