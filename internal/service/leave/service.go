package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
)

type LeaveServiceImpl struct {
	tx                database.Transactor
	typeRepo          leave.LeaveTypeRepository
	policyRepo        leave.LeavePolicyRepository
	requestRepo       leave.LeaveRequestRepository
	userRepo          user.UserRepository
	defaultPolicyDays int
	metrics           *metrics.Metrics
	now               func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	typeRepo leave.LeaveTypeRepository,
	policyRepo leave.LeavePolicyRepository,
	requestRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	defaultPolicyDays int,
	m *metrics.Metrics,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                tx,
		typeRepo:          typeRepo,
		policyRepo:        policyRepo,
		requestRepo:       requestRepo,
		userRepo:          userRepo,
		defaultPolicyDays: defaultPolicyDays,
		metrics:           m,
		now:               time.Now,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		resp = append(resp, leave.LeaveTypeResponse{ID: lt.ID, Type: lt.Type, Days: lt.Days})
	}
	return resp, nil
}

// UpsertLeaveTypes implements leave.LeaveService. Either every item is applied or none is.
func (s *LeaveServiceImpl) UpsertLeaveTypes(ctx context.Context, req leave.UpsertLeaveTypesRequest) (leave.BatchResult, error) {
	count := 0
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, item := range req.LeaveTypes {
			lt := leave.LeaveType{Type: item.Type, Days: float64(*item.Days)}

			var err error
			if item.ID != nil {
				lt.ID = *item.ID
				_, err = s.typeRepo.Update(txCtx, lt)
			} else {
				_, err = s.typeRepo.Create(txCtx, lt)
			}
			if err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return leave.BatchResult{}, err
	}
	return leave.BatchResult{Count: count}, nil
}

// DeleteLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeaveTypes(ctx context.Context, req leave.DeleteLeaveTypesRequest) (leave.BatchResult, error) {
	var deleted int64
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.typeRepo.DeleteByIDs(txCtx, req.ValidIDs())
		return err
	})
	if err != nil {
		return leave.BatchResult{}, err
	}
	if deleted == 0 {
		return leave.BatchResult{}, leave.ErrLeaveTypeNotFound
	}
	return leave.BatchResult{Count: int(deleted)}, nil
}

// GetLeavePolicy implements leave.LeaveService. A missing year is created with the default allotment.
func (s *LeaveServiceImpl) GetLeavePolicy(ctx context.Context, year int) (leave.LeavePolicyResponse, error) {
	created, err := s.policyRepo.CreateIfAbsent(ctx, year, s.defaultPolicyDays)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	policy, err := s.policyRepo.GetByYear(ctx, year)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	return leave.LeavePolicyResponse{Year: policy.Year, Days: policy.Days, Created: created}, nil
}

// UpdateLeavePolicy implements leave.LeaveService. Unlike GetLeavePolicy it never creates.
func (s *LeaveServiceImpl) UpdateLeavePolicy(ctx context.Context, req leave.UpdateLeavePolicyRequest) (leave.LeavePolicyResponse, error) {
	policy, err := s.policyRepo.UpdateDays(ctx, req.Year, *req.Days)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	return leave.LeavePolicyResponse{Year: policy.Year, Days: policy.Days}, nil
}

// GetLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaves(ctx context.Context, principal auth.Principal, year int) (leave.YearlyLeavesResponse, error) {
	userData, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		return leave.YearlyLeavesResponse{}, err
	}

	policyDays := 0
	policy, err := s.policyRepo.GetByYear(ctx, year)
	switch {
	case err == nil:
		policyDays = policy.Days
	case !errors.Is(err, leave.ErrLeavePolicyNotFound):
		return leave.YearlyLeavesResponse{}, err
	}

	days, err := s.requestRepo.ListDaysByUserAndYear(ctx, userData.ID, year)
	if err != nil {
		return leave.YearlyLeavesResponse{}, err
	}

	records := make([]leave.LeaveRecord, 0, len(days))
	for _, d := range days {
		records = append(records, leave.LeaveRecord{
			ID:              d.Request.ID,
			Date:            d.Date.Format(time.DateOnly),
			StartDate:       d.Request.StartDate.Format(time.DateOnly),
			EndDate:         d.Request.EndDate.Format(time.DateOnly),
			Status:          d.Request.Status,
			Reason:          d.Request.Reason,
			LeaveType:       d.Request.LeaveTypeName,
			ApproverName:    d.Request.ApproverName,
			RejectionReason: d.Request.RejectionReason,
			CreatedAt:       d.Request.CreatedAt,
			ApprovedAt:      d.Request.ApprovedAt,
		})
	}

	return leave.YearlyLeavesResponse{
		Year:    year,
		Summary: CalculateBalance(days, policyDays),
		Records: records,
	}, nil
}

// CreateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, principal auth.Principal, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	userData, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.typeRepo.GetByName(ctx, req.LeaveType)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrUnknownLeaveType
		}
		return leave.LeaveRequestResponse{}, err
	}

	if req.ParsedEndDate.Before(req.ParsedStartDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidLeaveRange
	}
	if leave.CountDays(req.ParsedStartDate, req.ParsedEndDate) > leave.MaxLeaveDays {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRangeTooLong
	}
	days := leave.ExpandDates(req.ParsedStartDate, req.ParsedEndDate)

	createdAt := s.now()
	if req.ParsedCreatedAt != nil {
		createdAt = *req.ParsedCreatedAt
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.requestRepo.Create(txCtx, leave.LeaveRequest{
			UserID:      userData.ID,
			LeaveTypeID: leaveType.ID,
			StartDate:   days[0],
			EndDate:     days[len(days)-1],
			Status:      leave.StatusPending,
			Reason:      req.Reason,
			CreatedAt:   createdAt,
		}, days)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.metrics.LeaveRequest(string(leave.StatusPending))
	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, approver auth.Principal, id int64) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, approver, id, leave.StatusApproved, nil)
}

// RejectLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeave(ctx context.Context, approver auth.Principal, id int64, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	reason := req.Reason
	return s.decide(ctx, approver, id, leave.StatusRejected, &reason)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, approver auth.Principal, id int64, status leave.Status, reason *string) (leave.LeaveRequestResponse, error) {
	approverData, err := s.userRepo.GetByEmail(ctx, approver.Email)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decided, err := s.requestRepo.Decide(ctx, id, status, approverData.ID, reason)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to %s leave request %d: %w", verb(status), id, err)
	}

	s.metrics.LeaveRequest(string(status))
	return leave.NewLeaveRequestResponse(decided), nil
}

func verb(status leave.Status) string {
	if status == leave.StatusApproved {
		return "approve"
	}
	return "reject"
}
