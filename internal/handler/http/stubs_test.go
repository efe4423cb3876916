package http

import (
	"context"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
)

type stubAuthService struct {
	verification auth.VerificationResponse
	login        auth.LoginResponse
	err          error
	lastEmail    string
}

func (s *stubAuthService) RequestEmailVerification(_ context.Context, req auth.EmailRequest) (auth.VerificationResponse, error) {
	s.lastEmail = req.Email
	return s.verification, s.err
}

func (s *stubAuthService) ResendVerification(_ context.Context, req auth.EmailRequest) (auth.VerificationResponse, error) {
	s.lastEmail = req.Email
	return s.verification, s.err
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	s.lastEmail = req.Email
	return s.login, s.err
}

type stubAttendanceService struct {
	principal auth.Principal
	clockIn   attendance.ClockInRequest
	monthly   attendance.MonthlySummaryRequest
	resp      attendance.AttendanceResponse
	err       error
}

func (s *stubAttendanceService) ClockIn(_ context.Context, p auth.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	s.principal, s.clockIn = p, req
	return s.resp, s.err
}

func (s *stubAttendanceService) ClockOut(_ context.Context, p auth.Principal, _ attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	s.principal = p
	return s.resp, s.err
}

func (s *stubAttendanceService) GetToday(_ context.Context, p auth.Principal, _ attendance.TodayRequest) (attendance.AttendanceResponse, error) {
	s.principal = p
	return s.resp, s.err
}

func (s *stubAttendanceService) MonthlySummary(_ context.Context, p auth.Principal, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
	s.principal, s.monthly = p, req
	return attendance.MonthlySummaryResponse{YearMonth: req.YearMonth}, s.err
}

func (s *stubAttendanceService) ListYearMonths(_ context.Context, p auth.Principal) (attendance.YearMonthsResponse, error) {
	s.principal = p
	return attendance.YearMonthsResponse{YearMonths: []string{"2024-04", "2024-05"}}, s.err
}

type stubLeaveService struct {
	calls      int
	year       int
	id         int64
	approver   auth.Principal
	rejectWith string
	policy     leave.LeavePolicyResponse
	deleteIDs  []int
	err        error
}

func (s *stubLeaveService) ListLeaveTypes(context.Context) ([]leave.LeaveTypeResponse, error) {
	s.calls++
	return []leave.LeaveTypeResponse{{ID: 1, Type: "annual", Days: 1}}, s.err
}

func (s *stubLeaveService) UpsertLeaveTypes(_ context.Context, req leave.UpsertLeaveTypesRequest) (leave.BatchResult, error) {
	s.calls++
	return leave.BatchResult{Count: len(req.LeaveTypes)}, s.err
}

func (s *stubLeaveService) DeleteLeaveTypes(_ context.Context, req leave.DeleteLeaveTypesRequest) (leave.BatchResult, error) {
	s.calls++
	s.deleteIDs = req.ValidIDs()
	return leave.BatchResult{Count: len(s.deleteIDs)}, s.err
}

func (s *stubLeaveService) GetLeavePolicy(_ context.Context, year int) (leave.LeavePolicyResponse, error) {
	s.calls++
	s.year = year
	return s.policy, s.err
}

func (s *stubLeaveService) UpdateLeavePolicy(_ context.Context, req leave.UpdateLeavePolicyRequest) (leave.LeavePolicyResponse, error) {
	s.calls++
	return leave.LeavePolicyResponse{Year: req.Year, Days: *req.Days}, s.err
}

func (s *stubLeaveService) GetLeaves(_ context.Context, _ auth.Principal, year int) (leave.YearlyLeavesResponse, error) {
	s.calls++
	s.year = year
	return leave.YearlyLeavesResponse{Year: year, Records: []leave.LeaveRecord{}}, s.err
}

func (s *stubLeaveService) CreateLeave(_ context.Context, _ auth.Principal, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	s.calls++
	return leave.LeaveRequestResponse{ID: 7, LeaveType: req.LeaveType, Status: leave.StatusPending}, s.err
}

func (s *stubLeaveService) ApproveLeave(_ context.Context, approver auth.Principal, id int64) (leave.LeaveRequestResponse, error) {
	s.calls++
	s.approver, s.id = approver, id
	return leave.LeaveRequestResponse{ID: id, Status: leave.StatusApproved}, s.err
}

func (s *stubLeaveService) RejectLeave(_ context.Context, approver auth.Principal, id int64, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	s.calls++
	s.approver, s.id, s.rejectWith = approver, id, req.Reason
	return leave.LeaveRequestResponse{ID: id, Status: leave.StatusRejected, RejectionReason: &req.Reason}, s.err
}

type stubUserService struct {
	calls int
	req   user.ListUsersRequest
	resp  user.ListUsersResponse
	err   error
}

func (s *stubUserService) ListUsers(_ context.Context, req user.ListUsersRequest) (user.ListUsersResponse, error) {
	s.calls++
	s.req = req
	return s.resp, s.err
}
