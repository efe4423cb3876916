package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotTransactor restores the type catalog when fn fails, standing in for a rollback.
type snapshotTransactor struct {
	types *memLeaveTypeRepository
}

func (s *snapshotTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	saved := make(map[int]leave.LeaveType, len(s.types.items))
	for k, v := range s.types.items {
		saved[k] = v
	}
	if err := fn(ctx); err != nil {
		s.types.items = saved
		return err
	}
	return nil
}

type memLeaveTypeRepository struct {
	nextID int
	items  map[int]leave.LeaveType
	inUse  map[int]bool
}

func (m *memLeaveTypeRepository) List(context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for id := 1; id <= m.nextID; id++ {
		if lt, ok := m.items[id]; ok {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (m *memLeaveTypeRepository) GetByName(_ context.Context, name string) (leave.LeaveType, error) {
	for _, lt := range m.items {
		if lt.Type == name {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (m *memLeaveTypeRepository) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if _, err := m.GetByName(ctx, lt.Type); err == nil {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	m.nextID++
	lt.ID = m.nextID
	m.items[lt.ID] = lt
	return lt, nil
}

func (m *memLeaveTypeRepository) Update(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if _, ok := m.items[lt.ID]; !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if existing, err := m.GetByName(ctx, lt.Type); err == nil && existing.ID != lt.ID {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	m.items[lt.ID] = lt
	return lt, nil
}

func (m *memLeaveTypeRepository) DeleteByIDs(_ context.Context, ids []int) (int64, error) {
	for _, id := range ids {
		if m.inUse[id] {
			return 0, leave.ErrLeaveTypeInUse
		}
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

type memLeavePolicyRepository struct {
	policies map[int]leave.LeavePolicy
}

func (m *memLeavePolicyRepository) GetByYear(_ context.Context, year int) (leave.LeavePolicy, error) {
	p, ok := m.policies[year]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrLeavePolicyNotFound
	}
	return p, nil
}

func (m *memLeavePolicyRepository) CreateIfAbsent(_ context.Context, year, days int) (bool, error) {
	if _, ok := m.policies[year]; ok {
		return false, nil
	}
	m.policies[year] = leave.LeavePolicy{Year: year, Days: days}
	return true, nil
}

func (m *memLeavePolicyRepository) UpdateDays(_ context.Context, year, days int) (leave.LeavePolicy, error) {
	p, ok := m.policies[year]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrLeavePolicyNotFound
	}
	p.Days = days
	m.policies[year] = p
	return p, nil
}

type memLeaveRequestRepository struct {
	types    *memLeaveTypeRepository
	nextID   int64
	requests map[int64]leave.LeaveRequest
	days     map[int64][]time.Time
}

func (m *memLeaveRequestRepository) Create(_ context.Context, req leave.LeaveRequest, days []time.Time) (leave.LeaveRequest, error) {
	m.nextID++
	req.ID = m.nextID
	req.LeaveTypeName = m.types.items[req.LeaveTypeID].Type
	m.requests[req.ID] = req
	m.days[req.ID] = days
	return req, nil
}

func (m *memLeaveRequestRepository) GetByID(_ context.Context, id int64) (leave.LeaveRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (m *memLeaveRequestRepository) ListDaysByUserAndYear(_ context.Context, userID uuid.UUID, year int) ([]leave.LeaveDay, error) {
	var out []leave.LeaveDay
	for id := int64(1); id <= m.nextID; id++ {
		r := m.requests[id]
		if r.UserID != userID || r.StartDate.Year() != year {
			continue
		}
		for _, d := range m.days[id] {
			out = append(out, leave.LeaveDay{Date: d, Request: r})
		}
	}
	return out, nil
}

func (m *memLeaveRequestRepository) Decide(_ context.Context, id int64, status leave.Status, approverID uuid.UUID, reason *string) (leave.LeaveRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !r.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}
	now := time.Now()
	r.Status, r.ApproverID, r.ApprovedAt, r.RejectionReason = status, &approverID, &now, reason
	m.requests[id] = r
	return r, nil
}

type stubUserRepository struct {
	users map[string]user.User
}

func (s *stubUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepository) List(context.Context, user.ListUsersRequest) ([]user.User, int64, error) {
	return nil, 0, nil
}

type leaveFixture struct {
	svc      leave.LeaveService
	types    *memLeaveTypeRepository
	policies *memLeavePolicyRepository
	requests *memLeaveRequestRepository
	employee auth.Principal
	admin    auth.Principal
}

func leaveTestInit(t *testing.T) *leaveFixture {
	t.Helper()

	types := &memLeaveTypeRepository{items: map[int]leave.LeaveType{}, inUse: map[int]bool{}}
	policies := &memLeavePolicyRepository{policies: map[int]leave.LeavePolicy{}}
	requests := &memLeaveRequestRepository{types: types, requests: map[int64]leave.LeaveRequest{}, days: map[int64][]time.Time{}}

	emp := user.User{ID: uuid.New(), Email: "kim@example.com", Name: "Kim"}
	adm := user.User{ID: uuid.New(), Email: "boss@example.com", Name: "Boss"}
	users := &stubUserRepository{users: map[string]user.User{emp.Email: emp, adm.Email: adm}}

	return &leaveFixture{
		svc:      NewLeaveService(&snapshotTransactor{types: types}, types, policies, requests, users, 15, metrics.New()),
		types:    types,
		policies: policies,
		requests: requests,
		employee: auth.Principal{Email: emp.Email},
		admin:    auth.Principal{Email: adm.Email, Role: "admin"},
	}
}

func days(v float64) *leave.Days {
	d := leave.Days(v)
	return &d
}

func TestLeaveService_UpsertLeaveTypes(t *testing.T) {
	f := leaveTestInit(t)
	ctx := context.Background()

	res, err := f.svc.UpsertLeaveTypes(ctx, leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{Type: "Annual", Days: days(15)},
		{Type: "Sick", Days: days(5)},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	id := 1
	res, err = f.svc.UpsertLeaveTypes(ctx, leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{ID: &id, Type: "Annual", Days: days(16.5)},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	types, err := f.svc.ListLeaveTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Annual", types[0].Type)
	assert.Equal(t, 16.5, types[0].Days)
	assert.Equal(t, "Sick", types[1].Type)
}

func TestLeaveService_UpsertLeaveTypes_AllOrNothing(t *testing.T) {
	f := leaveTestInit(t)
	ctx := context.Background()

	missing := 42
	_, err := f.svc.UpsertLeaveTypes(ctx, leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{Type: "Annual", Days: days(15)},
		{ID: &missing, Type: "Ghost", Days: days(1)},
	}})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	types, err := f.svc.ListLeaveTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)

	_, err = f.svc.UpsertLeaveTypes(ctx, leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{Type: "Annual", Days: days(15)},
		{Type: "Annual", Days: days(10)},
	}})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)
}

func TestLeaveService_DeleteLeaveTypes(t *testing.T) {
	f := leaveTestInit(t)
	ctx := context.Background()

	_, err := f.svc.UpsertLeaveTypes(ctx, leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{Type: "Annual", Days: days(15)},
		{Type: "Sick", Days: days(5)},
	}})
	require.NoError(t, err)

	res, err := f.svc.DeleteLeaveTypes(ctx, leave.DeleteLeaveTypesRequest{IDs: []any{float64(1), "x", float64(-3)}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	_, err = f.svc.DeleteLeaveTypes(ctx, leave.DeleteLeaveTypesRequest{IDs: []any{float64(99)}})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	f.types.inUse[2] = true
	_, err = f.svc.DeleteLeaveTypes(ctx, leave.DeleteLeaveTypesRequest{IDs: []any{float64(2)}})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInUse)
}

func TestLeaveService_GetLeavePolicy_CreatesOnce(t *testing.T) {
	f := leaveTestInit(t)
	ctx := context.Background()

	first, err := f.svc.GetLeavePolicy(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 15, first.Days)

	second, err := f.svc.GetLeavePolicy(ctx, 2025)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Len(t, f.policies.policies, 1)
}

func TestLeaveService_UpdateLeavePolicy(t *testing.T) {
	f := leaveTestInit(t)
	ctx := context.Background()

	d := 20
	_, err := f.svc.UpdateLeavePolicy(ctx, leave.UpdateLeavePolicyRequest{Year: 2026, Days: &d})
	assert.ErrorIs(t, err, leave.ErrLeavePolicyNotFound)

	_, err = f.svc.GetLeavePolicy(ctx, 2026)
	require.NoError(t, err)

	updated, err := f.svc.UpdateLeavePolicy(ctx, leave.UpdateLeavePolicyRequest{Year: 2026, Days: &d})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Days)
}

func createAnnualType(t *testing.T, f *leaveFixture) {
	t.Helper()
	_, err := f.svc.UpsertLeaveTypes(context.Background(), leave.UpsertLeaveTypesRequest{LeaveTypes: []leave.UpsertLeaveTypeItem{
		{Type: "Annual", Days: days(15)},
	}})
	require.NoError(t, err)
}

func newCreateRequest(t *testing.T, leaveType, start, end string) leave.CreateLeaveRequest {
	t.Helper()
	req := leave.CreateLeaveRequest{LeaveType: leaveType, StartDate: start, EndDate: end}
	require.NoError(t, req.Validate())
	return req
}

func TestLeaveService_CreateLeave(t *testing.T) {
	f := leaveTestInit(t)
	createAnnualType(t, f)
	ctx := context.Background()

	resp, err := f.svc.CreateLeave(ctx, f.employee, newCreateRequest(t, "Annual", "2024-03-04", "2024-03-06"))
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "Annual", resp.LeaveType)
	assert.Len(t, f.requests.days[resp.ID], 3)
}

func TestLeaveService_CreateLeave_Errors(t *testing.T) {
	f := leaveTestInit(t)
	createAnnualType(t, f)
	ctx := context.Background()

	_, err := f.svc.CreateLeave(ctx, f.employee, newCreateRequest(t, "Sabbatical", "2024-03-04", "2024-03-04"))
	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)

	_, err = f.svc.CreateLeave(ctx, auth.Principal{Email: "ghost@example.com"}, newCreateRequest(t, "Annual", "2024-03-04", "2024-03-04"))
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	unbounded := leave.CreateLeaveRequest{
		LeaveType:       "Annual",
		ParsedStartDate: time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		ParsedEndDate:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	_, err = f.svc.CreateLeave(ctx, f.employee, unbounded)
	assert.ErrorIs(t, err, leave.ErrLeaveRangeTooLong)
	assert.Empty(t, f.requests.days)
}

func TestLeaveService_GetLeaves_CountsPerDay(t *testing.T) {
	f := leaveTestInit(t)
	createAnnualType(t, f)
	ctx := context.Background()

	approved, err := f.svc.CreateLeave(ctx, f.employee, newCreateRequest(t, "Annual", "2024-03-04", "2024-03-06"))
	require.NoError(t, err)
	_, err = f.svc.ApproveLeave(ctx, f.admin, approved.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateLeave(ctx, f.employee, newCreateRequest(t, "Annual", "2024-04-01", "2024-04-02"))
	require.NoError(t, err)

	// No policy row: the read must not create one.
	resp, err := f.svc.GetLeaves(ctx, f.employee, 2024)
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceSummary{UsedLeaves: 3, PendingLeaves: 2, RemainingLeaves: -3}, resp.Summary)
	assert.Len(t, resp.Records, 5)
	assert.Empty(t, f.policies.policies)

	_, err = f.svc.GetLeavePolicy(ctx, 2024)
	require.NoError(t, err)

	resp, err = f.svc.GetLeaves(ctx, f.employee, 2024)
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceSummary{TotalLeaves: 15, UsedLeaves: 3, PendingLeaves: 2, RemainingLeaves: 12}, resp.Summary)
	assert.Equal(t, "2024-03-04", resp.Records[0].Date)
}

func TestLeaveService_ApproveReject(t *testing.T) {
	f := leaveTestInit(t)
	createAnnualType(t, f)
	ctx := context.Background()

	created, err := f.svc.CreateLeave(ctx, f.employee, newCreateRequest(t, "Annual", "2024-05-01", "2024-05-01"))
	require.NoError(t, err)

	rejected, err := f.svc.RejectLeave(ctx, f.admin, created.ID, leave.RejectLeaveRequest{Reason: "busy season"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "busy season", *rejected.RejectionReason)

	_, err = f.svc.ApproveLeave(ctx, f.admin, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = f.svc.ApproveLeave(ctx, f.admin, 999)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
