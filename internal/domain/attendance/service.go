package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, principal auth.Principal, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, principal auth.Principal, req ClockOutRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, principal auth.Principal, req TodayRequest) (AttendanceResponse, error)
	MonthlySummary(ctx context.Context, principal auth.Principal, req MonthlySummaryRequest) (MonthlySummaryResponse, error)
	ListYearMonths(ctx context.Context, principal auth.Principal) (YearMonthsResponse, error)
}
