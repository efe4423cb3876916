package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
)

type LeaveJobs struct {
	policyRepo  leave.LeavePolicyRepository
	defaultDays int
	loc         *time.Location
	now         func() time.Time
}

func NewLeaveJobs(policyRepo leave.LeavePolicyRepository, defaultDays int, loc *time.Location) *LeaveJobs {
	return &LeaveJobs{
		policyRepo:  policyRepo,
		defaultDays: defaultDays,
		loc:         loc,
		now:         time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("ensure_current_year_leave_policy", 6*time.Hour, j.EnsureCurrentYearPolicy)
}

// EnsureCurrentYearPolicy creates the policy row for the current business year if it is missing.
// An existing row is never modified.
func (j *LeaveJobs) EnsureCurrentYearPolicy(ctx context.Context) error {
	year := j.now().In(j.loc).Year()

	created, err := j.policyRepo.CreateIfAbsent(ctx, year, j.defaultDays)
	if err != nil {
		return fmt.Errorf("failed to ensure leave policy for %d: %w", year, err)
	}
	if created {
		slog.Info("Cron: created leave policy", "year", year, "days", j.defaultDays)
	}
	return nil
}
