package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
)

type AuthJobs struct {
	codeStore auth.VerificationCodeStore
}

func NewAuthJobs(codeStore auth.VerificationCodeStore) *AuthJobs {
	return &AuthJobs{codeStore: codeStore}
}

func (j *AuthJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_verification_codes", time.Minute, j.PurgeExpiredCodes)
}

func (j *AuthJobs) PurgeExpiredCodes(ctx context.Context) error {
	removed, err := j.codeStore.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge verification codes: %w", err)
	}
	if removed > 0 {
		slog.Debug("Cron: purged expired verification codes", "count", removed)
	}
	return nil
}
