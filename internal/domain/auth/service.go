package auth

import (
	"context"
	"time"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

type AuthService interface {
	RequestEmailVerification(ctx context.Context, req EmailRequest) (VerificationResponse, error)
	ResendVerification(ctx context.Context, req EmailRequest) (VerificationResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

// VerificationCodeStore keeps the latest hashed code per email until it expires.
type VerificationCodeStore interface {
	Save(ctx context.Context, email, codeHash string, ttl time.Duration) error
	// Get returns ErrVerificationCodeNotFound when no live code exists.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
	// PurgeExpired drops expired entries and reports how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
}
