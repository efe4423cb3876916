package auth

import "github.com/cmlabs-hris/hrops-backend-go/internal/pkg/apperror"

var (
	ErrTokenRequired              = apperror.New(apperror.KindUnauthenticated, "TOKEN_REQUIRED", "authorization token is required")
	ErrInvalidToken               = apperror.New(apperror.KindUnauthenticated, "INVALID_TOKEN", "invalid or expired token")
	ErrVerificationCodeRequired   = apperror.New(apperror.KindInvalidInput, "VERIFICATION_CODE_REQUIRED", "verification code is required")
	ErrInvalidVerificationCode    = apperror.New(apperror.KindUnauthenticated, "INVALID_VERIFICATION_CODE", "verification code is invalid or expired")
	ErrVerificationCodeNotFound   = apperror.New(apperror.KindUnauthenticated, "INVALID_VERIFICATION_CODE", "verification code not found or expired")
	ErrVerificationDeliveryFailed = apperror.New(apperror.KindUnavailable, "VERIFICATION_DELIVERY_FAILED", "failed to deliver verification code")
)
