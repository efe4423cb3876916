package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

type AuthServiceImpl struct {
	user.UserRepository
	auth.VerificationCodeStore
	jwt.Service
	email.EmailService
	cfg     config.AuthConfig
	metrics *metrics.Metrics
}

func NewAuthService(
	userRepository user.UserRepository,
	codeStore auth.VerificationCodeStore,
	jwtService jwt.Service,
	emailService email.EmailService,
	cfg config.AuthConfig,
	m *metrics.Metrics,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:        userRepository,
		VerificationCodeStore: codeStore,
		Service:               jwtService,
		EmailService:          emailService,
		cfg:                   cfg,
		metrics:               m,
	}
}

// RequestEmailVerification implements auth.AuthService.
func (a *AuthServiceImpl) RequestEmailVerification(ctx context.Context, req auth.EmailRequest) (auth.VerificationResponse, error) {
	return a.issueVerificationCode(ctx, req.Email)
}

// ResendVerification implements auth.AuthService.
func (a *AuthServiceImpl) ResendVerification(ctx context.Context, req auth.EmailRequest) (auth.VerificationResponse, error) {
	return a.issueVerificationCode(ctx, req.Email)
}

func (a *AuthServiceImpl) issueVerificationCode(ctx context.Context, emailAddr string) (auth.VerificationResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, emailAddr)
	if err != nil {
		return auth.VerificationResponse{}, err
	}

	code, err := generateCode(auth.CodeLength)
	if err != nil {
		return auth.VerificationResponse{}, fmt.Errorf("failed to generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return auth.VerificationResponse{}, fmt.Errorf("failed to hash verification code: %w", err)
	}

	if err := a.VerificationCodeStore.Save(ctx, userData.Email, string(hash), a.cfg.CodeTTL); err != nil {
		return auth.VerificationResponse{}, err
	}

	if err := a.EmailService.SendVerificationCode(ctx, userData.Email, userData.Name, code, a.cfg.CodeTTL); err != nil {
		slog.Error("failed to send verification email", "email", userData.Email, "error", err)
		a.metrics.VerificationCode("delivery_failed")
		return auth.VerificationResponse{}, auth.ErrVerificationDeliveryFailed
	}
	a.metrics.VerificationCode("issued")

	resp := auth.VerificationResponse{
		Email:     userData.Email,
		ExpiresIn: int(a.cfg.CodeTTL.Seconds()),
	}
	if a.cfg.ExposeCode {
		resp.Code = code
	}
	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if a.cfg.RequireCode {
		if err := a.consumeCode(ctx, userData.Email, req.Code); err != nil {
			return auth.LoginResponse{}, err
		}
	}

	principal := auth.Principal{
		Email:      userData.Email,
		Name:       userData.Name,
		Department: userData.DepartmentName,
		Role:       userData.RoleName,
	}

	token, expiresAt, err := a.Service.IssueToken(principal)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		User: auth.UserSummary{
			ID:         userData.ID.String(),
			Email:      userData.Email,
			Name:       userData.Name,
			Department: userData.DepartmentName,
			Role:       userData.RoleName,
		},
	}, nil
}

// consumeCode checks code against the stored hash and deletes it on success.
func (a *AuthServiceImpl) consumeCode(ctx context.Context, emailAddr, code string) error {
	if strings.TrimSpace(code) == "" {
		return auth.ErrVerificationCodeRequired
	}

	hash, err := a.VerificationCodeStore.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, auth.ErrVerificationCodeNotFound) {
			a.metrics.VerificationCode("rejected")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		a.metrics.VerificationCode("rejected")
		return auth.ErrInvalidVerificationCode
	}

	if err := a.VerificationCodeStore.Delete(ctx, emailAddr); err != nil {
		return err
	}
	a.metrics.VerificationCode("accepted")
	return nil
}

// generateCode returns n uniformly random decimal digits.
func generateCode(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
