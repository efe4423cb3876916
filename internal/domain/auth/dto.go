package auth

import (
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

type EmailRequest struct {
	Email string `json:"email"`
}

func (r *EmailRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	return errs.Err()
}

type LoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Code = strings.TrimSpace(r.Code)

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Code != "" && (len(r.Code) != CodeLength || !validator.IsNumeric(r.Code)) {
		errs.Add("code", "code must be a 6 digit number")
	}
	return errs.Err()
}

type VerificationResponse struct {
	Email     string `json:"email"`
	Code      string `json:"code,omitempty"`
	ExpiresIn int    `json:"expires_in"`
}

type UserSummary struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   int64       `json:"expires_at"`
	User        UserSummary `json:"user"`
}
