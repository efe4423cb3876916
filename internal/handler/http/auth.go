package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	FindEmail(w http.ResponseWriter, r *http.Request)
	ResendCode(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

// FindEmail implements AuthHandler.
func (a *AuthHandlerImpl) FindEmail(w http.ResponseWriter, r *http.Request) {
	a.sendCode(w, r, "FindEmail", a.authService.RequestEmailVerification)
}

// ResendCode implements AuthHandler.
func (a *AuthHandlerImpl) ResendCode(w http.ResponseWriter, r *http.Request) {
	a.sendCode(w, r, "ResendCode", a.authService.ResendVerification)
}

func (a *AuthHandlerImpl) sendCode(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	issue func(ctx context.Context, req auth.EmailRequest) (auth.VerificationResponse, error),
) {
	var emailReq auth.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&emailReq); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := emailReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := issue(r.Context(), emailReq)
	if err != nil {
		slog.Error(op+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("VERIFICATION_CODE_SENT", "Verification code sent"), resp)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, response.Msg("LOGIN_SUCCESS", "Login successful"), resp)
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// principalFromRequest writes a 401 and returns false when the request carries no usable principal.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return auth.Principal{}, false
	}
	return principal, true
}
