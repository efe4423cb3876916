package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by kind.
// Anything outside the error taxonomy is logged and reported as unavailable.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	appErr, ok := apperror.As(err)
	if !ok {
		slog.Error("unhandled error", "error", err)
		ServiceUnavailable(w)
		return
	}

	switch appErr.Kind {
	case apperror.KindInvalidInput:
		errorResponse(w, http.StatusBadRequest, appErr.Code, Msg(appErr.Code, appErr.Message), nil)
	case apperror.KindUnauthenticated:
		Unauthorized(w, appErr.Code, appErr.Message)
	case apperror.KindForbidden:
		Forbidden(w, appErr.Code, appErr.Message)
	case apperror.KindNotFound:
		NotFound(w, appErr.Code, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Code, appErr.Message)
	default:
		slog.Error("service unavailable", "code", appErr.Code, "error", err)
		errorResponse(w, http.StatusServiceUnavailable, appErr.Code, Msg(appErr.Code, appErr.Message), nil)
	}
}
