package response

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/i18n"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

var translator *i18n.Translator

// SetTranslator selects the catalog used for envelope messages. Nil keeps English.
func SetTranslator(t *i18n.Translator) {
	translator = t
}

// Msg localizes a message by code.
func Msg(code, fallback string) string {
	return translator.Message(code, fallback)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func errorResponse(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, Response{
		Success: false,
		Message: message,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	errorResponse(w, http.StatusBadRequest, "BAD_REQUEST", Msg("BAD_REQUEST", message), details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", Msg("VALIDATION_ERROR", "Validation failed"), details)
}

func Unauthorized(w http.ResponseWriter, code, message string) {
	errorResponse(w, http.StatusUnauthorized, code, Msg(code, message), nil)
}

func Forbidden(w http.ResponseWriter, code, message string) {
	errorResponse(w, http.StatusForbidden, code, Msg(code, message), nil)
}

func NotFound(w http.ResponseWriter, code, message string) {
	errorResponse(w, http.StatusNotFound, code, Msg(code, message), nil)
}

func Conflict(w http.ResponseWriter, code, message string) {
	errorResponse(w, http.StatusConflict, code, Msg(code, message), nil)
}

func TooManyRequests(w http.ResponseWriter) {
	errorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", Msg("RATE_LIMITED", "Too many requests, try again later"), nil)
}

func ServiceUnavailable(w http.ResponseWriter) {
	errorResponse(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", Msg("SERVICE_UNAVAILABLE", "Service temporarily unavailable, try again later"), nil)
}
