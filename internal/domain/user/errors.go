package user

import "github.com/cmlabs-hris/hrops-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound      = apperror.New(apperror.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrAdminRoleRequired = apperror.New(apperror.KindForbidden, "ADMIN_ROLE_REQUIRED", "admin role required")
	ErrInvalidListQuery  = apperror.New(apperror.KindInvalidInput, "INVALID_LIST_QUERY", "invalid JSON in filter, sort or search")
)
