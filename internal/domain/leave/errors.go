package leave

import "github.com/cmlabs-hris/hrops-backend-go/internal/pkg/apperror"

var (
	// Catalog
	ErrLeaveTypesRequired   = apperror.New(apperror.KindInvalidInput, "LEAVE_TYPES_REQUIRED", "at least one leave type is required")
	ErrLeaveTypeIDsRequired = apperror.New(apperror.KindInvalidInput, "LEAVE_TYPE_IDS_REQUIRED", "ids to delete are required")
	ErrNoValidLeaveTypeIDs  = apperror.New(apperror.KindInvalidInput, "NO_VALID_LEAVE_TYPE_IDS", "no valid leave type ids")
	ErrLeaveTypeNotFound    = apperror.New(apperror.KindNotFound, "LEAVE_TYPE_NOT_FOUND", "leave type not found")
	ErrUnknownLeaveType     = apperror.New(apperror.KindInvalidInput, "LEAVE_TYPE_NOT_FOUND", "unknown leave type")
	ErrLeaveTypeExists      = apperror.New(apperror.KindConflict, "LEAVE_TYPE_EXISTS", "leave type already exists")
	ErrLeaveTypeInUse       = apperror.New(apperror.KindConflict, "LEAVE_TYPE_IN_USE", "leave type is referenced by leave requests")

	// Policy
	ErrLeavePolicyNotFound = apperror.New(apperror.KindNotFound, "LEAVE_POLICY_NOT_FOUND", "leave policy for the year not found")

	// Requests
	ErrLeaveRequestNotFound  = apperror.New(apperror.KindNotFound, "LEAVE_REQUEST_NOT_FOUND", "leave request not found")
	ErrLeaveAlreadyProcessed = apperror.New(apperror.KindConflict, "LEAVE_ALREADY_PROCESSED", "leave request already processed")
	ErrInvalidLeaveRange     = apperror.New(apperror.KindInvalidInput, "INVALID_LEAVE_RANGE", "end date cannot be before start date")
	ErrLeaveRangeTooLong     = apperror.New(apperror.KindInvalidInput, "LEAVE_RANGE_TOO_LONG", "a leave request cannot span more than 366 days")
)
