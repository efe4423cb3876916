package attendance

import "github.com/cmlabs-hris/hrops-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn      = apperror.New(apperror.KindConflict, "ALREADY_CLOCKED_IN", "you have already clocked in today")
	ErrAlreadyClockedOut     = apperror.New(apperror.KindConflict, "ALREADY_CLOCKED_OUT", "you have already clocked out")
	ErrNotClockedIn          = apperror.New(apperror.KindConflict, "NOT_CLOCKED_IN", "attendance has no clock-in time")
	ErrClockOutBeforeClockIn = apperror.New(apperror.KindInvalidInput, "CLOCKOUT_BEFORE_CLOCKIN", "clock-out cannot be earlier than clock-in")

	// General errors
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "ATTENDANCE_NOT_FOUND", "attendance record not found")
	ErrAttendanceNotOwned = apperror.New(apperror.KindForbidden, "ATTENDANCE_NOT_OWNED", "you can only modify your own attendance record")
)
