package attendance

import (
	"time"

	"github.com/google/uuid"
)

// OvertimeThresholdMinutes is the daily worked time beyond which minutes count as overtime.
const OvertimeThresholdMinutes = 540

// Attendance is one user's clock record for one calendar day.
type Attendance struct {
	ID          int64
	UserID      uuid.UUID
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkTime    *int
	Note        *string
	LeaveDateID *int64
	CreatedAt   time.Time
}

func (a *Attendance) IsClockedOut() bool {
	return a.ClockOut != nil
}

// WorkedMinutes returns whole minutes between clock-in and clock-out, truncated.
func WorkedMinutes(clockIn, clockOut time.Time) int {
	return int(clockOut.Sub(clockIn) / time.Minute)
}
