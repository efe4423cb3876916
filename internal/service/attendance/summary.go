package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
)

// Summarize aggregates one month of attendance rows. startMinute is the nominal
// start of work as minutes after local midnight; clock-in times are read in loc.
// Rows without worktime contribute to lateness but not to totals or the average.
func Summarize(rows []attendance.Attendance, startMinute int, loc *time.Location) (attendance.MonthlySummary, []attendance.MonthlyRecord) {
	var summary attendance.MonthlySummary
	records := make([]attendance.MonthlyRecord, 0, len(rows))

	for _, row := range rows {
		late := 0
		if row.ClockIn != nil {
			local := row.ClockIn.In(loc)
			late = max(0, local.Hour()*60+local.Minute()-startMinute)
		}
		summary.TotalLateMinutes += late

		if row.WorkTime != nil {
			summary.WorkedDays++
			summary.TotalWorkMinutes += *row.WorkTime
			summary.TotalOvertimeMinutes += max(0, *row.WorkTime-attendance.OvertimeThresholdMinutes)
		}

		records = append(records, attendance.MonthlyRecord{
			ID:          row.ID,
			Date:        row.Date.Format(time.DateOnly),
			ClockIn:     inLocation(row.ClockIn, loc),
			ClockOut:    inLocation(row.ClockOut, loc),
			WorkTime:    row.WorkTime,
			LateMinutes: late,
			Note:        row.Note,
		})
	}

	if summary.WorkedDays > 0 {
		summary.AverageWorkMinutes = summary.TotalWorkMinutes / summary.WorkedDays
	}
	return summary, records
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(loc)
	return &local
}
