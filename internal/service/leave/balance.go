package leave

import "github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"

// CalculateBalance counts leave per day, not per request: a three-day approved
// request uses three days. Rejected days are ignored. Remaining may go negative.
func CalculateBalance(days []leave.LeaveDay, policyDays int) leave.BalanceSummary {
	summary := leave.BalanceSummary{TotalLeaves: policyDays}
	for _, d := range days {
		switch d.Request.Status {
		case leave.StatusApproved:
			summary.UsedLeaves++
		case leave.StatusPending:
			summary.PendingLeaves++
		}
	}
	summary.RemainingLeaves = policyDays - summary.UsedLeaves
	return summary
}
