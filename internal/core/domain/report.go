package domain

import "time"

// UserReport groups one user's workdays (with activities) for a single
// calendar day. Input for the daily digest emails.
type UserReport struct {
	User     User      `json:"user"`
	Workdays []Workday `json:"workdays"`
}

// HasActivity reports whether the user recorded any workday that day; the
// digest mail is skipped for idle users.
func (r UserReport) HasActivity() bool {
	return len(r.Workdays) > 0
}

// DailyStats is the dashboard/management summary for one calendar day.
type DailyStats struct {
	Date time.Time `json:"date"`

	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	ActivityRate      int `json:"activityRate"` // percent, 0-100
	TotalWorkdays     int `json:"totalWorkdays"`
	ApprovedWorkdays  int `json:"approvedWorkdays"`
	ApprovalRate      int `json:"approvalRate"` // percent, 0-100
	TotalActivities   int `json:"totalActivities"`
	DoneActivities    int `json:"doneActivities"`
	CompletionRate    int `json:"completionRate"` // percent, 0-100
}

// UserRangeStats summarizes one user's workdays over a date range.
type UserRangeStats struct {
	UserID          string    `json:"userID"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Workdays        int       `json:"workdays"`
	ApprovedDays    int       `json:"approvedDays"`
	TotalActivities int       `json:"totalActivities"`
	DoneActivities  int       `json:"doneActivities"`
	CompletionRate  int       `json:"completionRate"` // percent, 0-100
}

// Percent computes a rounded percentage, returning 0 for a zero base.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
