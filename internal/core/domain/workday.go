package domain

import "time"

// Workday is one employee's single-day check-in-to-check-out record.
// At most one exists per (user, calendar date); the workdays table
// enforces this with a unique index, the service pre-checks it.
type Workday struct {
	WorkdayID    string     `json:"workdayID"`
	UserID       string     `json:"userID"`
	SupervisorID string     `json:"supervisorID,omitempty"`
	Date         time.Time  `json:"date"` // calendar day, time-of-day ignored for uniqueness
	CheckinAt    time.Time  `json:"checkinAt"`
	CheckoutAt   *time.Time `json:"checkoutAt,omitempty"` // nil while the day is open
	Approved     bool       `json:"approved"`
	Notes        string     `json:"notes,omitempty"`
	AuditFields

	// Activities is populated on composed reads (history, approval views).
	Activities []Activity `json:"activities,omitempty"`
}

// Closed reports whether checkout has been recorded.
func (w Workday) Closed() bool {
	return w.CheckoutAt != nil
}

// Elapsed returns the worked duration, zero while the day is still open.
func (w Workday) Elapsed() time.Duration {
	if w.CheckoutAt == nil {
		return 0
	}
	return w.CheckoutAt.Sub(w.CheckinAt)
}
