package dto

import (
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// PlannedTask is one planned unit of work supplied at check-in.
type PlannedTask struct {
	Task string `json:"task" binding:"required"`
	Goal string `json:"goal" binding:"required"`
}

// CheckinRequest opens a workday.
type CheckinRequest struct {
	Date           string        `json:"date" binding:"required"` // YYYY-MM-DD
	PlannedTasks   []PlannedTask `json:"plannedTasks" binding:"required,min=1,dive"`
	CarriedTaskIDs []string      `json:"carriedTaskIds"`
	SupervisorID   *string       `json:"supervisorId"`
}

// ParseDate parses the request date in the wire format.
func (r CheckinRequest) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// CheckoutRequest closes a workday. Notes overwrites stored notes only
// when present.
type CheckoutRequest struct {
	WorkdayID string  `json:"workdayId" binding:"required"`
	Notes     *string `json:"notes"`
}

// RejectWorkdayRequest carries the supervisor's rejection reason.
type RejectWorkdayRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// WorkdayResponse is the wire representation of a workday.
type WorkdayResponse struct {
	WorkdayID    string             `json:"workdayId"`
	UserID       string             `json:"userId"`
	SupervisorID string             `json:"supervisorId,omitempty"`
	Date         string             `json:"date"`
	CheckinAt    time.Time          `json:"checkinAt"`
	CheckoutAt   *time.Time         `json:"checkoutAt,omitempty"`
	Approved     bool               `json:"approved"`
	Notes        string             `json:"notes,omitempty"`
	Activities   []ActivityResponse `json:"activities,omitempty"`
}

// ToWorkdayResponse converts a domain.Workday to its wire representation.
func ToWorkdayResponse(w *domain.Workday) WorkdayResponse {
	resp := WorkdayResponse{
		WorkdayID:    w.WorkdayID,
		UserID:       w.UserID,
		SupervisorID: w.SupervisorID,
		Date:         w.Date.Format(DateLayout),
		CheckinAt:    w.CheckinAt,
		CheckoutAt:   w.CheckoutAt,
		Approved:     w.Approved,
		Notes:        w.Notes,
	}
	if len(w.Activities) > 0 {
		resp.Activities = make([]ActivityResponse, len(w.Activities))
		for i, a := range w.Activities {
			resp.Activities[i] = ToActivityResponse(&a)
		}
	}
	return resp
}

// ToWorkdayListResponse converts a slice of workdays.
func ToWorkdayListResponse(workdays []domain.Workday) []WorkdayResponse {
	out := make([]WorkdayResponse, len(workdays))
	for i, w := range workdays {
		out[i] = ToWorkdayResponse(&w)
	}
	return out
}

// UserStatsResponse is the wire representation of per-user range stats.
type UserStatsResponse struct {
	UserID          string `json:"userId"`
	From            string `json:"from"`
	To              string `json:"to"`
	Workdays        int    `json:"workdays"`
	ApprovedDays    int    `json:"approvedDays"`
	TotalActivities int    `json:"totalActivities"`
	DoneActivities  int    `json:"doneActivities"`
	CompletionRate  int    `json:"completionRate"`
}

// ToUserStatsResponse converts domain.UserRangeStats.
func ToUserStatsResponse(s *domain.UserRangeStats) UserStatsResponse {
	return UserStatsResponse{
		UserID:          s.UserID,
		From:            s.From.Format(DateLayout),
		To:              s.To.Format(DateLayout),
		Workdays:        s.Workdays,
		ApprovedDays:    s.ApprovedDays,
		TotalActivities: s.TotalActivities,
		DoneActivities:  s.DoneActivities,
		CompletionRate:  s.CompletionRate,
	}
}
