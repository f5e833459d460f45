package dto

import (
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// AuditRangeParams bounds an audit query to a calendar-day range.
type AuditRangeParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}

// AuditEntryResponse is the wire representation of an audit entry.
type AuditEntryResponse struct {
	EntryID     string    `json:"entryId"`
	UserID      string    `json:"userId"`
	ActorName   string    `json:"actorName,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// ToAuditEntryResponse converts a domain.AuditEntry.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:     e.EntryID,
		UserID:      e.UserID,
		ActorName:   e.ActorName,
		Action:      e.Action,
		Description: e.Description,
		RecordedAt:  e.RecordedAt,
	}
}

// ToAuditListResponse converts a slice of audit entries.
func ToAuditListResponse(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToAuditEntryResponse(&e)
	}
	return out
}

// PurgeResponse reports how many audit entries a purge removed.
type PurgeResponse struct {
	Deleted int64  `json:"deleted"`
	Cutoff  string `json:"cutoff"`
}

// DailyStatsResponse is the wire representation of the daily dashboard.
type DailyStatsResponse struct {
	Date             string `json:"date"`
	TotalUsers       int    `json:"totalUsers"`
	ActiveUsers      int    `json:"activeUsers"`
	ActivityRate     int    `json:"activityRate"`
	TotalWorkdays    int    `json:"totalWorkdays"`
	ApprovedWorkdays int    `json:"approvedWorkdays"`
	ApprovalRate     int    `json:"approvalRate"`
	TotalActivities  int    `json:"totalActivities"`
	DoneActivities   int    `json:"doneActivities"`
	CompletionRate   int    `json:"completionRate"`
}

// ToDailyStatsResponse converts domain.DailyStats.
func ToDailyStatsResponse(s *domain.DailyStats) DailyStatsResponse {
	return DailyStatsResponse{
		Date:             s.Date.Format(DateLayout),
		TotalUsers:       s.TotalUsers,
		ActiveUsers:      s.ActiveUsers,
		ActivityRate:     s.ActivityRate,
		TotalWorkdays:    s.TotalWorkdays,
		ApprovedWorkdays: s.ApprovedWorkdays,
		ApprovalRate:     s.ApprovalRate,
		TotalActivities:  s.TotalActivities,
		DoneActivities:   s.DoneActivities,
		CompletionRate:   s.CompletionRate,
	}
}
