package repositories

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	// SaveAuditEntry inserts one entry.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListAuditEntries returns all entries, newest first.
	ListAuditEntries(ctx context.Context) ([]domain.AuditEntry, error)

	// ListAuditEntriesByUser returns the acting user's entries, newest first.
	ListAuditEntriesByUser(ctx context.Context, userID string) ([]domain.AuditEntry, error)

	// ListAuditEntriesByRange returns entries with from <= recorded_at <= to,
	// newest first.
	ListAuditEntriesByRange(ctx context.Context, from, to time.Time) ([]domain.AuditEntry, error)

	// DeleteAuditEntriesBefore removes entries recorded strictly before
	// cutoff and reports how many were deleted.
	DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CommentRepository persists activity comments.
type CommentRepository interface {
	// SaveComment inserts one comment.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// ListCommentsByActivity returns the activity's comments, newest first,
	// author names attached.
	ListCommentsByActivity(ctx context.Context, activityID string) ([]domain.Comment, error)

	// ListCommentsByWorkday returns comments across all of the workday's
	// activities, newest first, author names attached.
	ListCommentsByWorkday(ctx context.Context, workdayID string) ([]domain.Comment, error)
}
