package services

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// AuditRecorderSvc records audit trail entries.
type AuditRecorderSvc interface {
	// Record persists an audit entry attributed to actorID, falling back
	// to the request identity in ctx and finally domain.SystemUserID.
	// It never returns an error: persistence failures are logged and
	// swallowed so the primary operation is unaffected.
	Record(ctx context.Context, action, description, actorID string)
}

// AuditReaderSvc defines the audit query operations.
type AuditReaderSvc interface {
	ListAll(ctx context.Context) ([]domain.AuditEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AuditEntry, error)
	// ListByDateRange interprets from and to as inclusive UTC calendar-day
	// bounds.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.AuditEntry, error)
}

// AuditRetentionSvc prunes old audit entries.
type AuditRetentionSvc interface {
	// PurgeOlderThan deletes entries recorded strictly before cutoff and
	// returns the number deleted. Idempotent.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditSvcFacade combines all audit-related service interfaces.
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
	AuditRetentionSvc
}
