package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// AuditService maintains the append-only audit trail.
type AuditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(ar portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &AuditService{auditRepo: ar}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// Record persists an audit entry. Attribution falls back from the explicit
// actorID to the request identity in ctx and finally to the system user, so
// an entry is never lost for want of an actor. Persistence failures are
// logged and swallowed: the audit trail must not break the operation it
// describes.
func (s *AuditService) Record(ctx context.Context, action, description, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actorID == "" {
		if ctxUserID, ok := middleware.UserIDFromCtx(ctx); ok {
			actorID = ctxUserID
		} else {
			actorID = domain.SystemUserID
		}
	}

	entry := domain.AuditEntry{
		EntryID:     uuid.NewString(),
		UserID:      actorID,
		Action:      action,
		Description: description,
		RecordedAt:  time.Now().UTC(),
	}

	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("action", action),
			slog.String("actor_id", actorID),
		)
	}
}

// ListAll returns the full audit trail, newest first.
func (s *AuditService) ListAll(ctx context.Context) ([]domain.AuditEntry, error) {
	return s.auditRepo.ListAuditEntries(ctx)
}

// ListByUser returns a single actor's trail, newest first.
func (s *AuditService) ListByUser(ctx context.Context, userID string) ([]domain.AuditEntry, error) {
	return s.auditRepo.ListAuditEntriesByUser(ctx, userID)
}

// ListByDateRange returns entries inside the inclusive UTC calendar-day
// range [from, to].
func (s *AuditService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.AuditEntry, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.auditRepo.ListAuditEntriesByRange(ctx, start, end)
}

// PurgeOlderThan deletes entries recorded strictly before cutoff.
func (s *AuditService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.auditRepo.DeleteAuditEntriesBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to purge audit entries", slog.String("error", err.Error()))
		return 0, err
	}
	if deleted > 0 {
		logger.Info("Purged audit entries",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff),
		)
	}
	return deleted, nil
}
