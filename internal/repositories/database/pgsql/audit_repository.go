package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func toDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Action:      m.Action,
		Description: m.Description.String,
		RecordedAt:  m.RecordedAt,
	}
}

// SaveAuditEntry appends one entry to the audit trail.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (entry_id, user_id, action, description, recorded_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.UserID,
		entry.Action,
		entry.Description,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

const auditSelectQuery = `
	SELECT e.entry_id, e.user_id, e.action, e.description, e.recorded_at,
	       u.first_name, u.last_name
	FROM audit_entries e
	JOIN users u ON u.user_id = e.user_id
`

// ListAuditEntries returns the full trail, newest first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	query := auditSelectQuery + ` ORDER BY e.recorded_at DESC;`
	return r.queryAuditEntries(ctx, query)
}

// ListAuditEntriesByUser returns the trail of a single actor, newest first.
func (r *PgxAuditRepository) ListAuditEntriesByUser(ctx context.Context, userID string) ([]domain.AuditEntry, error) {
	query := auditSelectQuery + `
		WHERE e.user_id = $1
		ORDER BY e.recorded_at DESC;
	`
	return r.queryAuditEntries(ctx, query, userID)
}

// ListAuditEntriesByRange returns entries recorded inside [from, to], newest first.
func (r *PgxAuditRepository) ListAuditEntriesByRange(ctx context.Context, from, to time.Time) ([]domain.AuditEntry, error) {
	query := auditSelectQuery + `
		WHERE e.recorded_at >= $1 AND e.recorded_at <= $2
		ORDER BY e.recorded_at DESC;
	`
	return r.queryAuditEntries(ctx, query, from, to)
}

// DeleteAuditEntriesBefore removes entries older than the cutoff and reports
// how many rows went away.
func (r *PgxAuditRepository) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM audit_entries WHERE recorded_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxAuditRepository) queryAuditEntries(ctx context.Context, query string, args ...any) ([]domain.AuditEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		var firstName, lastName string
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.Action, &m.Description, &m.RecordedAt, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		e := toDomainAuditEntry(m)
		e.ActorName = firstName + " " + lastName
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", err)
	}
	return entries, nil
}
