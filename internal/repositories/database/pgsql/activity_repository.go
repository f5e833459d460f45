package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for activity data.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

// Helper to convert domain.Activity to models.Activity for DB storage
func toModelActivity(d domain.Activity) models.Activity {
	m := models.Activity{
		ActivityID: d.ActivityID,
		WorkdayID:  d.WorkdayID,
		Task:       d.Task,
		Goal:       d.Goal,
		StateID:    d.StateID,
		Carried:    d.Carried,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.Observation != "" {
		m.Observation = sql.NullString{String: d.Observation, Valid: true}
	}
	if d.OriginActivityID != "" {
		m.OriginActivityID = sql.NullString{String: d.OriginActivityID, Valid: true}
	}
	return m
}

// Helper to convert models.Activity from DB to domain.Activity
func toDomainActivity(m models.Activity) domain.Activity {
	d := domain.Activity{
		ActivityID: m.ActivityID,
		WorkdayID:  m.WorkdayID,
		Task:       m.Task,
		Goal:       m.Goal,
		StateID:    m.StateID,
		Carried:    m.Carried,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.Observation.Valid {
		d.Observation = m.Observation.String
	}
	if m.OriginActivityID.Valid {
		d.OriginActivityID = m.OriginActivityID.String
	}
	return d
}

const activityInsertQuery = `
	INSERT INTO activities (activity_id, workday_id, task, goal, state_id, observation, carried, origin_activity_id, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// queueActivityInsert adds one activity insert to a batch. Shared with the
// workday repository's transactional inserts.
func queueActivityInsert(batch *pgx.Batch, a domain.Activity) {
	m := toModelActivity(a)
	batch.Queue(activityInsertQuery,
		m.ActivityID, m.WorkdayID, m.Task, m.Goal, m.StateID, m.Observation, m.Carried, m.OriginActivityID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
}

const activitySelectColumns = `a.activity_id, a.workday_id, a.task, a.goal, a.state_id, a.observation, a.carried, a.origin_activity_id, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by, s.name`

func scanActivityWithState(row pgx.Row) (*domain.Activity, error) {
	var m models.Activity
	var stateName string
	err := row.Scan(
		&m.ActivityID, &m.WorkdayID, &m.Task, &m.Goal, &m.StateID, &m.Observation, &m.Carried, &m.OriginActivityID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&stateName,
	)
	if err != nil {
		return nil, err
	}
	a := toDomainActivity(m)
	a.State = &domain.TaskState{StateID: m.StateID, Name: stateName}
	return &a, nil
}

// SaveActivity inserts a single activity.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := toModelActivity(activity)
	_, err := r.Pool.Exec(ctx, activityInsertQuery,
		m.ActivityID, m.WorkdayID, m.Task, m.Goal, m.StateID, m.Observation, m.Carried, m.OriginActivityID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: activity %s", apperrors.ErrDuplicate, m.ActivityID)
		}
		return fmt.Errorf("failed to save activity %s: %w", m.ActivityID, err)
	}
	return nil
}

// SaveActivities inserts activities in one batch.
func (r *PgxActivityRepository) SaveActivities(ctx context.Context, activities []domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range activities {
		queueActivityInsert(batch, a)
	}
	br := r.Pool.SendBatch(ctx, batch)
	for range activities {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to batch-insert activities: %w", err)
		}
	}
	return br.Close()
}

// FindActivityByID retrieves an activity with its state attached.
func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	query := `
		SELECT ` + activitySelectColumns + `
		FROM activities a
		JOIN task_states s ON s.state_id = a.state_id
		WHERE a.activity_id = $1;
	`
	a, err := scanActivityWithState(r.Pool.QueryRow(ctx, query, activityID))
	if err != nil {
		return nil, mapNoRows(err, "activity", activityID)
	}
	return a, nil
}

// FindActivitiesByIDs retrieves the known activities; unknown ids are absent.
func (r *PgxActivityRepository) FindActivitiesByIDs(ctx context.Context, activityIDs []string) ([]domain.Activity, error) {
	if len(activityIDs) == 0 {
		return []domain.Activity{}, nil
	}
	query := `
		SELECT ` + activitySelectColumns + `
		FROM activities a
		JOIN task_states s ON s.state_id = a.state_id
		WHERE a.activity_id = ANY($1)
		ORDER BY a.created_at ASC, a.activity_id ASC;
	`
	return r.queryActivities(ctx, query, activityIDs)
}

// UpdateActivity applies state and/or observation changes; nil leaves the
// column unchanged.
func (r *PgxActivityRepository) UpdateActivity(ctx context.Context, activityID string, stateID, observation *string, updatedBy string) error {
	query := `
		UPDATE activities
		SET state_id = COALESCE($2, state_id),
		    observation = COALESCE($3, observation),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE activity_id = $1;
	`
	var stateArg, obsArg sql.NullString
	if stateID != nil {
		stateArg = sql.NullString{String: *stateID, Valid: true}
	}
	if observation != nil {
		obsArg = sql.NullString{String: *observation, Valid: true}
	}
	tag, err := r.Pool.Exec(ctx, query, activityID, stateArg, obsArg, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update activity %s: %w", activityID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: activity %s", apperrors.ErrNotFound, activityID)
	}
	return nil
}

// ListActivitiesByWorkday returns the workday's activities in creation order.
func (r *PgxActivityRepository) ListActivitiesByWorkday(ctx context.Context, workdayID string) ([]domain.Activity, error) {
	query := `
		SELECT ` + activitySelectColumns + `
		FROM activities a
		JOIN task_states s ON s.state_id = a.state_id
		WHERE a.workday_id = $1
		ORDER BY a.created_at ASC, a.activity_id ASC;
	`
	return r.queryActivities(ctx, query, workdayID)
}

// ListActivitiesByWorkdayAndState returns the workday's activities in the
// given state, creation order.
func (r *PgxActivityRepository) ListActivitiesByWorkdayAndState(ctx context.Context, workdayID, stateID string) ([]domain.Activity, error) {
	query := `
		SELECT ` + activitySelectColumns + `
		FROM activities a
		JOIN task_states s ON s.state_id = a.state_id
		WHERE a.workday_id = $1 AND a.state_id = $2
		ORDER BY a.created_at ASC, a.activity_id ASC;
	`
	return r.queryActivities(ctx, query, workdayID, stateID)
}

func (r *PgxActivityRepository) queryActivities(ctx context.Context, query string, args ...any) ([]domain.Activity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivityWithState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activities, nil
}
