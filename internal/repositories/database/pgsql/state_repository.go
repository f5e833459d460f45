package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxTaskStateRepository struct {
	BaseRepository
}

func newPgxTaskStateRepository(pool *pgxpool.Pool) portsrepo.TaskStateRepository {
	return &PgxTaskStateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskStateRepository = (*PgxTaskStateRepository)(nil)

func toDomainTaskState(m models.TaskState) domain.TaskState {
	return domain.TaskState{
		StateID: m.StateID,
		Name:    m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const taskStateColumns = `state_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanTaskState(row pgx.Row, m *models.TaskState) error {
	return row.Scan(&m.StateID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
}

func (r *PgxTaskStateRepository) SaveTaskState(ctx context.Context, state domain.TaskState) error {
	query := `
		INSERT INTO task_states (` + taskStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		state.StateID, state.Name,
		state.CreatedAt, state.CreatedBy, state.LastUpdatedAt, state.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task state %q already exists: %w", state.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save task state %s: %w", state.StateID, err)
	}
	return nil
}

func (r *PgxTaskStateRepository) FindTaskStateByID(ctx context.Context, stateID string) (*domain.TaskState, error) {
	query := `SELECT ` + taskStateColumns + ` FROM task_states WHERE state_id = $1;`
	var m models.TaskState
	if err := scanTaskState(r.Pool.QueryRow(ctx, query, stateID), &m); err != nil {
		return nil, mapNoRows(err, "task state", stateID)
	}
	state := toDomainTaskState(m)
	return &state, nil
}

func (r *PgxTaskStateRepository) FindTaskStateByName(ctx context.Context, name string) (*domain.TaskState, error) {
	query := `SELECT ` + taskStateColumns + ` FROM task_states WHERE name = $1;`
	var m models.TaskState
	if err := scanTaskState(r.Pool.QueryRow(ctx, query, name), &m); err != nil {
		return nil, mapNoRows(err, "task state", name)
	}
	state := toDomainTaskState(m)
	return &state, nil
}

func (r *PgxTaskStateRepository) ListTaskStates(ctx context.Context) ([]domain.TaskState, error) {
	query := `SELECT ` + taskStateColumns + ` FROM task_states ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query task states: %w", err)
	}
	defer rows.Close()

	states := []domain.TaskState{}
	for rows.Next() {
		var m models.TaskState
		if err := scanTaskState(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan task state row: %w", err)
		}
		states = append(states, toDomainTaskState(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task state rows: %w", err)
	}
	return states, nil
}

func (r *PgxTaskStateRepository) UpdateTaskState(ctx context.Context, stateID, name, updatedBy string) error {
	query := `
		UPDATE task_states
		SET name = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE state_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, stateID, name, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task state %q already exists: %w", name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update task state %s: %w", stateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task state %s: %w", stateID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaskStateRepository) DeleteTaskState(ctx context.Context, stateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM task_states WHERE state_id = $1;`, stateID)
	if err != nil {
		return fmt.Errorf("failed to delete task state %s: %w", stateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task state %s: %w", stateID, apperrors.ErrNotFound)
	}
	return nil
}

// CountActivitiesInState reports how many activities still reference the
// state.
func (r *PgxTaskStateRepository) CountActivitiesInState(ctx context.Context, stateID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE state_id = $1;`, stateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities in state %s: %w", stateID, err)
	}
	return count, nil
}
