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

type PgxWorkdayRepository struct {
	BaseRepository
}

// newPgxWorkdayRepository creates a new repository for workday data.
func newPgxWorkdayRepository(pool *pgxpool.Pool) portsrepo.WorkdayRepository {
	return &PgxWorkdayRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkdayRepository = (*PgxWorkdayRepository)(nil)

// Helper to convert models.Workday from DB to domain.Workday
func toDomainWorkday(m models.Workday) domain.Workday {
	w := domain.Workday{
		WorkdayID: m.WorkdayID,
		UserID:    m.UserID,
		Date:      m.WorkDate,
		CheckinAt: m.CheckinAt,
		Approved:  m.Approved,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.SupervisorID.Valid {
		w.SupervisorID = m.SupervisorID.String
	}
	if m.CheckoutAt.Valid {
		t := m.CheckoutAt.Time
		w.CheckoutAt = &t
	}
	if m.Notes.Valid {
		w.Notes = m.Notes.String
	}
	return w
}

const workdayColumns = `workday_id, user_id, supervisor_id, work_date, checkin_at, checkout_at, approved, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkday(row pgx.Row) (*domain.Workday, error) {
	var m models.Workday
	err := row.Scan(
		&m.WorkdayID,
		&m.UserID,
		&m.SupervisorID,
		&m.WorkDate,
		&m.CheckinAt,
		&m.CheckoutAt,
		&m.Approved,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	w := toDomainWorkday(m)
	return &w, nil
}

// CreateWorkdayWithActivities inserts the workday and its initial
// activities in one transaction so a crash cannot leave a day with a
// partial task list.
func (r *PgxWorkdayRepository) CreateWorkdayWithActivities(ctx context.Context, workday domain.Workday, activities []domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	query := `
		INSERT INTO workdays (workday_id, user_id, supervisor_id, work_date, checkin_at, approved, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var supervisorID sql.NullString
	if workday.SupervisorID != "" {
		supervisorID = sql.NullString{String: workday.SupervisorID, Valid: true}
	}
	var notes sql.NullString
	if workday.Notes != "" {
		notes = sql.NullString{String: workday.Notes, Valid: true}
	}

	_, err = tx.Exec(ctx, query,
		workday.WorkdayID,
		workday.UserID,
		supervisorID,
		workday.Date,
		workday.CheckinAt,
		workday.Approved,
		notes,
		workday.CreatedAt,
		workday.CreatedBy,
		workday.LastUpdatedAt,
		workday.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: workday for user %s on %s", apperrors.ErrDuplicate, workday.UserID, workday.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to insert workday %s: %w", workday.WorkdayID, err)
	}

	if len(activities) > 0 {
		batch := &pgx.Batch{}
		for _, a := range activities {
			queueActivityInsert(batch, a)
		}
		br := tx.SendBatch(ctx, batch)
		for range activities {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert activities for workday %s: %w", workday.WorkdayID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close activity batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindWorkdayByID retrieves a workday by its ID, without activities.
func (r *PgxWorkdayRepository) FindWorkdayByID(ctx context.Context, workdayID string) (*domain.Workday, error) {
	query := `SELECT ` + workdayColumns + ` FROM workdays WHERE workday_id = $1;`
	w, err := scanWorkday(r.Pool.QueryRow(ctx, query, workdayID))
	if err != nil {
		return nil, mapNoRows(err, "workday", workdayID)
	}
	return w, nil
}

// FindWorkdayForUserInRange returns the user's workday with work_date in
// [from, to). Backs the duplicate check-in guard.
func (r *PgxWorkdayRepository) FindWorkdayForUserInRange(ctx context.Context, userID string, from, to time.Time) (*domain.Workday, error) {
	query := `
		SELECT ` + workdayColumns + `
		FROM workdays
		WHERE user_id = $1 AND work_date >= $2 AND work_date < $3
		LIMIT 1;
	`
	w, err := scanWorkday(r.Pool.QueryRow(ctx, query, userID, from, to))
	if err != nil {
		return nil, mapNoRows(err, "workday for user", userID)
	}
	return w, nil
}

// FindLatestClosedWorkday returns the user's most recent checked-out
// workday. Tie-break on checkin time for safety; the unique date index
// makes ties impossible in practice.
func (r *PgxWorkdayRepository) FindLatestClosedWorkday(ctx context.Context, userID string) (*domain.Workday, error) {
	query := `
		SELECT ` + workdayColumns + `
		FROM workdays
		WHERE user_id = $1 AND checkout_at IS NOT NULL
		ORDER BY work_date DESC, checkin_at DESC
		LIMIT 1;
	`
	w, err := scanWorkday(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapNoRows(err, "closed workday for user", userID)
	}
	return w, nil
}

// MarkCheckout sets the checkout timestamp; notes overwrites only when non-nil.
func (r *PgxWorkdayRepository) MarkCheckout(ctx context.Context, workdayID string, at time.Time, notes *string, updatedBy string) error {
	query := `
		UPDATE workdays
		SET checkout_at = $2, notes = COALESCE($3, notes), last_updated_at = $4, last_updated_by = $5
		WHERE workday_id = $1;
	`
	var notesArg sql.NullString
	if notes != nil {
		notesArg = sql.NullString{String: *notes, Valid: true}
	}
	tag, err := r.Pool.Exec(ctx, query, workdayID, at, notesArg, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark checkout for workday %s: %w", workdayID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workday %s", apperrors.ErrNotFound, workdayID)
	}
	return nil
}

// SetApproval flips the approval flag.
func (r *PgxWorkdayRepository) SetApproval(ctx context.Context, workdayID string, approved bool, updatedBy string) error {
	query := `
		UPDATE workdays
		SET approved = $2, last_updated_at = $3, last_updated_by = $4
		WHERE workday_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, workdayID, approved, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set approval for workday %s: %w", workdayID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workday %s", apperrors.ErrNotFound, workdayID)
	}
	return nil
}

// RejectWorkday inserts the synthetic rejection activity and resets the
// approval flag atomically.
func (r *PgxWorkdayRepository) RejectWorkday(ctx context.Context, workdayID string, rejection domain.Activity, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueActivityInsert(batch, rejection)
	br := tx.SendBatch(ctx, batch)
	if _, err := br.Exec(); err != nil {
		br.Close()
		return fmt.Errorf("failed to insert rejection activity for workday %s: %w", workdayID, err)
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close rejection batch: %w", err)
	}

	query := `
		UPDATE workdays
		SET approved = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE workday_id = $1;
	`
	tag, err := tx.Exec(ctx, query, workdayID, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to reject workday %s: %w", workdayID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workday %s", apperrors.ErrNotFound, workdayID)
	}

	return r.Commit(ctx, tx)
}

// ListWorkdaysByUser returns the user's workdays, date descending, with
// activities and comments attached.
func (r *PgxWorkdayRepository) ListWorkdaysByUser(ctx context.Context, userID string) ([]domain.Workday, error) {
	query := `SELECT ` + workdayColumns + ` FROM workdays WHERE user_id = $1 ORDER BY work_date DESC;`
	workdays, err := r.queryWorkdays(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if err := r.attachActivities(ctx, workdays, true); err != nil {
		return nil, err
	}
	return workdays, nil
}

// ListWorkdaysByApproval returns workdays filtered on the approval flag,
// date descending, with activities attached.
func (r *PgxWorkdayRepository) ListWorkdaysByApproval(ctx context.Context, approved bool) ([]domain.Workday, error) {
	query := `SELECT ` + workdayColumns + ` FROM workdays WHERE approved = $1 ORDER BY work_date DESC;`
	workdays, err := r.queryWorkdays(ctx, query, approved)
	if err != nil {
		return nil, err
	}
	if err := r.attachActivities(ctx, workdays, false); err != nil {
		return nil, err
	}
	return workdays, nil
}

// ListWorkdaysBySupervisor returns workdays assigned to the supervisor,
// date descending, with activities and comments attached.
func (r *PgxWorkdayRepository) ListWorkdaysBySupervisor(ctx context.Context, supervisorID string) ([]domain.Workday, error) {
	query := `SELECT ` + workdayColumns + ` FROM workdays WHERE supervisor_id = $1 ORDER BY work_date DESC;`
	workdays, err := r.queryWorkdays(ctx, query, supervisorID)
	if err != nil {
		return nil, err
	}
	if err := r.attachActivities(ctx, workdays, true); err != nil {
		return nil, err
	}
	return workdays, nil
}

func (r *PgxWorkdayRepository) queryWorkdays(ctx context.Context, query string, args ...any) ([]domain.Workday, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workdays: %w", err)
	}
	defer rows.Close()

	var workdays []domain.Workday
	for rows.Next() {
		w, err := scanWorkday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workday row: %w", err)
		}
		workdays = append(workdays, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workday rows: %w", err)
	}
	return workdays, nil
}

// attachActivities loads the activities (with state names, and optionally
// comments) for the given workdays in two or three queries total.
func (r *PgxWorkdayRepository) attachActivities(ctx context.Context, workdays []domain.Workday, withComments bool) error {
	if len(workdays) == 0 {
		return nil
	}

	ids := make([]string, len(workdays))
	index := make(map[string]*domain.Workday, len(workdays))
	for i := range workdays {
		ids[i] = workdays[i].WorkdayID
		index[workdays[i].WorkdayID] = &workdays[i]
	}

	query := `
		SELECT a.activity_id, a.workday_id, a.task, a.goal, a.state_id, a.observation, a.carried, a.origin_activity_id,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		       s.name
		FROM activities a
		JOIN task_states s ON s.state_id = a.state_id
		WHERE a.workday_id = ANY($1)
		ORDER BY a.created_at ASC, a.activity_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query activities for workdays: %w", err)
	}
	defer rows.Close()

	activityIndex := make(map[string]*domain.Activity)
	for rows.Next() {
		var m models.Activity
		var stateName string
		if err := rows.Scan(
			&m.ActivityID, &m.WorkdayID, &m.Task, &m.Goal, &m.StateID, &m.Observation, &m.Carried, &m.OriginActivityID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&stateName,
		); err != nil {
			return fmt.Errorf("failed to scan activity row: %w", err)
		}
		a := toDomainActivity(m)
		a.State = &domain.TaskState{StateID: m.StateID, Name: stateName}
		w := index[a.WorkdayID]
		w.Activities = append(w.Activities, a)
		activityIndex[a.ActivityID] = &w.Activities[len(w.Activities)-1]
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating activity rows: %w", err)
	}

	if !withComments || len(activityIndex) == 0 {
		return nil
	}

	activityIDs := make([]string, 0, len(activityIndex))
	for id := range activityIndex {
		activityIDs = append(activityIDs, id)
	}

	commentQuery := `
		SELECT c.comment_id, c.activity_id, c.author_id, c.comment_text, c.commented_at,
		       u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.activity_id = ANY($1)
		ORDER BY c.commented_at DESC;
	`
	commentRows, err := r.Pool.Query(ctx, commentQuery, activityIDs)
	if err != nil {
		return fmt.Errorf("failed to query comments for activities: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var m models.Comment
		var firstName, lastName string
		if err := commentRows.Scan(&m.CommentID, &m.ActivityID, &m.AuthorID, &m.Text, &m.CommentedAt, &firstName, &lastName); err != nil {
			return fmt.Errorf("failed to scan comment row: %w", err)
		}
		c := toDomainComment(m)
		c.AuthorName = firstName + " " + lastName
		a := activityIndex[c.ActivityID]
		a.Comments = append(a.Comments, c)
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("error iterating comment rows: %w", err)
	}
	return nil
}
