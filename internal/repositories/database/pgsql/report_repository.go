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

type PgxReportRepository struct {
	BaseRepository
	workdays PgxWorkdayRepository
}

// newPgxReportRepository creates a new repository for the aggregate
// queries behind daily digests and statistics.
func newPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepository {
	base := BaseRepository{Pool: pool}
	return &PgxReportRepository{BaseRepository: base, workdays: PgxWorkdayRepository{base}}
}

var _ portsrepo.ReportRepository = (*PgxReportRepository)(nil)

// ListUserReports pairs every user with their workdays in [from, to),
// activities attached. Users with no workday appear with an empty slice.
func (r *PgxReportRepository) ListUserReports(ctx context.Context, from, to time.Time) ([]domain.UserReport, error) {
	userQuery := `SELECT ` + userColumns + ` FROM users WHERE user_id <> $1 ORDER BY first_name, last_name;`
	userRows, err := r.Pool.Query(ctx, userQuery, domain.SystemUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users for report: %w", err)
	}
	defer userRows.Close()

	reports := []domain.UserReport{}
	index := make(map[string]int)
	for userRows.Next() {
		var m models.User
		if err := scanUser(userRows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		index[m.UserID] = len(reports)
		reports = append(reports, domain.UserReport{User: toDomainUser(m), Workdays: []domain.Workday{}})
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	workdayQuery := `
		SELECT ` + workdayColumns + `
		FROM workdays
		WHERE work_date >= $1 AND work_date < $2
		ORDER BY work_date DESC;
	`
	workdays, err := r.workdays.queryWorkdays(ctx, workdayQuery, from, to)
	if err != nil {
		return nil, err
	}
	if err := r.workdays.attachActivities(ctx, workdays, false); err != nil {
		return nil, err
	}

	for _, w := range workdays {
		i, ok := index[w.UserID]
		if !ok {
			continue
		}
		reports[i].Workdays = append(reports[i].Workdays, w)
	}
	return reports, nil
}

// CollectDailyStats computes the aggregate counters for workdays dated in
// [from, to). Rates stay zero here; the service derives them.
func (r *PgxReportRepository) CollectDailyStats(ctx context.Context, from, to time.Time) (*domain.DailyStats, error) {
	stats := &domain.DailyStats{Date: from}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE user_id <> $3),
			(SELECT COUNT(DISTINCT user_id) FROM workdays WHERE work_date >= $1 AND work_date < $2),
			(SELECT COUNT(*) FROM workdays WHERE work_date >= $1 AND work_date < $2),
			(SELECT COUNT(*) FROM workdays WHERE work_date >= $1 AND work_date < $2 AND approved),
			(SELECT COUNT(*) FROM activities a JOIN workdays w ON w.workday_id = a.workday_id
				WHERE w.work_date >= $1 AND w.work_date < $2),
			(SELECT COUNT(*) FROM activities a
				JOIN workdays w ON w.workday_id = a.workday_id
				JOIN task_states s ON s.state_id = a.state_id
				WHERE w.work_date >= $1 AND w.work_date < $2 AND s.name = $4);
	`
	err := r.Pool.QueryRow(ctx, query, from, to, domain.SystemUserID, domain.StateDone).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.TotalWorkdays,
		&stats.ApprovedWorkdays,
		&stats.TotalActivities,
		&stats.DoneActivities,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect daily stats: %w", err)
	}
	return stats, nil
}

// CollectUserRangeStats computes one user's counters over [from, to].
func (r *PgxReportRepository) CollectUserRangeStats(ctx context.Context, userID string, from, to time.Time) (*domain.UserRangeStats, error) {
	stats := &domain.UserRangeStats{UserID: userID, From: from, To: to}

	query := `
		SELECT
			(SELECT COUNT(*) FROM workdays WHERE user_id = $1 AND work_date >= $2 AND work_date <= $3),
			(SELECT COUNT(*) FROM workdays WHERE user_id = $1 AND work_date >= $2 AND work_date <= $3 AND approved),
			(SELECT COUNT(*) FROM activities a JOIN workdays w ON w.workday_id = a.workday_id
				WHERE w.user_id = $1 AND w.work_date >= $2 AND w.work_date <= $3),
			(SELECT COUNT(*) FROM activities a
				JOIN workdays w ON w.workday_id = a.workday_id
				JOIN task_states s ON s.state_id = a.state_id
				WHERE w.user_id = $1 AND w.work_date >= $2 AND w.work_date <= $3 AND s.name = $4);
	`
	err := r.Pool.QueryRow(ctx, query, userID, from, to, domain.StateDone).Scan(
		&stats.Workdays,
		&stats.ApprovedDays,
		&stats.TotalActivities,
		&stats.DoneActivities,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats for user %s: %w", userID, err)
	}
	return stats, nil
}
