package repositories

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// ReportRepository serves the aggregate queries behind daily digests and
// dashboard statistics.
type ReportRepository interface {
	// ListUserReports returns every user together with their workdays
	// (activities and states attached) whose date falls in [from, to).
	// Users without a workday that day appear with an empty slice.
	ListUserReports(ctx context.Context, from, to time.Time) ([]domain.UserReport, error)

	// CollectDailyStats computes the day's aggregate counters for
	// workdays with date in [from, to). Rates are filled in by the service.
	CollectDailyStats(ctx context.Context, from, to time.Time) (*domain.DailyStats, error)

	// CollectUserRangeStats computes one user's counters over [from, to].
	CollectUserRangeStats(ctx context.Context, userID string, from, to time.Time) (*domain.UserRangeStats, error)
}
