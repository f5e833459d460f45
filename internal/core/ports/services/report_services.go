package services

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// ReportSvcFacade assembles and dispatches the daily digests.
type ReportSvcFacade interface {
	// BuildDailyReports gathers every user's workdays for the given
	// calendar day.
	BuildDailyReports(ctx context.Context, date time.Time) ([]domain.UserReport, error)

	// SendDailyReports emails each active user their digest and sends the
	// management summary to supervisor/manager/admin role holders.
	// Returns the number of users that received a digest.
	SendDailyReports(ctx context.Context, date time.Time, manual bool) (int, error)

	// GetDailyStats computes the day's dashboard statistics.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)
}

// BackupResult describes the outcome of a database backup run.
type BackupResult struct {
	File     string        `json:"file"`
	Size     string        `json:"size"`
	Duration time.Duration `json:"duration"`
}

// BackupSvcFacade runs and lists database dumps.
type BackupSvcFacade interface {
	RunBackup(ctx context.Context) (*BackupResult, error)
	ListBackups(ctx context.Context) ([]string, error)
}

// NotifierSvc sends best-effort workflow notification emails. All methods
// enqueue asynchronously; failures are logged, never returned.
type NotifierSvc interface {
	NotifyCheckin(ctx context.Context, workday *domain.Workday)
	NotifyCheckout(ctx context.Context, workday *domain.Workday)
	NotifyApproval(ctx context.Context, workday *domain.Workday, approved bool, reason string)
}
