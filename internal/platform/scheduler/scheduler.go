package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the unattended jobs: the daily report dispatch and the
// weekly audit purge. Jobs tolerate concurrent manual re-triggers of the
// same operation; each run is guarded against overlapping with itself.
type Scheduler struct {
	cronScheduler *cron.Cron
	report        portssvc.ReportSvcFacade
	audit         portssvc.AuditSvcFacade
	logger        *slog.Logger

	reportHour    int
	retentionDays int

	reportMu      sync.Mutex
	reportRunning bool
	purgeMu       sync.Mutex
	purgeRunning  bool
}

// New creates a scheduler with the daily report at reportHour and the
// audit purge every Sunday 02:00.
func New(report portssvc.ReportSvcFacade, audit portssvc.AuditSvcFacade, logger *slog.Logger, reportHour, retentionDays int) *Scheduler {
	return &Scheduler{
		cronScheduler: cron.New(),
		report:        report,
		audit:         audit,
		logger:        logger,
		reportHour:    reportHour,
		retentionDays: retentionDays,
	}
}

// Start registers the cron entries and begins scheduling.
func (s *Scheduler) Start() error {
	reportSpec := fmt.Sprintf("0 %d * * *", s.reportHour)
	if _, err := s.cronScheduler.AddFunc(reportSpec, s.runDailyReport); err != nil {
		return fmt.Errorf("error scheduling daily report job: %w", err)
	}

	if _, err := s.cronScheduler.AddFunc("0 2 * * 0", s.runWeeklyAuditPurge); err != nil {
		return fmt.Errorf("error scheduling audit purge job: %w", err)
	}

	s.cronScheduler.Start()
	s.logger.Info("Scheduler started",
		slog.Int("report_hour", s.reportHour),
		slog.Int("audit_retention_days", s.retentionDays),
	)
	return nil
}

// Stop terminates the scheduler. Running jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cronScheduler.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runDailyReport() {
	s.reportMu.Lock()
	if s.reportRunning {
		s.reportMu.Unlock()
		s.logger.Info("Daily report job already running, skipping")
		return
	}
	s.reportRunning = true
	s.reportMu.Unlock()
	defer func() {
		s.reportMu.Lock()
		s.reportRunning = false
		s.reportMu.Unlock()
	}()

	ctx := context.Background()
	s.logger.Info("Running daily report job")

	sent, err := s.report.SendDailyReports(ctx, time.Now(), false)
	if err != nil {
		s.logger.Error("Daily report job failed", slog.String("error", err.Error()))
		s.audit.Record(ctx, domain.ActionReportFailed,
			fmt.Sprintf("Error enviando informes automáticos: %s", err.Error()), domain.SystemUserID)
		return
	}

	s.logger.Info("Daily report job completed", slog.Int("users_notified", sent))
}

func (s *Scheduler) runWeeklyAuditPurge() {
	s.purgeMu.Lock()
	if s.purgeRunning {
		s.purgeMu.Unlock()
		s.logger.Info("Audit purge job already running, skipping")
		return
	}
	s.purgeRunning = true
	s.purgeMu.Unlock()
	defer func() {
		s.purgeMu.Lock()
		s.purgeRunning = false
		s.purgeMu.Unlock()
	}()

	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	s.logger.Info("Running audit purge job", slog.Time("cutoff", cutoff))

	deleted, err := s.audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Audit purge job failed", slog.String("error", err.Error()))
		return
	}

	s.audit.Record(ctx, domain.ActionAuditPurge,
		fmt.Sprintf("Limpieza automática completada. Registros eliminados: %d", deleted), domain.SystemUserID)
	s.logger.Info("Audit purge job completed", slog.Int64("deleted", deleted))
}
