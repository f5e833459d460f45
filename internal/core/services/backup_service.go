package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// backupTimeout bounds one pg_dump run.
const backupTimeout = 10 * time.Minute

// BackupService shells out to pg_dump for on-demand database backups.
type BackupService struct {
	databaseURL string
	backupDir   string
	audit       portssvc.AuditRecorderSvc
}

// NewBackupService creates a new BackupService.
func NewBackupService(databaseURL, backupDir string, audit portssvc.AuditRecorderSvc) portssvc.BackupSvcFacade {
	return &BackupService{
		databaseURL: databaseURL,
		backupDir:   backupDir,
		audit:       audit,
	}
}

var _ portssvc.BackupSvcFacade = (*BackupService)(nil)

// RunBackup dumps the database into a timestamped file under the backup
// directory.
func (s *BackupService) RunBackup(ctx context.Context) (*portssvc.BackupResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	start := time.Now()
	file := filepath.Join(s.backupDir, fmt.Sprintf("backup_%s.sql", start.Format("20060102_150405")))

	ctx, cancel := context.WithTimeout(ctx, backupTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pg_dump", "--no-owner", "--format=plain", "--file", file, s.databaseURL)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(file)
		logger.Error("pg_dump failed",
			slog.String("error", err.Error()),
			slog.String("output", strings.TrimSpace(string(output))),
		)
		return nil, fmt.Errorf("pg_dump failed: %w", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %w", err)
	}

	result := &portssvc.BackupResult{
		File:     filepath.Base(file),
		Size:     formatSize(info.Size()),
		Duration: time.Since(start).Round(time.Millisecond),
	}

	s.audit.Record(ctx, domain.ActionBackupRun,
		fmt.Sprintf("Backup %s generado (%s)", result.File, result.Size),
		"")

	logger.Info("Database backup completed",
		slog.String("file", result.File),
		slog.String("size", result.Size),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// ListBackups returns the backup file names, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
