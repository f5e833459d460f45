package services

import (
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/platform/config"
	"github.com/checkin-tracker/tracker_backend/internal/platform/mail"
)

// NewServiceContainer wires every service with its dependencies. The audit
// recorder and notifier are built first because most services depend on
// them.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, dispatcher *mail.Dispatcher) *portssvc.ServiceContainer {
	audit := NewAuditService(repos.AuditRepo)
	notifier := NewNotificationService(repos.UserRepo, dispatcher)
	carryForward := NewCarryForwardService(repos.WorkdayRepo, repos.ActivityRepo, repos.StateRepo)

	return &portssvc.ServiceContainer{
		Workday: NewWorkdayService(
			repos.WorkdayRepo,
			repos.ActivityRepo,
			repos.UserRepo,
			repos.StateRepo,
			repos.ReportRepo,
			carryForward,
			audit,
			notifier,
		),
		CarryForward: carryForward,
		Activity:     NewActivityService(repos.ActivityRepo, repos.WorkdayRepo, repos.StateRepo, audit),
		Comment:      NewCommentService(repos.CommentRepo, repos.ActivityRepo),
		Audit:        audit,
		User:         NewUserService(repos.UserRepo, repos.RoleRepo, repos.AreaRepo, audit),
		Role:         NewRoleService(repos.RoleRepo, audit),
		Area:         NewAreaService(repos.AreaRepo, audit),
		TaskState:    NewTaskStateService(repos.StateRepo, audit),
		Report:       NewReportService(repos.ReportRepo, repos.UserRepo, dispatcher, audit),
		Backup:       NewBackupService(cfg.DatabaseURL, cfg.BackupDir, audit),
		Notifier:     notifier,
		Token:        NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
