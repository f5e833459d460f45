package services

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
	"github.com/checkin-tracker/tracker_backend/internal/platform/mail"
)

var digestTmpl = template.Must(template.New("digest").Parse(`
<h2>Resumen de tu jornada del {{.Date}}</h2>
{{range .Workdays}}
<p>Check-in: {{.CheckinAt}}{{if .CheckoutAt}} · Check-out: {{.CheckoutAt}}{{end}}
{{if .Approved}} · <strong>Aprobada</strong>{{else}} · Pendiente de aprobación{{end}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Tarea</th><th>Meta</th><th>Estado</th><th>Observación</th></tr>
{{range .Activities}}<tr><td>{{.Task}}</td><td>{{.Goal}}</td><td>{{.State}}</td><td>{{.Observation}}</td></tr>
{{end}}</table>
{{end}}
`))

var summaryTmpl = template.Must(template.New("summary").Parse(`
<h2>Resumen general del {{.Date}}</h2>
<ul>
<li>Usuarios activos: {{.ActiveUsers}} de {{.TotalUsers}} ({{.ActivityRate}}%)</li>
<li>Jornadas registradas: {{.TotalWorkdays}}, aprobadas: {{.ApprovedWorkdays}} ({{.ApprovalRate}}%)</li>
<li>Actividades: {{.TotalActivities}}, completadas: {{.DoneActivities}} ({{.CompletionRate}}%)</li>
</ul>
`))

// ReportService assembles the daily digests and the management summary.
type ReportService struct {
	reportRepo portsrepo.ReportRepository
	userRepo   portsrepo.UserRepository
	dispatcher *mail.Dispatcher
	audit      portssvc.AuditRecorderSvc
}

// NewReportService creates a new ReportService.
func NewReportService(rr portsrepo.ReportRepository, ur portsrepo.UserRepository, dispatcher *mail.Dispatcher, audit portssvc.AuditRecorderSvc) portssvc.ReportSvcFacade {
	return &ReportService{
		reportRepo: rr,
		userRepo:   ur,
		dispatcher: dispatcher,
		audit:      audit,
	}
}

var _ portssvc.ReportSvcFacade = (*ReportService)(nil)

// BuildDailyReports gathers every user's workdays for the calendar day.
func (s *ReportService) BuildDailyReports(ctx context.Context, date time.Time) ([]domain.UserReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return s.reportRepo.ListUserReports(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

// SendDailyReports emails each active user their digest, then sends the
// management summary to supervisor, manager and admin role holders. A user
// without workdays that day gets no mail. Returns the digest count.
func (s *ReportService) SendDailyReports(ctx context.Context, date time.Time, manual bool) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reports, err := s.BuildDailyReports(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to build daily reports: %w", err)
	}

	day := date.Format(dto.DateLayout)
	sent := 0
	for _, report := range reports {
		if !report.HasActivity() {
			continue
		}
		body, err := s.renderDigest(day, report)
		if err != nil {
			logger.Error("Failed to render digest",
				slog.String("error", err.Error()),
				slog.String("user_id", report.User.UserID),
			)
			continue
		}
		s.dispatcher.Enqueue(mail.Message{
			To:      report.User.Email,
			Subject: fmt.Sprintf("Resumen de actividades del %s", day),
			HTML:    body,
		})
		sent++
	}

	if err := s.sendManagementSummary(ctx, date); err != nil {
		logger.Error("Failed to send management summary", slog.String("error", err.Error()))
	}

	action := domain.ActionReportSent
	if manual {
		action = domain.ActionReportManual
	}
	s.audit.Record(ctx, action,
		fmt.Sprintf("Informe diario del %s enviado a %d usuarios", day, sent),
		"")

	logger.Info("Daily reports dispatched", slog.String("date", day), slog.Int("digests", sent))
	return sent, nil
}

// GetDailyStats computes the day's dashboard statistics with rates filled in.
func (s *ReportService) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := s.reportRepo.CollectDailyStats(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.ActivityRate = domain.Percent(stats.ActiveUsers, stats.TotalUsers)
	stats.ApprovalRate = domain.Percent(stats.ApprovedWorkdays, stats.TotalWorkdays)
	stats.CompletionRate = domain.Percent(stats.DoneActivities, stats.TotalActivities)
	return stats, nil
}

func (s *ReportService) renderDigest(day string, report domain.UserReport) (string, error) {
	type activityLine struct {
		Task, Goal, State, Observation string
	}
	type workdayBlock struct {
		CheckinAt  string
		CheckoutAt string
		Approved   bool
		Activities []activityLine
	}
	data := struct {
		Date     string
		Workdays []workdayBlock
	}{Date: day}

	for _, w := range report.Workdays {
		block := workdayBlock{
			CheckinAt: w.CheckinAt.Format("15:04"),
			Approved:  w.Approved,
		}
		if w.CheckoutAt != nil {
			block.CheckoutAt = w.CheckoutAt.Format("15:04")
		}
		for _, a := range w.Activities {
			line := activityLine{Task: a.Task, Goal: a.Goal, Observation: a.Observation}
			if a.State != nil {
				line.State = a.State.Name
			}
			block.Activities = append(block.Activities, line)
		}
		data.Workdays = append(data.Workdays, block)
	}

	var body strings.Builder
	if err := digestTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func (s *ReportService) sendManagementSummary(ctx context.Context, date time.Time) error {
	stats, err := s.GetDailyStats(ctx, date)
	if err != nil {
		return err
	}

	recipients, err := s.userRepo.ListEmailsByRoles(ctx, []string{domain.RoleSupervisor, domain.RoleManager, domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("failed to resolve summary recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	day := date.Format(dto.DateLayout)
	data := struct {
		Date string
		*domain.DailyStats
	}{Date: day, DailyStats: stats}

	var body strings.Builder
	if err := summaryTmpl.Execute(&body, data); err != nil {
		return err
	}

	for _, to := range recipients {
		s.dispatcher.Enqueue(mail.Message{
			To:      to,
			Subject: fmt.Sprintf("Resumen general del %s", day),
			HTML:    body.String(),
		})
	}
	return nil
}
