package services

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
	"github.com/checkin-tracker/tracker_backend/internal/platform/mail"
)

var checkinTmpl = template.Must(template.New("checkin").Parse(`
<h2>Nuevo check-in</h2>
<p><strong>{{.Employee}}</strong> inició su jornada del <strong>{{.Date}}</strong>.</p>
{{if .Tasks}}<p>Tareas planificadas:</p>
<ul>{{range .Tasks}}<li>{{.Task}}{{if .Carried}} <em>({{.Marker}})</em>{{end}}</li>{{end}}</ul>{{end}}
`))

var checkoutTmpl = template.Must(template.New("checkout").Parse(`
<h2>Check-out registrado</h2>
<p><strong>{{.Employee}}</strong> cerró su jornada del <strong>{{.Date}}</strong>.</p>
<p>Tiempo trabajado: <strong>{{.Elapsed}}</strong>.</p>
{{if .Notes}}<p>Notas: {{.Notes}}</p>{{end}}
`))

var approvalTmpl = template.Must(template.New("approval").Parse(`
{{if .Approved}}<h2>Jornada aprobada</h2>
<p>Tu jornada del <strong>{{.Date}}</strong> fue aprobada por tu supervisor.</p>
{{else}}<h2>Jornada rechazada</h2>
<p>Tu jornada del <strong>{{.Date}}</strong> fue rechazada.</p>
{{if .Reason}}<p>Motivo: {{.Reason}}</p>{{end}}
<p>Se agregó una tarea de seguimiento a tu jornada.</p>{{end}}
`))

// NotificationService sends the workflow emails. Every method resolves the
// recipients, renders the body and hands the message to the dispatcher;
// nothing here can fail the calling operation.
type NotificationService struct {
	userRepo   portsrepo.UserRepository
	dispatcher *mail.Dispatcher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(ur portsrepo.UserRepository, dispatcher *mail.Dispatcher) portssvc.NotifierSvc {
	return &NotificationService{
		userRepo:   ur,
		dispatcher: dispatcher,
	}
}

var _ portssvc.NotifierSvc = (*NotificationService)(nil)

// NotifyCheckin mails the assigned supervisor the employee's plan.
func (s *NotificationService) NotifyCheckin(ctx context.Context, workday *domain.Workday) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if workday.SupervisorID == "" {
		return
	}
	employee, supervisor, ok := s.resolvePair(ctx, workday)
	if !ok {
		return
	}

	type taskLine struct {
		Task    string
		Carried bool
		Marker  string
	}
	data := struct {
		Employee string
		Date     string
		Tasks    []taskLine
	}{
		Employee: employee.FullName(),
		Date:     workday.Date.Format(dto.DateLayout),
	}
	for _, a := range workday.Activities {
		data.Tasks = append(data.Tasks, taskLine{Task: a.Task, Carried: a.Carried, Marker: domain.CarryMarker})
	}

	var body strings.Builder
	if err := checkinTmpl.Execute(&body, data); err != nil {
		logger.Error("Failed to render check-in mail", slog.String("error", err.Error()))
		return
	}
	s.dispatcher.Enqueue(mail.Message{
		To:      supervisor.Email,
		Subject: fmt.Sprintf("Check-in de %s (%s)", employee.FullName(), data.Date),
		HTML:    body.String(),
	})
}

// NotifyCheckout mails the assigned supervisor the closed day's summary.
func (s *NotificationService) NotifyCheckout(ctx context.Context, workday *domain.Workday) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if workday.SupervisorID == "" {
		return
	}
	employee, supervisor, ok := s.resolvePair(ctx, workday)
	if !ok {
		return
	}

	elapsed := workday.Elapsed()
	data := struct {
		Employee string
		Date     string
		Elapsed  string
		Notes    string
	}{
		Employee: employee.FullName(),
		Date:     workday.Date.Format(dto.DateLayout),
		Elapsed:  fmt.Sprintf("%dh %02dmin", int(elapsed.Hours()), int(elapsed.Minutes())%60),
		Notes:    workday.Notes,
	}

	var body strings.Builder
	if err := checkoutTmpl.Execute(&body, data); err != nil {
		logger.Error("Failed to render check-out mail", slog.String("error", err.Error()))
		return
	}
	s.dispatcher.Enqueue(mail.Message{
		To:      supervisor.Email,
		Subject: fmt.Sprintf("Check-out de %s (%s)", employee.FullName(), data.Date),
		HTML:    body.String(),
	})
}

// NotifyApproval mails the employee the approval or rejection outcome.
func (s *NotificationService) NotifyApproval(ctx context.Context, workday *domain.Workday, approved bool, reason string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.userRepo.FindUserByID(ctx, workday.UserID)
	if err != nil {
		logger.Warn("Skipping approval mail, employee lookup failed",
			slog.String("error", err.Error()),
			slog.String("user_id", workday.UserID),
		)
		return
	}

	data := struct {
		Approved bool
		Date     string
		Reason   string
	}{
		Approved: approved,
		Date:     workday.Date.Format(dto.DateLayout),
		Reason:   reason,
	}

	var body strings.Builder
	if err := approvalTmpl.Execute(&body, data); err != nil {
		logger.Error("Failed to render approval mail", slog.String("error", err.Error()))
		return
	}

	subject := fmt.Sprintf("Jornada del %s aprobada", data.Date)
	if !approved {
		subject = fmt.Sprintf("Jornada del %s rechazada", data.Date)
	}
	s.dispatcher.Enqueue(mail.Message{
		To:      employee.Email,
		Subject: subject,
		HTML:    body.String(),
	})
}

func (s *NotificationService) resolvePair(ctx context.Context, workday *domain.Workday) (*domain.User, *domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.userRepo.FindUserByID(ctx, workday.UserID)
	if err != nil {
		logger.Warn("Skipping workday mail, employee lookup failed",
			slog.String("error", err.Error()),
			slog.String("user_id", workday.UserID),
		)
		return nil, nil, false
	}
	supervisor, err := s.userRepo.FindUserByID(ctx, workday.SupervisorID)
	if err != nil {
		logger.Warn("Skipping workday mail, supervisor lookup failed",
			slog.String("error", err.Error()),
			slog.String("supervisor_id", workday.SupervisorID),
		)
		return nil, nil, false
	}
	return employee, supervisor, true
}
