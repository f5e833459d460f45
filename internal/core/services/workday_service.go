package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// WorkdayService drives the check-in / check-out / approval state machine.
type WorkdayService struct {
	workdayRepo  portsrepo.WorkdayRepository
	activityRepo portsrepo.ActivityRepository
	userRepo     portsrepo.UserRepository
	stateRepo    portsrepo.TaskStateRepository
	reportRepo   portsrepo.ReportRepository
	carryForward portssvc.CarryForwardSvc
	audit        portssvc.AuditRecorderSvc
	notifier     portssvc.NotifierSvc
}

// NewWorkdayService creates a new WorkdayService.
func NewWorkdayService(
	wr portsrepo.WorkdayRepository,
	ar portsrepo.ActivityRepository,
	ur portsrepo.UserRepository,
	sr portsrepo.TaskStateRepository,
	rr portsrepo.ReportRepository,
	carry portssvc.CarryForwardSvc,
	audit portssvc.AuditRecorderSvc,
	notifier portssvc.NotifierSvc,
) portssvc.WorkdaySvcFacade {
	return &WorkdayService{
		workdayRepo:  wr,
		activityRepo: ar,
		userRepo:     ur,
		stateRepo:    sr,
		reportRepo:   rr,
		carryForward: carry,
		audit:        audit,
		notifier:     notifier,
	}
}

var _ portssvc.WorkdaySvcFacade = (*WorkdayService)(nil)

// Checkin opens a workday for userID on the request's calendar date: one
// activity per planned task plus clones of the selected carried tasks, all
// inserted with the workday in a single transaction.
func (s *WorkdayService) Checkin(ctx context.Context, req dto.CheckinRequest, userID string) (*domain.Workday, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	date, err := req.ParseDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected %s", apperrors.ErrValidation, req.Date, dto.DateLayout)
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Guard against a second check-in on the same date. The unique index
	// on (user_id, work_date) backs this up under concurrency.
	if _, err := s.workdayRepo.FindWorkdayForUserInRange(ctx, userID, dayStart, dayEnd); err == nil {
		return nil, fmt.Errorf("%w: workday already exists for %s", apperrors.ErrDuplicate, req.Date)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing workday", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check for existing workday: %w", err)
	}

	supervisorID, err := s.resolveSupervisor(ctx, req.SupervisorID)
	if err != nil {
		return nil, err
	}

	pendingState, err := s.stateRepo.FindTaskStateByName(ctx, domain.StatePending)
	if err != nil {
		logger.Error("Failed to resolve pending state", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve pending state: %w", err)
	}

	now := time.Now()
	workday := domain.Workday{
		WorkdayID:    uuid.NewString(),
		UserID:       userID,
		SupervisorID: supervisorID,
		Date:         dayStart,
		CheckinAt:    now,
		Approved:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	activities := make([]domain.Activity, 0, len(req.PlannedTasks)+len(req.CarriedTaskIDs))
	for _, planned := range req.PlannedTasks {
		activities = append(activities, domain.Activity{
			ActivityID: uuid.NewString(),
			WorkdayID:  workday.WorkdayID,
			Task:       planned.Task,
			Goal:       planned.Goal,
			StateID:    pendingState.StateID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	clones, err := s.carryForward.BuildCarryClones(ctx, workday.WorkdayID, userID, req.CarriedTaskIDs, now)
	if err != nil {
		return nil, err
	}
	activities = append(activities, clones...)

	if err := s.workdayRepo.CreateWorkdayWithActivities(ctx, workday, activities); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to create workday", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create workday: %w", err)
	}
	workday.Activities = activities

	s.audit.Record(ctx, domain.ActionCheckin,
		fmt.Sprintf("Check-in del %s con %d tareas (%d continuadas)", req.Date, len(activities), len(clones)),
		userID)
	s.notifier.NotifyCheckin(ctx, &workday)

	logger.Info("Workday opened",
		slog.String("workday_id", workday.WorkdayID),
		slog.String("user_id", userID),
		slog.Int("activities", len(activities)),
	)
	return &workday, nil
}

// Checkout closes the workday.
func (s *WorkdayService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*domain.Workday, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workday, err := s.workdayRepo.FindWorkdayByID(ctx, req.WorkdayID)
	if err != nil {
		return nil, err
	}
	if workday.Closed() {
		return nil, fmt.Errorf("%w: workday %s", apperrors.ErrAlreadyClosed, req.WorkdayID)
	}

	now := time.Now()
	if err := s.workdayRepo.MarkCheckout(ctx, workday.WorkdayID, now, req.Notes, workday.UserID); err != nil {
		logger.Error("Failed to mark checkout", slog.String("error", err.Error()), slog.String("workday_id", req.WorkdayID))
		return nil, fmt.Errorf("failed to mark checkout: %w", err)
	}
	workday.CheckoutAt = &now
	if req.Notes != nil {
		workday.Notes = *req.Notes
	}
	workday.LastUpdatedAt = now
	workday.LastUpdatedBy = workday.UserID

	s.audit.Record(ctx, domain.ActionCheckout,
		fmt.Sprintf("Check-out de la jornada del %s", workday.Date.Format(dto.DateLayout)),
		workday.UserID)
	s.notifier.NotifyCheckout(ctx, workday)

	logger.Info("Workday closed", slog.String("workday_id", workday.WorkdayID))
	return workday, nil
}

// Approve sets the approval flag on a workday.
func (s *WorkdayService) Approve(ctx context.Context, workdayID string) (*domain.Workday, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workday, err := s.workdayRepo.FindWorkdayByID(ctx, workdayID)
	if err != nil {
		return nil, err
	}
	if workday.Approved {
		return nil, fmt.Errorf("%w: workday %s", apperrors.ErrAlreadyApproved, workdayID)
	}

	actorID := actorFromCtx(ctx)
	if err := s.workdayRepo.SetApproval(ctx, workdayID, true, actorID); err != nil {
		logger.Error("Failed to approve workday", slog.String("error", err.Error()), slog.String("workday_id", workdayID))
		return nil, fmt.Errorf("failed to approve workday: %w", err)
	}
	workday.Approved = true

	s.audit.Record(ctx, domain.ActionApproveWorkday,
		fmt.Sprintf("Jornada del %s aprobada", workday.Date.Format(dto.DateLayout)),
		actorID)
	s.notifier.NotifyApproval(ctx, workday, true, "")

	logger.Info("Workday approved", slog.String("workday_id", workdayID))
	return workday, nil
}

// Reject resets the approval flag and appends a synthetic activity naming
// the reason, both in one transaction.
func (s *WorkdayService) Reject(ctx context.Context, workdayID, reason string) (*domain.Workday, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workday, err := s.workdayRepo.FindWorkdayByID(ctx, workdayID)
	if err != nil {
		return nil, err
	}

	pendingState, err := s.stateRepo.FindTaskStateByName(ctx, domain.StatePending)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pending state: %w", err)
	}

	actorID := actorFromCtx(ctx)
	now := time.Now()
	rejection := domain.Activity{
		ActivityID:  uuid.NewString(),
		WorkdayID:   workdayID,
		Task:        domain.RejectionTask,
		Goal:        domain.RejectionTask,
		StateID:     pendingState.StateID,
		Observation: reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.workdayRepo.RejectWorkday(ctx, workdayID, rejection, actorID); err != nil {
		logger.Error("Failed to reject workday", slog.String("error", err.Error()), slog.String("workday_id", workdayID))
		return nil, fmt.Errorf("failed to reject workday: %w", err)
	}
	workday.Approved = false

	s.audit.Record(ctx, domain.ActionRejectWorkday,
		fmt.Sprintf("Jornada del %s rechazada: %s", workday.Date.Format(dto.DateLayout), reason),
		actorID)
	s.notifier.NotifyApproval(ctx, workday, false, reason)

	logger.Info("Workday rejected", slog.String("workday_id", workdayID))
	return workday, nil
}

// GetUserHistory returns the user's workdays with activities and comments.
func (s *WorkdayService) GetUserHistory(ctx context.Context, userID string) ([]domain.Workday, error) {
	return s.workdayRepo.ListWorkdaysByUser(ctx, userID)
}

// ListPending returns workdays awaiting approval.
func (s *WorkdayService) ListPending(ctx context.Context) ([]domain.Workday, error) {
	return s.workdayRepo.ListWorkdaysByApproval(ctx, false)
}

// ListApproved returns approved workdays.
func (s *WorkdayService) ListApproved(ctx context.Context) ([]domain.Workday, error) {
	return s.workdayRepo.ListWorkdaysByApproval(ctx, true)
}

// ListBySupervisor returns workdays assigned to the supervisor.
func (s *WorkdayService) ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.Workday, error) {
	return s.workdayRepo.ListWorkdaysBySupervisor(ctx, supervisorID)
}

// GetUserStats computes the user's counters over [from, to].
func (s *WorkdayService) GetUserStats(ctx context.Context, userID string, from, to time.Time) (*domain.UserRangeStats, error) {
	stats, err := s.reportRepo.CollectUserRangeStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	stats.CompletionRate = domain.Percent(stats.DoneActivities, stats.TotalActivities)
	return stats, nil
}

// resolveSupervisor validates an explicit supervisor id, or picks the
// first user with the supervisor role when none was given.
func (s *WorkdayService) resolveSupervisor(ctx context.Context, explicit *string) (string, error) {
	if explicit != nil && *explicit != "" {
		supervisor, err := s.userRepo.FindUserByID(ctx, *explicit)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: supervisor %s not found", apperrors.ErrValidation, *explicit)
			}
			return "", fmt.Errorf("failed to validate supervisor: %w", err)
		}
		return supervisor.UserID, nil
	}

	supervisor, err := s.userRepo.FindFirstUserWithRole(ctx, domain.RoleSupervisor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: no supervisor available for assignment", apperrors.ErrValidation)
		}
		return "", fmt.Errorf("failed to find a supervisor: %w", err)
	}
	return supervisor.UserID, nil
}

// actorFromCtx returns the request identity, falling back to the system
// user outside an authenticated request.
func actorFromCtx(ctx context.Context) string {
	if userID, ok := middleware.UserIDFromCtx(ctx); ok {
		return userID
	}
	return domain.SystemUserID
}
