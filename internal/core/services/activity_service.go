package services

import (
	"context"
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

// ActivityService manages activities within a workday.
type ActivityService struct {
	activityRepo portsrepo.ActivityRepository
	workdayRepo  portsrepo.WorkdayRepository
	stateRepo    portsrepo.TaskStateRepository
	audit        portssvc.AuditRecorderSvc
}

// NewActivityService creates a new ActivityService.
func NewActivityService(ar portsrepo.ActivityRepository, wr portsrepo.WorkdayRepository, sr portsrepo.TaskStateRepository, audit portssvc.AuditRecorderSvc) portssvc.ActivitySvcFacade {
	return &ActivityService{
		activityRepo: ar,
		workdayRepo:  wr,
		stateRepo:    sr,
		audit:        audit,
	}
}

var _ portssvc.ActivitySvcFacade = (*ActivityService)(nil)

// CreateActivity adds an activity to one of the user's open workdays.
func (s *ActivityService) CreateActivity(ctx context.Context, req dto.CreateActivityRequest, userID string) (*domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workday, err := s.workdayRepo.FindWorkdayByID(ctx, req.WorkdayID)
	if err != nil {
		return nil, err
	}
	if workday.UserID != userID {
		return nil, fmt.Errorf("%w: workday %s belongs to another user", apperrors.ErrForbidden, req.WorkdayID)
	}
	if workday.Closed() {
		return nil, fmt.Errorf("%w: workday %s is already checked out", apperrors.ErrAlreadyClosed, req.WorkdayID)
	}

	stateID := req.StateID
	if stateID == "" {
		pendingState, err := s.stateRepo.FindTaskStateByName(ctx, domain.StatePending)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pending state: %w", err)
		}
		stateID = pendingState.StateID
	} else if _, err := s.stateRepo.FindTaskStateByID(ctx, stateID); err != nil {
		return nil, fmt.Errorf("%w: unknown task state %s", apperrors.ErrValidation, stateID)
	}

	now := time.Now()
	activity := domain.Activity{
		ActivityID:  uuid.NewString(),
		WorkdayID:   req.WorkdayID,
		Task:        req.Task,
		Goal:        req.Goal,
		StateID:     stateID,
		Observation: req.Observation,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		logger.Error("Failed to save activity", slog.String("error", err.Error()), slog.String("workday_id", req.WorkdayID))
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	s.audit.Record(ctx, domain.ActionCreateActivity,
		fmt.Sprintf("Actividad %q creada en la jornada del %s", req.Task, workday.Date.Format(dto.DateLayout)),
		userID)

	logger.Info("Activity created", slog.String("activity_id", activity.ActivityID), slog.String("workday_id", req.WorkdayID))
	return &activity, nil
}

// UpdateActivity changes an activity's state and/or observation. The
// workday owner and the assigned supervisor may update.
func (s *ActivityService) UpdateActivity(ctx context.Context, activityID string, req dto.UpdateActivityRequest, userID string) (*domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	workday, err := s.workdayRepo.FindWorkdayByID(ctx, activity.WorkdayID)
	if err != nil {
		return nil, err
	}
	if workday.UserID != userID && workday.SupervisorID != userID {
		return nil, fmt.Errorf("%w: activity %s is out of reach", apperrors.ErrForbidden, activityID)
	}

	if req.StateID != nil {
		if _, err := s.stateRepo.FindTaskStateByID(ctx, *req.StateID); err != nil {
			return nil, fmt.Errorf("%w: unknown task state %s", apperrors.ErrValidation, *req.StateID)
		}
	}

	if err := s.activityRepo.UpdateActivity(ctx, activityID, req.StateID, req.Observation, userID); err != nil {
		logger.Error("Failed to update activity", slog.String("error", err.Error()), slog.String("activity_id", activityID))
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	s.audit.Record(ctx, domain.ActionUpdateActivity,
		fmt.Sprintf("Actividad %q actualizada", activity.Task),
		userID)

	return s.activityRepo.FindActivityByID(ctx, activityID)
}

// GetActivityByID retrieves an activity visible to the user.
func (s *ActivityService) GetActivityByID(ctx context.Context, activityID, userID string) (*domain.Activity, error) {
	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, activity.WorkdayID, userID); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListByWorkday returns the workday's activities, creation order.
func (s *ActivityService) ListByWorkday(ctx context.Context, workdayID, userID string) ([]domain.Activity, error) {
	if err := s.authorizeRead(ctx, workdayID, userID); err != nil {
		return nil, err
	}
	return s.activityRepo.ListActivitiesByWorkday(ctx, workdayID)
}

// authorizeRead allows the workday owner and the assigned supervisor.
func (s *ActivityService) authorizeRead(ctx context.Context, workdayID, userID string) error {
	workday, err := s.workdayRepo.FindWorkdayByID(ctx, workdayID)
	if err != nil {
		return err
	}
	if workday.UserID != userID && workday.SupervisorID != userID {
		return fmt.Errorf("%w: workday %s is out of reach", apperrors.ErrForbidden, workdayID)
	}
	return nil
}
