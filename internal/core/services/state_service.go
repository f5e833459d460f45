package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
)

// TaskStateService manages the task state lookup table.
type TaskStateService struct {
	stateRepo portsrepo.TaskStateRepository
	audit     portssvc.AuditRecorderSvc
}

// NewTaskStateService creates a new TaskStateService.
func NewTaskStateService(sr portsrepo.TaskStateRepository, audit portssvc.AuditRecorderSvc) portssvc.TaskStateSvcFacade {
	return &TaskStateService{stateRepo: sr, audit: audit}
}

var _ portssvc.TaskStateSvcFacade = (*TaskStateService)(nil)

func (s *TaskStateService) CreateTaskState(ctx context.Context, name string) (*domain.TaskState, error) {
	actorID := actorFromCtx(ctx)
	now := time.Now()
	state := domain.TaskState{
		StateID: uuid.NewString(),
		Name:    name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.stateRepo.SaveTaskState(ctx, state); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionCreateState, fmt.Sprintf("Estado %q creado", name), actorID)
	return &state, nil
}

func (s *TaskStateService) GetTaskStateByID(ctx context.Context, stateID string) (*domain.TaskState, error) {
	return s.stateRepo.FindTaskStateByID(ctx, stateID)
}

func (s *TaskStateService) ListTaskStates(ctx context.Context) ([]domain.TaskState, error) {
	return s.stateRepo.ListTaskStates(ctx)
}

func (s *TaskStateService) UpdateTaskState(ctx context.Context, stateID, name string) (*domain.TaskState, error) {
	actorID := actorFromCtx(ctx)
	if err := s.stateRepo.UpdateTaskState(ctx, stateID, name, actorID); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionUpdateState, fmt.Sprintf("Estado %s renombrado a %q", stateID, name), actorID)
	return s.stateRepo.FindTaskStateByID(ctx, stateID)
}

// DeleteTaskState removes a state once nothing references it.
func (s *TaskStateService) DeleteTaskState(ctx context.Context, stateID string) error {
	count, err := s.stateRepo.CountActivitiesInState(ctx, stateID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d activities still use state %s", apperrors.ErrValidation, count, stateID)
	}

	if err := s.stateRepo.DeleteTaskState(ctx, stateID); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.ActionDeleteState, fmt.Sprintf("Estado %s eliminado", stateID), actorFromCtx(ctx))
	return nil
}
