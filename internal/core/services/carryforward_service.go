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
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// CarryForwardService clones unfinished tasks from a user's last closed
// workday into a new one.
type CarryForwardService struct {
	workdayRepo  portsrepo.WorkdayRepository
	activityRepo portsrepo.ActivityRepository
	stateRepo    portsrepo.TaskStateRepository
}

// NewCarryForwardService creates a new CarryForwardService.
func NewCarryForwardService(wr portsrepo.WorkdayRepository, ar portsrepo.ActivityRepository, sr portsrepo.TaskStateRepository) portssvc.CarryForwardSvc {
	return &CarryForwardService{
		workdayRepo:  wr,
		activityRepo: ar,
		stateRepo:    sr,
	}
}

var _ portssvc.CarryForwardSvc = (*CarryForwardService)(nil)

// ListPendingCandidates returns the pending activities of the user's most
// recent checked-out workday. No closed workday, or none pending, yields an
// empty slice rather than an error.
func (s *CarryForwardService) ListPendingCandidates(ctx context.Context, userID string) ([]domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	last, err := s.workdayRepo.FindLatestClosedWorkday(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.Activity{}, nil
		}
		logger.Error("Failed to find latest closed workday", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to find latest closed workday: %w", err)
	}

	pendingState, err := s.stateRepo.FindTaskStateByName(ctx, domain.StatePending)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pending state: %w", err)
	}

	candidates, err := s.activityRepo.ListActivitiesByWorkdayAndState(ctx, last.WorkdayID, pendingState.StateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending activities: %w", err)
	}
	return candidates, nil
}

// BuildCarryClones resolves the selected activity ids against the user's
// carry candidates and returns clones targeting the new workday, without
// persisting anything. Ids that are not pending candidates of the owner's
// last closed workday are silently dropped.
func (s *CarryForwardService) BuildCarryClones(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string, now time.Time) ([]domain.Activity, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}

	candidates, err := s.ListPendingCandidates(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	eligible := make(map[string]domain.Activity, len(candidates))
	for _, c := range candidates {
		eligible[c.ActivityID] = c
	}

	clones := make([]domain.Activity, 0, len(activityIDs))
	seen := make(map[string]bool, len(activityIDs))
	for _, id := range activityIDs {
		origin, ok := eligible[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		clones = append(clones, cloneForCarry(origin, newWorkdayID, ownerID, now))
	}
	return clones, nil
}

// MaterializeCarry is BuildCarryClones plus persistence, for callers adding
// carried tasks to an already existing workday.
func (s *CarryForwardService) MaterializeCarry(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string) ([]domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	clones, err := s.BuildCarryClones(ctx, newWorkdayID, ownerID, activityIDs, time.Now())
	if err != nil {
		return nil, err
	}
	if len(clones) == 0 {
		return []domain.Activity{}, nil
	}

	if err := s.activityRepo.SaveActivities(ctx, clones); err != nil {
		logger.Error("Failed to save carried activities", slog.String("error", err.Error()), slog.String("workday_id", newWorkdayID))
		return nil, fmt.Errorf("failed to save carried activities: %w", err)
	}

	logger.Info("Carried activities forward",
		slog.Int("count", len(clones)),
		slog.String("workday_id", newWorkdayID),
	)
	return clones, nil
}

// cloneForCarry builds the carried copy of an activity. The clone starts
// over in the origin's (pending) state with the carry marker prepended to
// its observation and a reference back to the origin.
func cloneForCarry(origin domain.Activity, newWorkdayID, ownerID string, now time.Time) domain.Activity {
	observation := domain.CarryMarker
	if origin.Observation != "" {
		observation = domain.CarryMarker + ": " + origin.Observation
	}
	return domain.Activity{
		ActivityID:       uuid.NewString(),
		WorkdayID:        newWorkdayID,
		Task:             origin.Task,
		Goal:             origin.Goal,
		StateID:          origin.StateID,
		Observation:      observation,
		Carried:          true,
		OriginActivityID: origin.ActivityID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
}
