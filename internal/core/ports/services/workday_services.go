package services

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// WorkdayLedgerSvc defines the check-in/check-out/approval state machine.
type WorkdayLedgerSvc interface {
	// Checkin opens a workday for the user on the request's date, creating
	// one activity per planned task plus clones of the selected carried
	// tasks. Fails with apperrors.ErrDuplicate when a workday already
	// exists for that calendar date.
	Checkin(ctx context.Context, req dto.CheckinRequest, userID string) (*domain.Workday, error)

	// Checkout closes the workday. Fails with apperrors.ErrNotFound for an
	// unknown id and apperrors.ErrAlreadyClosed on a second attempt.
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*domain.Workday, error)

	// Approve sets the approval flag. Fails with
	// apperrors.ErrAlreadyApproved when it is already set.
	Approve(ctx context.Context, workdayID string) (*domain.Workday, error)

	// Reject resets the approval flag and appends a synthetic activity
	// recording the reason.
	Reject(ctx context.Context, workdayID, reason string) (*domain.Workday, error)
}

// WorkdayReaderSvc defines the workday query operations.
type WorkdayReaderSvc interface {
	GetUserHistory(ctx context.Context, userID string) ([]domain.Workday, error)
	ListPending(ctx context.Context) ([]domain.Workday, error)
	ListApproved(ctx context.Context) ([]domain.Workday, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.Workday, error)
	GetUserStats(ctx context.Context, userID string, from, to time.Time) (*domain.UserRangeStats, error)
}

// WorkdaySvcFacade combines all workday-related service interfaces.
type WorkdaySvcFacade interface {
	WorkdayLedgerSvc
	WorkdayReaderSvc
}

// CarryForwardSvc determines which unfinished tasks from the user's last
// closed workday can be continued, and clones selected ones into a new one.
type CarryForwardSvc interface {
	// ListPendingCandidates returns the pending activities of the user's
	// most recent checked-out workday. Empty slice, never an error, when
	// there is no such workday or it has no pending activities.
	ListPendingCandidates(ctx context.Context, userID string) ([]domain.Activity, error)

	// MaterializeCarry clones the selected activities into the new workday.
	// Ids that are not pending, or not owned by a closed workday of
	// ownerID, are silently dropped.
	MaterializeCarry(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string) ([]domain.Activity, error)

	// BuildCarryClones is MaterializeCarry without persistence: it returns
	// the clones for the caller to insert, used when the new workday and
	// its activities must land in one transaction.
	BuildCarryClones(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string, now time.Time) ([]domain.Activity, error)
}
