package repositories

import (
	"context"
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// WorkdayRepository persists workdays and their composed activity reads.
type WorkdayRepository interface {
	// CreateWorkdayWithActivities inserts the workday row and all of its
	// initial activities (planned plus carried) in a single transaction.
	CreateWorkdayWithActivities(ctx context.Context, workday domain.Workday, activities []domain.Activity) error

	// FindWorkdayByID retrieves a workday without its activities.
	FindWorkdayByID(ctx context.Context, workdayID string) (*domain.Workday, error)

	// FindWorkdayForUserInRange returns the user's workday whose date falls
	// in [from, to), or apperrors.ErrNotFound when none exists. Used by the
	// duplicate check-in guard.
	FindWorkdayForUserInRange(ctx context.Context, userID string, from, to time.Time) (*domain.Workday, error)

	// FindLatestClosedWorkday returns the user's most recent workday with a
	// checkout timestamp, or apperrors.ErrNotFound.
	FindLatestClosedWorkday(ctx context.Context, userID string) (*domain.Workday, error)

	// MarkCheckout sets the checkout timestamp. notes overwrites the stored
	// notes only when non-nil.
	MarkCheckout(ctx context.Context, workdayID string, at time.Time, notes *string, updatedBy string) error

	// SetApproval flips the approval flag.
	SetApproval(ctx context.Context, workdayID string, approved bool, updatedBy string) error

	// RejectWorkday inserts the synthetic rejection activity and resets the
	// approval flag in a single transaction.
	RejectWorkday(ctx context.Context, workdayID string, rejection domain.Activity, updatedBy string) error

	// ListWorkdaysByUser returns the user's workdays with activities,
	// states and comments attached, date descending.
	ListWorkdaysByUser(ctx context.Context, userID string) ([]domain.Workday, error)

	// ListWorkdaysByApproval returns all workdays with the given approval
	// flag, activities attached, date descending.
	ListWorkdaysByApproval(ctx context.Context, approved bool) ([]domain.Workday, error)

	// ListWorkdaysBySupervisor returns workdays assigned to the supervisor,
	// activities and comments attached, date descending.
	ListWorkdaysBySupervisor(ctx context.Context, supervisorID string) ([]domain.Workday, error)
}

// ActivityRepository persists activities.
type ActivityRepository interface {
	// SaveActivity inserts a single activity.
	SaveActivity(ctx context.Context, activity domain.Activity) error

	// SaveActivities inserts activities in one batch.
	SaveActivities(ctx context.Context, activities []domain.Activity) error

	// FindActivityByID retrieves an activity with its state attached.
	FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error)

	// FindActivitiesByIDs retrieves the activities whose ids are known;
	// unknown ids are simply absent from the result.
	FindActivitiesByIDs(ctx context.Context, activityIDs []string) ([]domain.Activity, error)

	// UpdateActivity applies state and/or observation changes; nil means
	// leave unchanged.
	UpdateActivity(ctx context.Context, activityID string, stateID, observation *string, updatedBy string) error

	// ListActivitiesByWorkday returns the workday's activities in creation
	// order, states and comments attached.
	ListActivitiesByWorkday(ctx context.Context, workdayID string) ([]domain.Activity, error)

	// ListActivitiesByWorkdayAndState returns the workday's activities in
	// the given state, creation order.
	ListActivitiesByWorkdayAndState(ctx context.Context, workdayID, stateID string) ([]domain.Activity, error)
}
