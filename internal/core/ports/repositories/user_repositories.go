package repositories

import (
	"context"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// UserRepository persists users.
type UserRepository interface {
	// SaveUser inserts a new user with the given password hash.
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error

	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email along with the stored
	// password hash, for authentication.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser applies the non-nil fields; passwordHash replaces the
	// stored hash when non-nil.
	UpdateUser(ctx context.Context, userID string, firstName, lastName, email, passwordHash *string, updatedBy string) error

	// DeleteUser removes the user row.
	DeleteUser(ctx context.Context, userID string) error

	// SetUserRole reassigns the user's role.
	SetUserRole(ctx context.Context, userID, roleID, updatedBy string) error

	// SetUserArea reassigns the user's area.
	SetUserArea(ctx context.Context, userID, areaID, updatedBy string) error

	// FindFirstUserWithRole returns the first user holding the named role,
	// or apperrors.ErrNotFound. Used to auto-assign a supervisor.
	FindFirstUserWithRole(ctx context.Context, roleName string) (*domain.User, error)

	// ListEmailsByRoles returns the email addresses of all users holding
	// any of the named roles.
	ListEmailsByRoles(ctx context.Context, roleNames []string) ([]string, error)
}

// RoleRepository persists roles.
type RoleRepository interface {
	SaveRole(ctx context.Context, role domain.Role) error
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	UpdateRole(ctx context.Context, roleID, name, updatedBy string) error
	DeleteRole(ctx context.Context, roleID string) error
}

// AreaRepository persists areas.
type AreaRepository interface {
	SaveArea(ctx context.Context, area domain.Area) error
	FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error)
	FindAreaByName(ctx context.Context, name string) (*domain.Area, error)
	ListAreas(ctx context.Context) ([]domain.Area, error)
	UpdateArea(ctx context.Context, areaID, name, updatedBy string) error
	DeleteArea(ctx context.Context, areaID string) error
}

// TaskStateRepository persists task states.
type TaskStateRepository interface {
	SaveTaskState(ctx context.Context, state domain.TaskState) error
	FindTaskStateByID(ctx context.Context, stateID string) (*domain.TaskState, error)
	FindTaskStateByName(ctx context.Context, name string) (*domain.TaskState, error)
	ListTaskStates(ctx context.Context) ([]domain.TaskState, error)
	UpdateTaskState(ctx context.Context, stateID, name, updatedBy string) error
	DeleteTaskState(ctx context.Context, stateID string) error

	// CountActivitiesInState reports how many activities reference the
	// state; deletion is blocked while non-zero.
	CountActivitiesInState(ctx context.Context, stateID string) (int64, error)
}
