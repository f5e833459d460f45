package services

import (
	"context"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// RoleSvcFacade manages the role lookup table.
type RoleSvcFacade interface {
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	UpdateRole(ctx context.Context, roleID, name string) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID string) error
}

// AreaSvcFacade manages the area lookup table.
type AreaSvcFacade interface {
	CreateArea(ctx context.Context, name string) (*domain.Area, error)
	GetAreaByID(ctx context.Context, areaID string) (*domain.Area, error)
	ListAreas(ctx context.Context) ([]domain.Area, error)
	UpdateArea(ctx context.Context, areaID, name string) (*domain.Area, error)
	DeleteArea(ctx context.Context, areaID string) error
}

// TaskStateSvcFacade manages the task state lookup table.
type TaskStateSvcFacade interface {
	CreateTaskState(ctx context.Context, name string) (*domain.TaskState, error)
	GetTaskStateByID(ctx context.Context, stateID string) (*domain.TaskState, error)
	ListTaskStates(ctx context.Context) ([]domain.TaskState, error)
	UpdateTaskState(ctx context.Context, stateID, name string) (*domain.TaskState, error)
	// DeleteTaskState fails with apperrors.ErrValidation while activities
	// still reference the state.
	DeleteTaskState(ctx context.Context, stateID string) error
}
