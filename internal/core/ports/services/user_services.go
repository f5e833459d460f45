package services

import (
	"context"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error)
	AssignArea(ctx context.Context, userID, areaID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser verifies email/password credentials, returning
	// apperrors.ErrUnauthenticated when they do not match.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// TokenSvc issues signed access tokens for authenticated users.
type TokenSvc interface {
	IssueToken(user *domain.User) (string, error)
}
