package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// UserService handles user management and authentication.
type UserService struct {
	userRepo portsrepo.UserRepository
	roleRepo portsrepo.RoleRepository
	areaRepo portsrepo.AreaRepository
	audit    portssvc.AuditRecorderSvc
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepository, rr portsrepo.RoleRepository, ar portsrepo.AreaRepository, audit portssvc.AuditRecorderSvc) portssvc.UserSvcFacade {
	return &UserService{
		userRepo: ur,
		roleRepo: rr,
		areaRepo: ar,
		audit:    audit,
	}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.roleRepo.FindRoleByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: role %s not found", apperrors.ErrValidation, req.RoleID)
		}
		return nil, fmt.Errorf("failed to validate role: %w", err)
	}
	if req.AreaID != "" {
		if _, err := s.areaRepo.FindAreaByID(ctx, req.AreaID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: area %s not found", apperrors.ErrValidation, req.AreaID)
			}
			return nil, fmt.Errorf("failed to validate area: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	actorID := actorFromCtx(ctx)
	now := time.Now()
	user := domain.User{
		UserID:    uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		RoleID:    req.RoleID,
		AreaID:    req.AreaID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user, string(hashed)); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.audit.Record(ctx, domain.ActionCreateUser,
		fmt.Sprintf("Usuario %s creado", user.Email),
		actorID)

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// UpdateUser applies the non-nil fields of the request.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var passwordHash *string
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	actorID := actorFromCtx(ctx)
	if err := s.userRepo.UpdateUser(ctx, userID, req.FirstName, req.LastName, req.Email, passwordHash, actorID); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.ActionUpdateUser,
		fmt.Sprintf("Usuario %s actualizado", userID),
		actorID)

	return s.userRepo.FindUserByID(ctx, userID)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.ActionDeleteUser,
		fmt.Sprintf("Usuario %s eliminado", userID),
		actorFromCtx(ctx))
	return nil
}

// AssignRole reassigns the user's role.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: role %s not found", apperrors.ErrValidation, roleID)
		}
		return nil, fmt.Errorf("failed to validate role: %w", err)
	}

	actorID := actorFromCtx(ctx)
	if err := s.userRepo.SetUserRole(ctx, userID, roleID, actorID); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.ActionAssignRole,
		fmt.Sprintf("Rol %s asignado al usuario %s", role.Name, userID),
		actorID)

	return s.userRepo.FindUserByID(ctx, userID)
}

// AssignArea reassigns the user's area.
func (s *UserService) AssignArea(ctx context.Context, userID, areaID string) (*domain.User, error) {
	area, err := s.areaRepo.FindAreaByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: area %s not found", apperrors.ErrValidation, areaID)
		}
		return nil, fmt.Errorf("failed to validate area: %w", err)
	}

	actorID := actorFromCtx(ctx)
	if err := s.userRepo.SetUserArea(ctx, userID, areaID, actorID); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.ActionAssignArea,
		fmt.Sprintf("Área %s asignada al usuario %s", area.Name, userID),
		actorID)

	return s.userRepo.FindUserByID(ctx, userID)
}

// AuthenticateUser verifies email/password credentials. Both an unknown
// email and a wrong password surface as ErrUnauthenticated so the response
// does not leak which accounts exist.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, hash, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthenticated)
		}
		logger.Error("Failed to look up user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthenticated)
	}

	s.audit.Record(ctx, domain.ActionLogin,
		fmt.Sprintf("Inicio de sesión de %s", user.Email),
		user.UserID)

	logger.Info("User authenticated", slog.String("user_id", user.UserID))
	return user, nil
}
