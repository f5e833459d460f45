package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
)

// RoleService manages the role lookup table.
type RoleService struct {
	roleRepo portsrepo.RoleRepository
	audit    portssvc.AuditRecorderSvc
}

// NewRoleService creates a new RoleService.
func NewRoleService(rr portsrepo.RoleRepository, audit portssvc.AuditRecorderSvc) portssvc.RoleSvcFacade {
	return &RoleService{roleRepo: rr, audit: audit}
}

var _ portssvc.RoleSvcFacade = (*RoleService)(nil)

func (s *RoleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	actorID := actorFromCtx(ctx)
	now := time.Now()
	role := domain.Role{
		RoleID: uuid.NewString(),
		Name:   name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionCreateRole, fmt.Sprintf("Rol %q creado", name), actorID)
	return &role, nil
}

func (s *RoleService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	return s.roleRepo.FindRoleByID(ctx, roleID)
}

func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.ListRoles(ctx)
}

func (s *RoleService) UpdateRole(ctx context.Context, roleID, name string) (*domain.Role, error) {
	actorID := actorFromCtx(ctx)
	if err := s.roleRepo.UpdateRole(ctx, roleID, name, actorID); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionUpdateRole, fmt.Sprintf("Rol %s renombrado a %q", roleID, name), actorID)
	return s.roleRepo.FindRoleByID(ctx, roleID)
}

func (s *RoleService) DeleteRole(ctx context.Context, roleID string) error {
	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.ActionDeleteRole, fmt.Sprintf("Rol %s eliminado", roleID), actorFromCtx(ctx))
	return nil
}
