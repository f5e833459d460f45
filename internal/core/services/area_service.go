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

// AreaService manages the area lookup table.
type AreaService struct {
	areaRepo portsrepo.AreaRepository
	audit    portssvc.AuditRecorderSvc
}

// NewAreaService creates a new AreaService.
func NewAreaService(ar portsrepo.AreaRepository, audit portssvc.AuditRecorderSvc) portssvc.AreaSvcFacade {
	return &AreaService{areaRepo: ar, audit: audit}
}

var _ portssvc.AreaSvcFacade = (*AreaService)(nil)

func (s *AreaService) CreateArea(ctx context.Context, name string) (*domain.Area, error) {
	actorID := actorFromCtx(ctx)
	now := time.Now()
	area := domain.Area{
		AreaID: uuid.NewString(),
		Name:   name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.areaRepo.SaveArea(ctx, area); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionCreateArea, fmt.Sprintf("Área %q creada", name), actorID)
	return &area, nil
}

func (s *AreaService) GetAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	return s.areaRepo.FindAreaByID(ctx, areaID)
}

func (s *AreaService) ListAreas(ctx context.Context) ([]domain.Area, error) {
	return s.areaRepo.ListAreas(ctx)
}

func (s *AreaService) UpdateArea(ctx context.Context, areaID, name string) (*domain.Area, error) {
	actorID := actorFromCtx(ctx)
	if err := s.areaRepo.UpdateArea(ctx, areaID, name, actorID); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionUpdateArea, fmt.Sprintf("Área %s renombrada a %q", areaID, name), actorID)
	return s.areaRepo.FindAreaByID(ctx, areaID)
}

func (s *AreaService) DeleteArea(ctx context.Context, areaID string) error {
	if err := s.areaRepo.DeleteArea(ctx, areaID); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.ActionDeleteArea, fmt.Sprintf("Área %s eliminada", areaID), actorFromCtx(ctx))
	return nil
}
