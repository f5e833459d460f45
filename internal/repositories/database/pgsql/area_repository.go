package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxAreaRepository struct {
	BaseRepository
}

func newPgxAreaRepository(pool *pgxpool.Pool) portsrepo.AreaRepository {
	return &PgxAreaRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AreaRepository = (*PgxAreaRepository)(nil)

func toDomainArea(m models.Area) domain.Area {
	return domain.Area{
		AreaID: m.AreaID,
		Name:   m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const areaColumns = `area_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanArea(row pgx.Row, m *models.Area) error {
	return row.Scan(&m.AreaID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
}

func (r *PgxAreaRepository) SaveArea(ctx context.Context, area domain.Area) error {
	query := `
		INSERT INTO areas (` + areaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		area.AreaID, area.Name,
		area.CreatedAt, area.CreatedBy, area.LastUpdatedAt, area.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("area %q already exists: %w", area.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save area %s: %w", area.AreaID, err)
	}
	return nil
}

func (r *PgxAreaRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	query := `SELECT ` + areaColumns + ` FROM areas WHERE area_id = $1;`
	var m models.Area
	if err := scanArea(r.Pool.QueryRow(ctx, query, areaID), &m); err != nil {
		return nil, mapNoRows(err, "area", areaID)
	}
	area := toDomainArea(m)
	return &area, nil
}

func (r *PgxAreaRepository) FindAreaByName(ctx context.Context, name string) (*domain.Area, error) {
	query := `SELECT ` + areaColumns + ` FROM areas WHERE name = $1;`
	var m models.Area
	if err := scanArea(r.Pool.QueryRow(ctx, query, name), &m); err != nil {
		return nil, mapNoRows(err, "area", name)
	}
	area := toDomainArea(m)
	return &area, nil
}

func (r *PgxAreaRepository) ListAreas(ctx context.Context) ([]domain.Area, error) {
	query := `SELECT ` + areaColumns + ` FROM areas ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	areas := []domain.Area{}
	for rows.Next() {
		var m models.Area
		if err := scanArea(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan area row: %w", err)
		}
		areas = append(areas, toDomainArea(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating area rows: %w", err)
	}
	return areas, nil
}

func (r *PgxAreaRepository) UpdateArea(ctx context.Context, areaID, name, updatedBy string) error {
	query := `
		UPDATE areas
		SET name = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE area_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, areaID, name, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("area %q already exists: %w", name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update area %s: %w", areaID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("area %s: %w", areaID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAreaRepository) DeleteArea(ctx context.Context, areaID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM areas WHERE area_id = $1;`, areaID)
	if err != nil {
		return fmt.Errorf("failed to delete area %s: %w", areaID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("area %s: %w", areaID, apperrors.ErrNotFound)
	}
	return nil
}
