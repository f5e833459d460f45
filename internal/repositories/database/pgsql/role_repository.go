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

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(pool *pgxpool.Pool) portsrepo.RoleRepository {
	return &PgxRoleRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RoleRepository = (*PgxRoleRepository)(nil)

func toDomainRole(m models.Role) domain.Role {
	return domain.Role{
		RoleID: m.RoleID,
		Name:   m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const roleColumns = `role_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanRole(row pgx.Row, m *models.Role) error {
	return row.Scan(&m.RoleID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `
		INSERT INTO roles (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		role.RoleID, role.Name,
		role.CreatedAt, role.CreatedBy, role.LastUpdatedAt, role.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("role %q already exists: %w", role.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save role %s: %w", role.RoleID, err)
	}
	return nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE role_id = $1;`
	var m models.Role
	if err := scanRole(r.Pool.QueryRow(ctx, query, roleID), &m); err != nil {
		return nil, mapNoRows(err, "role", roleID)
	}
	role := toDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1;`
	var m models.Role
	if err := scanRole(r.Pool.QueryRow(ctx, query, name), &m); err != nil {
		return nil, mapNoRows(err, "role", name)
	}
	role := toDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var m models.Role
		if err := scanRole(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, toDomainRole(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}
	return roles, nil
}

func (r *PgxRoleRepository) UpdateRole(ctx context.Context, roleID, name, updatedBy string) error {
	query := `
		UPDATE roles
		SET name = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE role_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, roleID, name, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("role %q already exists: %w", name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update role %s: %w", roleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", roleID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM roles WHERE role_id = $1;`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", roleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", roleID, apperrors.ErrNotFound)
	}
	return nil
}
