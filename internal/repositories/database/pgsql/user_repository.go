package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		RoleID:    m.RoleID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.AreaID.Valid {
		u.AreaID = m.AreaID.String
	}
	return u
}

const userColumns = `user_id, first_name, last_name, email, password_hash, role_id, area_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row, m *models.User) error {
	return row.Scan(
		&m.UserID, &m.FirstName, &m.LastName, &m.Email, &m.PasswordHash, &m.RoleID, &m.AreaID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
}

// SaveUser inserts a new user row.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var areaID sql.NullString
	if user.AreaID != "" {
		areaID = sql.NullString{String: user.AreaID, Valid: true}
	}
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.FirstName, user.LastName, user.Email, passwordHash, user.RoleID, areaID,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by its primary key.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	var m models.User
	if err := scanUser(r.Pool.QueryRow(ctx, query, userID), &m); err != nil {
		return nil, mapNoRows(err, "user", userID)
	}
	u := toDomainUser(m)
	return &u, nil
}

// FindUserByEmail retrieves a user and its stored password hash by email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	var m models.User
	if err := scanUser(r.Pool.QueryRow(ctx, query, email), &m); err != nil {
		return nil, "", mapNoRows(err, "user", email)
	}
	u := toDomainUser(m)
	return &u, m.PasswordHash, nil
}

// ListUsers returns all users ordered by name.
func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY first_name, last_name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var m models.User
		if err := scanUser(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields via COALESCE.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, userID string, firstName, lastName, email, passwordHash *string, updatedBy string) error {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    email = COALESCE($4, email),
		    password_hash = COALESCE($5, password_hash),
		    last_updated_at = NOW(),
		    last_updated_by = $6
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, firstName, lastName, email, passwordHash, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already in use: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteUser removes the user row.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// SetUserRole reassigns the user's role.
func (r *PgxUserRepository) SetUserRole(ctx context.Context, userID, roleID, updatedBy string) error {
	query := `
		UPDATE users
		SET role_id = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, roleID, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set role for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// SetUserArea reassigns the user's area.
func (r *PgxUserRepository) SetUserArea(ctx context.Context, userID, areaID, updatedBy string) error {
	query := `
		UPDATE users
		SET area_id = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, areaID, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set area for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// FindFirstUserWithRole returns the first user holding the named role.
func (r *PgxUserRepository) FindFirstUserWithRole(ctx context.Context, roleName string) (*domain.User, error) {
	query := `
		SELECT ` + qualifyUserColumns("u") + `
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE r.name = $1
		ORDER BY u.created_at
		LIMIT 1;
	`
	var m models.User
	if err := scanUser(r.Pool.QueryRow(ctx, query, roleName), &m); err != nil {
		return nil, mapNoRows(err, "user with role", roleName)
	}
	u := toDomainUser(m)
	return &u, nil
}

// ListEmailsByRoles returns the addresses of all users holding any of the
// named roles.
func (r *PgxUserRepository) ListEmailsByRoles(ctx context.Context, roleNames []string) ([]string, error) {
	query := `
		SELECT u.email
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE r.name = ANY($1)
		ORDER BY u.email;
	`
	rows, err := r.Pool.Query(ctx, query, roleNames)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails by role: %w", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan email row: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email rows: %w", err)
	}
	return emails, nil
}

func qualifyUserColumns(alias string) string {
	return alias + `.user_id, ` + alias + `.first_name, ` + alias + `.last_name, ` + alias + `.email, ` +
		alias + `.password_hash, ` + alias + `.role_id, ` + alias + `.area_id, ` +
		alias + `.created_at, ` + alias + `.created_by, ` + alias + `.last_updated_at, ` + alias + `.last_updated_by`
}
