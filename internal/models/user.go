package models

import "database/sql"

// User is the DB representation of a user row.
type User struct {
	UserID       string         `db:"user_id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	RoleID       string         `db:"role_id"`
	AreaID       sql.NullString `db:"area_id"`
	AuditFields
}

// Role is the DB representation of a role row.
type Role struct {
	RoleID string `db:"role_id"`
	Name   string `db:"name"`
	AuditFields
}

// Area is the DB representation of an area row.
type Area struct {
	AreaID string `db:"area_id"`
	Name   string `db:"name"`
	AuditFields
}

// TaskState is the DB representation of a task state row.
type TaskState struct {
	StateID string `db:"state_id"`
	Name    string `db:"name"`
	AuditFields
}
