package domain

// Well-known role names seeded by the initial migration. Supervisor
// assignment at check-in and report recipients key off these.
const (
	RoleAdmin      = "Administrador"
	RoleSupervisor = "Supervisor"
	RoleManager    = "Gerente"
	RoleEmployee   = "Empleado"
)

// User represents an employee, supervisor or administrator.
type User struct {
	UserID    string `json:"userID"` // Primary key (UUID)
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	RoleID    string `json:"roleID"`
	AreaID    string `json:"areaID,omitempty"`
	AuditFields
}

// FullName returns the display name used in notifications and reports.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role is a named permission level (Administrador, Supervisor, ...).
type Role struct {
	RoleID string `json:"roleID"`
	Name   string `json:"name"`
	AuditFields
}

// Area is an organizational unit a user belongs to.
type Area struct {
	AreaID string `json:"areaID"`
	Name   string `json:"name"`
	AuditFields
}
