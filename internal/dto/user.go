package dto

import (
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// CreateUserRequest registers a new user.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	RoleID    string `json:"roleId" binding:"required"`
	AreaID    string `json:"areaId"`
}

// UpdateUserRequest updates a user. Pointers distinguish omitted fields
// from zero-value fields.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

// AssignRoleRequest reassigns a user's role.
type AssignRoleRequest struct {
	RoleID string `json:"roleId" binding:"required"`
}

// AssignAreaRequest reassigns a user's area.
type AssignAreaRequest struct {
	AreaID string `json:"areaId" binding:"required"`
}

// UserResponse is the wire representation of a user.
type UserResponse struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	RoleID    string `json:"roleId"`
	AreaID    string `json:"areaId,omitempty"`
}

// ToUserResponse converts a domain.User to its wire representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		RoleID:    u.RoleID,
		AreaID:    u.AreaID,
	}
}

// ToUserListResponse converts a slice of users.
func ToUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(&u)
	}
	return out
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and the authenticated user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}
