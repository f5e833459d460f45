package dto

import "github.com/checkin-tracker/tracker_backend/internal/core/domain"

// NamedLookupRequest creates or renames a role, area or task state.
type NamedLookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleResponse is the wire representation of a role.
type RoleResponse struct {
	RoleID string `json:"roleId"`
	Name   string `json:"name"`
}

// ToRoleResponse converts a domain.Role.
func ToRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{RoleID: r.RoleID, Name: r.Name}
}

// AreaResponse is the wire representation of an area.
type AreaResponse struct {
	AreaID string `json:"areaId"`
	Name   string `json:"name"`
}

// ToAreaResponse converts a domain.Area.
func ToAreaResponse(a *domain.Area) AreaResponse {
	return AreaResponse{AreaID: a.AreaID, Name: a.Name}
}

// TaskStateResponse is the wire representation of a task state.
type TaskStateResponse struct {
	StateID string `json:"stateId"`
	Name    string `json:"name"`
}

// ToTaskStateResponse converts a domain.TaskState.
func ToTaskStateResponse(s *domain.TaskState) TaskStateResponse {
	return TaskStateResponse{StateID: s.StateID, Name: s.Name}
}
