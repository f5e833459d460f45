package dto

import (
	"time"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
)

// CreateActivityRequest adds an activity to an open workday.
type CreateActivityRequest struct {
	WorkdayID   string `json:"workdayId" binding:"required"`
	Task        string `json:"task" binding:"required"`
	Goal        string `json:"goal" binding:"required"`
	StateID     string `json:"stateId"`
	Observation string `json:"observation"`
}

// UpdateActivityRequest changes an activity's state and/or observation.
// Pointers distinguish omitted fields from zero values.
type UpdateActivityRequest struct {
	StateID     *string `json:"stateId"`
	Observation *string `json:"observation"`
}

// ActivityResponse is the wire representation of an activity.
type ActivityResponse struct {
	ActivityID       string            `json:"activityId"`
	WorkdayID        string            `json:"workdayId"`
	Task             string            `json:"task"`
	Goal             string            `json:"goal"`
	StateID          string            `json:"stateId"`
	StateName        string            `json:"stateName,omitempty"`
	Observation      string            `json:"observation,omitempty"`
	Carried          bool              `json:"carried"`
	OriginActivityID string            `json:"originActivityId,omitempty"`
	Comments         []CommentResponse `json:"comments,omitempty"`
}

// ToActivityResponse converts a domain.Activity to its wire representation.
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	resp := ActivityResponse{
		ActivityID:       a.ActivityID,
		WorkdayID:        a.WorkdayID,
		Task:             a.Task,
		Goal:             a.Goal,
		StateID:          a.StateID,
		Observation:      a.Observation,
		Carried:          a.Carried,
		OriginActivityID: a.OriginActivityID,
	}
	if a.State != nil {
		resp.StateName = a.State.Name
	}
	if len(a.Comments) > 0 {
		resp.Comments = make([]CommentResponse, len(a.Comments))
		for i, c := range a.Comments {
			resp.Comments[i] = ToCommentResponse(&c)
		}
	}
	return resp
}

// ToActivityListResponse converts a slice of activities.
func ToActivityListResponse(activities []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = ToActivityResponse(&a)
	}
	return out
}

// CreateCommentRequest adds a comment to an activity.
type CreateCommentRequest struct {
	ActivityID string `json:"activityId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// CommentResponse is the wire representation of a comment.
type CommentResponse struct {
	CommentID   string    `json:"commentId"`
	ActivityID  string    `json:"activityId"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName,omitempty"`
	Text        string    `json:"text"`
	CommentedAt time.Time `json:"commentedAt"`
}

// ToCommentResponse converts a domain.Comment to its wire representation.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:   c.CommentID,
		ActivityID:  c.ActivityID,
		AuthorID:    c.AuthorID,
		AuthorName:  c.AuthorName,
		Text:        c.Text,
		CommentedAt: c.CommentedAt,
	}
}

// ToCommentListResponse converts a slice of comments.
func ToCommentListResponse(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = ToCommentResponse(&c)
	}
	return out
}
