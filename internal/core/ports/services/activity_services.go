package services

import (
	"context"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// ActivitySvcFacade manages activities within a workday. Mutations check
// workday ownership against the acting user; reads allow the owner and the
// assigned supervisor.
type ActivitySvcFacade interface {
	CreateActivity(ctx context.Context, req dto.CreateActivityRequest, userID string) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, activityID string, req dto.UpdateActivityRequest, userID string) (*domain.Activity, error)
	GetActivityByID(ctx context.Context, activityID, userID string) (*domain.Activity, error)
	ListByWorkday(ctx context.Context, workdayID, userID string) ([]domain.Activity, error)
}

// CommentSvcFacade manages comments on activities.
type CommentSvcFacade interface {
	CreateComment(ctx context.Context, activityID, text, authorID string) (*domain.Comment, error)
	ListByActivity(ctx context.Context, activityID string) ([]domain.Comment, error)
	ListByWorkday(ctx context.Context, workdayID string) ([]domain.Comment, error)
}
