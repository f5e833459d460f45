package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// CommentService manages activity comments.
type CommentService struct {
	commentRepo  portsrepo.CommentRepository
	activityRepo portsrepo.ActivityRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(cr portsrepo.CommentRepository, ar portsrepo.ActivityRepository) portssvc.CommentSvcFacade {
	return &CommentService{
		commentRepo:  cr,
		activityRepo: ar,
	}
}

var _ portssvc.CommentSvcFacade = (*CommentService)(nil)

// CreateComment appends a comment to an activity.
func (s *CommentService) CreateComment(ctx context.Context, activityID, text, authorID string) (*domain.Comment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.activityRepo.FindActivityByID(ctx, activityID); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		CommentID:   uuid.NewString(),
		ActivityID:  activityID,
		AuthorID:    authorID,
		Text:        text,
		CommentedAt: time.Now(),
	}
	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		logger.Error("Failed to save comment", slog.String("error", err.Error()), slog.String("activity_id", activityID))
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	logger.Info("Comment created", slog.String("comment_id", comment.CommentID), slog.String("activity_id", activityID))
	return &comment, nil
}

// ListByActivity returns the activity's comments, newest first.
func (s *CommentService) ListByActivity(ctx context.Context, activityID string) ([]domain.Comment, error) {
	return s.commentRepo.ListCommentsByActivity(ctx, activityID)
}

// ListByWorkday returns the comments across all of the workday's
// activities, newest first.
func (s *CommentService) ListByWorkday(ctx context.Context, workdayID string) ([]domain.Comment, error) {
	return s.commentRepo.ListCommentsByWorkday(ctx, workdayID)
}
