package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
	"github.com/checkin-tracker/tracker_backend/internal/models"
)

type PgxCommentRepository struct {
	BaseRepository
}

// newPgxCommentRepository creates a new repository for comment data.
func newPgxCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepository {
	return &PgxCommentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CommentRepository = (*PgxCommentRepository)(nil)

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:   m.CommentID,
		ActivityID:  m.ActivityID,
		AuthorID:    m.AuthorID,
		Text:        m.Text,
		CommentedAt: m.CommentedAt,
	}
}

// SaveComment inserts one comment.
func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, activity_id, author_id, comment_text, commented_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		comment.CommentID,
		comment.ActivityID,
		comment.AuthorID,
		comment.Text,
		comment.CommentedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment %s: %w", comment.CommentID, err)
	}
	return nil
}

const commentSelectQuery = `
	SELECT c.comment_id, c.activity_id, c.author_id, c.comment_text, c.commented_at,
	       u.first_name, u.last_name
	FROM comments c
	JOIN users u ON u.user_id = c.author_id
`

// ListCommentsByActivity returns the activity's comments, newest first.
func (r *PgxCommentRepository) ListCommentsByActivity(ctx context.Context, activityID string) ([]domain.Comment, error) {
	query := commentSelectQuery + `
		WHERE c.activity_id = $1
		ORDER BY c.commented_at DESC;
	`
	return r.queryComments(ctx, query, activityID)
}

// ListCommentsByWorkday returns comments across all of the workday's
// activities, newest first.
func (r *PgxCommentRepository) ListCommentsByWorkday(ctx context.Context, workdayID string) ([]domain.Comment, error) {
	query := commentSelectQuery + `
		JOIN activities a ON a.activity_id = c.activity_id
		WHERE a.workday_id = $1
		ORDER BY c.commented_at DESC;
	`
	return r.queryComments(ctx, query, workdayID)
}

func (r *PgxCommentRepository) queryComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var m models.Comment
		var firstName, lastName string
		if err := rows.Scan(&m.CommentID, &m.ActivityID, &m.AuthorID, &m.Text, &m.CommentedAt, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		c := toDomainComment(m)
		c.AuthorName = firstName + " " + lastName
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}
