package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"socialboard/internal/models"
)

const commentWithAuthorQuery = `
	SELECT c.id, c.post_id, c.user_id, c.text, c.created_at,
		u.id AS author_id, u.firstname AS author_firstname,
		u.lastname AS author_lastname, u.avatar AS author_avatar
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

type commentRepository struct {
	db DBTX
}

// commentRow is a comment joined with its author's public fields.
type commentRow struct {
	models.Comment
	models.Author
}

func (row commentRow) toModel() models.Comment {
	comment := row.Comment
	author := row.Author
	comment.Author = &author
	return comment
}

func NewCommentRepository(db DBTX) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, text, created_at)
		VALUES (:id, :post_id, :user_id, :text, :created_at)
	`

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidID(err) {
			return fmt.Errorf("post %s or user %s: %w", comment.PostID, comment.UserID, models.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByPostIDs returns the comments of every listed post, oldest first.
func (r *commentRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return []models.Comment{}, nil
	}

	query := commentWithAuthorQuery + ` WHERE c.post_id = ANY($1) ORDER BY c.created_at, c.id`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toModel())
	}

	return comments, nil
}
