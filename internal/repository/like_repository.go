package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"socialboard/internal/models"
)

const likeColumns = `id, user_id, post_id, created_at`

type likeRepository struct {
	db DBTX
}

func NewLikeRepository(db DBTX) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (id, user_id, post_id, created_at)
		VALUES (:id, :user_id, :post_id, :created_at)
	`

	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	like.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, like)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return models.ErrAlreadyLiked
		case isForeignKeyViolation(err), isInvalidID(err):
			return fmt.Errorf("post %s or user %s: %w", like.PostID, like.UserID, models.ErrNotFound)
		}
		return fmt.Errorf("create like: %w", err)
	}

	return nil
}

func (r *likeRepository) Find(ctx context.Context, userID, postID string) (*models.Like, error) {
	query := `SELECT ` + likeColumns + ` FROM likes WHERE user_id = $1 AND post_id = $2`

	var like models.Like
	err := r.db.GetContext(ctx, &like, query, userID, postID)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("like of post %s by user %s: %w", postID, userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("find like: %w", err)
	}

	return &like, nil
}

func (r *likeRepository) Delete(ctx context.Context, likeID string) error {
	query := `DELETE FROM likes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, likeID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("like %s: %w", likeID, models.ErrNotFound)
		}
		return fmt.Errorf("delete like: %w", err)
	}

	return expectAffected(result, "like", likeID)
}

func (r *likeRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Like, error) {
	if len(postIDs) == 0 {
		return []models.Like{}, nil
	}

	query := `SELECT ` + likeColumns + ` FROM likes WHERE post_id = ANY($1) ORDER BY created_at, id`

	likes := []models.Like{}
	if err := r.db.SelectContext(ctx, &likes, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get likes: %w", err)
	}

	return likes, nil
}
