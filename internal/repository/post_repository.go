package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"socialboard/internal/models"
)

const postColumns = `id, user_id, title, likes_count, created_at, updated_at`

type postRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, likes_count, created_at, updated_at)
		VALUES (:id, :user_id, :title, :likes_count, :created_at, :updated_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.LikesCount = 0
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("author %s: %w", post.UserID, models.ErrNotFound)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// List returns posts newest first. A non-positive limit returns every post.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id`
	args := []interface{}{}

	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			updated_at = :updated_at
		WHERE id = :id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("post %s: %w", post.ID, models.ErrNotFound)
		}
		return fmt.Errorf("update post: %w", err)
	}

	return expectAffected(result, "post", post.ID)
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return fmt.Errorf("delete post: %w", err)
	}

	return expectAffected(result, "post", postID)
}

func (r *postRepository) IncrementLikes(ctx context.Context, postID string) error {
	query := `UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return fmt.Errorf("increment likes: %w", err)
	}

	return expectAffected(result, "post", postID)
}

// DecrementLikes never drives the counter below zero. A post whose counter is
// already zero yields ErrIntegrity, since a like row existed for it.
func (r *postRepository) DecrementLikes(ctx context.Context, postID string) error {
	query := `UPDATE posts SET likes_count = likes_count - 1 WHERE id = $1 AND likes_count > 0`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return fmt.Errorf("decrement likes: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("likes counter of post %s is already zero: %w", postID, models.ErrIntegrity)
	}

	return nil
}
