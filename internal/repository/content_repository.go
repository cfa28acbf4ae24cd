package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"socialboard/internal/models"
)

const contentColumns = `id, post_id, image, status, created_at, updated_at`

type contentRepository struct {
	db DBTX
}

func NewContentRepository(db DBTX) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO contents (id, post_id, image, status, created_at, updated_at)
		VALUES (:id, :post_id, :image, :status, :created_at, :updated_at)
	`

	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	if content.Status == "" {
		content.Status = models.ContentStatusActive
	}

	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, content)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("post %s already has content: %w", content.PostID, models.ErrConflict)
		case isForeignKeyViolation(err), isInvalidID(err):
			return fmt.Errorf("post %s: %w", content.PostID, models.ErrNotFound)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, contentID string) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	var content models.Content
	err := r.db.GetContext(ctx, &content, query, contentID)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("content %s: %w", contentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &content, nil
}

func (r *contentRepository) GetByPostID(ctx context.Context, postID string) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE post_id = $1`

	var content models.Content
	err := r.db.GetContext(ctx, &content, query, postID)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("content of post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get content by post: %w", err)
	}

	return &content, nil
}

func (r *contentRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Content, error) {
	if len(postIDs) == 0 {
		return []models.Content{}, nil
	}

	query := `SELECT ` + contentColumns + ` FROM contents WHERE post_id = ANY($1)`

	contents := []models.Content{}
	if err := r.db.SelectContext(ctx, &contents, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get contents: %w", err)
	}

	return contents, nil
}

func (r *contentRepository) List(ctx context.Context) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents ORDER BY created_at DESC`

	contents := []models.Content{}
	if err := r.db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	return contents, nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	query := `
		UPDATE contents SET
			image = :image,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	content.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, content)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("content %s: %w", content.ID, models.ErrNotFound)
		}
		return fmt.Errorf("update content: %w", err)
	}

	return expectAffected(result, "content", content.ID)
}

func (r *contentRepository) Delete(ctx context.Context, contentID string) error {
	query := `DELETE FROM contents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, contentID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("content %s: %w", contentID, models.ErrNotFound)
		}
		return fmt.Errorf("delete content: %w", err)
	}

	return expectAffected(result, "content", contentID)
}

// DeleteByPostID is a no-op for posts without content.
func (r *contentRepository) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM contents WHERE post_id = $1`

	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("delete content of post %s: %w", postID, err)
	}

	return nil
}
