package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"socialboard/internal/models"
	"socialboard/internal/repository"
	"socialboard/internal/storage"
)

type SaveContentInput struct {
	PostID string
	Status string
	Image  *models.ImageUpload
}

type UpdateContentInput struct {
	Status *string
	Image  *models.ImageUpload
}

type ContentService interface {
	Save(ctx context.Context, principalID string, input SaveContentInput) (*models.Content, error)
	Find(ctx context.Context, contentID string) (*models.Content, error)
	List(ctx context.Context) ([]models.Content, error)
	Update(ctx context.Context, principalID, contentID string, input UpdateContentInput) (*models.Content, error)
	Delete(ctx context.Context, principalID, contentID string) error
}

type contentService struct {
	repo    *repository.Repository
	storage storage.Storage
	log     *zap.Logger
}

func NewContentService(repo *repository.Repository, storage storage.Storage, log *zap.Logger) ContentService {
	return &contentService{
		repo:    repo,
		storage: storage,
		log:     log,
	}
}

// Save stores the image first, when one is given, and records its object name on the new row.
func (s *contentService) Save(ctx context.Context, principalID string, input SaveContentInput) (*models.Content, error) {
	post, err := s.repo.Post.GetByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("post_id", "the selected post does not exist")
		}
		return nil, err
	}

	if post.UserID != principalID {
		return nil, models.ErrForbidden
	}

	content := &models.Content{
		PostID: input.PostID,
		Status: input.Status,
	}

	if input.Image != nil {
		objectName, err := s.storage.Upload(ctx, *input.Image)
		if err != nil {
			return nil, fmt.Errorf("store content image: %w", err)
		}
		content.Image = &objectName
	}

	if err := s.repo.Content.Create(ctx, content); err != nil {
		if content.Image != nil {
			s.removeBlob(ctx, *content.Image)
		}
		return nil, err
	}

	return content, nil
}

func (s *contentService) Find(ctx context.Context, contentID string) (*models.Content, error) {
	return s.repo.Content.GetByID(ctx, contentID)
}

func (s *contentService) List(ctx context.Context) ([]models.Content, error) {
	return s.repo.Content.List(ctx)
}

// Update replaces the image when a new one is given; the old blob is dropped after the row is saved.
func (s *contentService) Update(ctx context.Context, principalID, contentID string, input UpdateContentInput) (*models.Content, error) {
	content, err := s.ownedContent(ctx, principalID, contentID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		content.Status = *input.Status
	}

	var previous string
	if input.Image != nil {
		objectName, err := s.storage.Upload(ctx, *input.Image)
		if err != nil {
			return nil, fmt.Errorf("store content image: %w", err)
		}
		if content.Image != nil {
			previous = *content.Image
		}
		content.Image = &objectName
	}

	if err := s.repo.Content.Update(ctx, content); err != nil {
		if input.Image != nil {
			s.removeBlob(ctx, *content.Image)
		}
		return nil, err
	}

	if previous != "" {
		s.removeBlob(ctx, previous)
	}

	return content, nil
}

func (s *contentService) Delete(ctx context.Context, principalID, contentID string) error {
	content, err := s.ownedContent(ctx, principalID, contentID)
	if err != nil {
		return err
	}

	if err := s.repo.Content.Delete(ctx, contentID); err != nil {
		return err
	}

	if content.Image != nil {
		s.removeBlob(ctx, *content.Image)
	}

	return nil
}

func (s *contentService) ownedContent(ctx context.Context, principalID, contentID string) (*models.Content, error) {
	content, err := s.repo.Content.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Post.GetByID(ctx, content.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != principalID {
		return nil, models.ErrForbidden
	}

	return content, nil
}

func (s *contentService) removeBlob(ctx context.Context, objectName string) {
	if err := s.storage.Delete(ctx, objectName); err != nil {
		s.log.Warn("failed to remove image blob",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}
