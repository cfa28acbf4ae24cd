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

type CreatePostInput struct {
	UserID string
	Title  string
	Image  *models.ImageUpload
}

type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*models.Post, error)
	Find(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, page, limit int) ([]models.Post, error)
	Update(ctx context.Context, principalID, postID string, title *string) (*models.Post, error)
	Delete(ctx context.Context, principalID, postID string) error
}

type postService struct {
	repo    *repository.Repository
	tx      Transactor
	storage storage.Storage
	log     *zap.Logger
}

func NewPostService(repo *repository.Repository, tx Transactor, storage storage.Storage, log *zap.Logger) PostService {
	return &postService{
		repo:    repo,
		tx:      tx,
		storage: storage,
		log:     log,
	}
}

func (p *postService) Create(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	title := sanitize(input.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "the title field is required")
	}

	// the blob goes first so the rows can reference it
	var objectName string
	if input.Image != nil {
		name, err := p.storage.Upload(ctx, *input.Image)
		if err != nil {
			return nil, fmt.Errorf("store post image: %w", err)
		}
		objectName = name
	}

	post := &models.Post{
		UserID: input.UserID,
		Title:  title,
	}

	err := p.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Post.Create(ctx, post); err != nil {
			return err
		}

		if objectName == "" {
			return nil
		}

		content := &models.Content{
			PostID: post.ID,
			Image:  &objectName,
			Status: models.ContentStatusActive,
		}
		if err := tx.Content.Create(ctx, content); err != nil {
			return err
		}
		post.Content = content
		return nil
	})
	if err != nil {
		if objectName != "" {
			p.removeBlob(ctx, objectName)
		}
		return nil, err
	}

	p.log.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("user_id", post.UserID),
		zap.Bool("with_image", objectName != ""),
	)

	if err := p.loadRelations(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) Find(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.loadRelations(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

// List returns every post when limit is not positive, otherwise the requested page (1-based).
func (p *postService) List(ctx context.Context, page, limit int) ([]models.Post, error) {
	offset := 0
	if limit > 0 && page > 1 {
		offset = (page - 1) * limit
	}

	posts, err := p.repo.Post.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}

	if err := p.loadRelations(ctx, refs); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *postService) Update(ctx context.Context, principalID, postID string, title *string) (*models.Post, error) {
	post, err := p.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != principalID {
		return nil, models.ErrForbidden
	}

	if title != nil {
		clean := sanitize(*title)
		if clean == "" {
			return nil, models.NewValidationError("title", "the title field must not be empty")
		}
		post.Title = clean

		if err := p.repo.Post.Update(ctx, post); err != nil {
			return nil, err
		}
	}

	if err := p.loadRelations(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes the post and its content in one transaction. Comments and
// likes go with it through the store's ON DELETE CASCADE rules. The image blob
// is removed only once the rows are gone.
func (p *postService) Delete(ctx context.Context, principalID, postID string) error {
	post, err := p.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != principalID {
		return models.ErrForbidden
	}

	var objectName string
	err = p.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		content, err := tx.Content.GetByPostID(ctx, postID)
		switch {
		case err == nil:
			if content.Image != nil {
				objectName = *content.Image
			}
			if err := tx.Content.DeleteByPostID(ctx, postID); err != nil {
				return err
			}
		case !errors.Is(err, models.ErrNotFound):
			return err
		}

		return tx.Post.Delete(ctx, postID)
	})
	if err != nil {
		return err
	}

	if objectName != "" {
		p.removeBlob(ctx, objectName)
	}

	p.log.Info("post deleted", zap.String("post_id", postID), zap.String("user_id", principalID))
	return nil
}

func (p *postService) removeBlob(ctx context.Context, objectName string) {
	if err := p.storage.Delete(ctx, objectName); err != nil {
		p.log.Warn("failed to remove image blob",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}

// loadRelations fills user, content, comments and likes of every post with one query per relation.
func (p *postService) loadRelations(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, 0, len(posts))
	userIDs := make([]string, 0, len(posts))
	seenUsers := map[string]bool{}
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		if !seenUsers[post.UserID] {
			seenUsers[post.UserID] = true
			userIDs = append(userIDs, post.UserID)
		}
	}

	users, err := p.repo.User.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	contents, err := p.repo.Content.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return err
	}
	comments, err := p.repo.Comment.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return err
	}
	likes, err := p.repo.Like.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return err
	}

	usersByID := make(map[string]*models.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	contentByPost := make(map[string]*models.Content, len(contents))
	for i := range contents {
		contentByPost[contents[i].PostID] = &contents[i]
	}
	commentsByPost := map[string][]models.Comment{}
	for _, comment := range comments {
		commentsByPost[comment.PostID] = append(commentsByPost[comment.PostID], comment)
	}
	likesByPost := map[string][]models.Like{}
	for _, like := range likes {
		likesByPost[like.PostID] = append(likesByPost[like.PostID], like)
	}

	for _, post := range posts {
		post.User = usersByID[post.UserID]
		post.Content = contentByPost[post.ID]

		post.Comments = commentsByPost[post.ID]
		if post.Comments == nil {
			post.Comments = []models.Comment{}
		}
		post.Likes = likesByPost[post.ID]
		if post.Likes == nil {
			post.Likes = []models.Like{}
		}
	}

	return nil
}
