package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"socialboard/internal/models"
	"socialboard/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, postID, userID, text string) (*models.Comment, error)
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{repo: repo, log: log}
}

func (s *commentService) Create(ctx context.Context, postID, userID, text string) (*models.Comment, error) {
	clean := sanitize(text)
	if clean == "" {
		return nil, models.NewValidationError("text", "the text field is required")
	}
	if utf8.RuneCountInString(clean) > models.CommentMaxLength {
		return nil, models.NewValidationError("text",
			fmt.Sprintf("the text may not be greater than %d characters", models.CommentMaxLength))
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("user_id", "the selected user does not exist")
		}
		return nil, err
	}

	if _, err := s.repo.Post.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   clean,
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = &models.Author{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Avatar:    user.Avatar,
	}

	s.log.Debug("comment created", zap.String("comment_id", comment.ID), zap.String("post_id", postID))
	return comment, nil
}
