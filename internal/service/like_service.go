package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"socialboard/internal/models"
	"socialboard/internal/repository"
)

type LikeService interface {
	LikePost(ctx context.Context, userID, postID string) (*models.Like, error)
	UnlikePost(ctx context.Context, userID, postID string) (bool, error)
}

// likeService keeps likes and posts.likes_count in step: the like row and the
// counter change are written in the same transaction or not at all.
type likeService struct {
	tx  Transactor
	log *zap.Logger
}

func NewLikeService(tx Transactor, log *zap.Logger) LikeService {
	return &likeService{tx: tx, log: log}
}

func (s *likeService) LikePost(ctx context.Context, userID, postID string) (*models.Like, error) {
	like := &models.Like{UserID: userID, PostID: postID}

	err := s.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Post.GetByID(ctx, postID); err != nil {
			return err
		}

		_, err := tx.Like.Find(ctx, userID, postID)
		if err == nil {
			return models.ErrAlreadyLiked
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		// a concurrent like of the same pair fails here on the unique constraint
		if err := tx.Like.Create(ctx, like); err != nil {
			return err
		}

		return tx.Post.IncrementLikes(ctx, postID)
	})
	if err != nil {
		if !errors.Is(err, models.ErrAlreadyLiked) && !errors.Is(err, models.ErrNotFound) {
			s.log.Error("like post failed",
				zap.String("post_id", postID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.log.Debug("post liked", zap.String("post_id", postID), zap.String("user_id", userID))
	return like, nil
}

// UnlikePost reports false when the user had not liked the post.
func (s *likeService) UnlikePost(ctx context.Context, userID, postID string) (bool, error) {
	removed := false

	err := s.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		like, err := tx.Like.Find(ctx, userID, postID)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Like.Delete(ctx, like.ID); err != nil {
			return err
		}

		if err := tx.Post.DecrementLikes(ctx, postID); err != nil {
			return err
		}

		removed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrIntegrity) {
			s.log.Error("likes counter out of step with like rows",
				zap.String("post_id", postID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return false, err
	}

	if removed {
		s.log.Debug("post unliked", zap.String("post_id", postID), zap.String("user_id", userID))
	}
	return removed, nil
}
