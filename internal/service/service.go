package service

import (
	"context"

	"go.uber.org/zap"

	"socialboard/internal/config"
	"socialboard/internal/repository"
	"socialboard/internal/storage"
)

// Transactor runs fn against repositories that share one store transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error
}

type Service struct {
	User    UserService
	Post    PostService
	Like    LikeService
	Content ContentService
	Comment CommentService
	Auth    AuthService
	Tables  TablesService
}

func NewService(
	rep *repository.Repository,
	cfg *config.Config,
	images storage.Storage,
	revoked storage.RevocationStore,
	health HealthChecker,
	log *zap.Logger,
) *Service {
	return &Service{
		User:    NewUserService(rep.User, log),
		Post:    NewPostService(rep, rep, images, log),
		Like:    NewLikeService(rep, log),
		Content: NewContentService(rep, images, log),
		Comment: NewCommentService(rep, log),
		Auth:    NewAuthService(rep.User, revoked, cfg, log),
		Tables:  NewTablesService(rep.Tables, health),
	}
}
