package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialboard/internal/config"
	"socialboard/internal/service"
	"socialboard/internal/storage"
)

type Handlers struct {
	UserService    service.UserService
	AuthService    service.AuthService
	PostService    service.PostService
	LikeService    service.LikeService
	ContentService service.ContentService
	CommentService service.CommentService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
	Log            *zap.Logger

	// imageURL turns a stored object name into a client-facing address
	imageURL func(objectName string) string
}

func NewHandlers(services *service.Service, images storage.Storage, config *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		UserService:    services.User,
		AuthService:    services.Auth,
		PostService:    services.Post,
		LikeService:    services.Like,
		ContentService: services.Content,
		CommentService: services.Comment,
		TablesService:  services.Tables,
		Cfg:            config,
		Validate:       newValidator(),
		Log:            log,
		imageURL:       images.URL,
	}
}
