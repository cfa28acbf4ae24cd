package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"socialboard/internal/database"
	"socialboard/internal/models"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository can run inside a transaction.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User, password string) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByIDs(ctx context.Context, userIDs []string) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	IncrementLikes(ctx context.Context, postID string) error
	DecrementLikes(ctx context.Context, postID string) error
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, contentID string) (*models.Content, error)
	GetByPostID(ctx context.Context, postID string) (*models.Content, error)
	GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Content, error)
	List(ctx context.Context) ([]models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, contentID string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Find(ctx context.Context, userID, postID string) (*models.Like, error)
	Delete(ctx context.Context, likeID string) error
	GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Like, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

// Repository groups the per-entity repositories bound to one connection or transaction.
type Repository struct {
	db *sqlx.DB

	User    UserRepository
	Post    PostRepository
	Content ContentRepository
	Comment CommentRepository
	Like    LikeRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	repo := newRepository(db)
	repo.db = db
	return repo
}

func newRepository(q DBTX) *Repository {
	return &Repository{
		User:    NewUserRepository(q),
		Post:    NewPostRepository(q),
		Content: NewContentRepository(q),
		Comment: NewCommentRepository(q),
		Like:    NewLikeRepository(q),
		Tables:  NewTablesRepository(q),
	}
}

// WithinTx hands fn a Repository whose members all share one transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(newRepository(tx))
	})
}
