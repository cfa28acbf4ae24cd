package models

import (
	"io"
	"time"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Firstname    string    `json:"firstname" db:"firstname"`
	Lastname     string    `json:"lastname" db:"lastname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Avatar       *string   `json:"avatar" db:"avatar"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Post relations are filled by the service layer; a post without content keeps Content nil.
type Post struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	LikesCount int       `json:"likesCount" db:"likes_count"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	User     *User     `json:"user,omitempty" db:"-"`
	Content  *Content  `json:"content,omitempty" db:"-"`
	Comments []Comment `json:"comments" db:"-"`
	Likes    []Like    `json:"likes" db:"-"`
}

type Content struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	Image     *string   `json:"image" db:"image"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *Author `json:"user,omitempty" db:"-"`
}

// Author is the public projection of a comment's user.
type Author struct {
	ID        string  `json:"id" db:"author_id"`
	Firstname string  `json:"firstname" db:"author_firstname"`
	Lastname  string  `json:"lastname" db:"author_lastname"`
	Avatar    *string `json:"avatar" db:"author_avatar"`
}

type Like struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ImageUpload is a binary payload headed for the blob store.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

const (
	ContentStatusActive = "active"
	CommentMaxLength    = 1000
)
