package handlers

import (
	"time"

	"socialboard/internal/models"
)

// Resources are the client-facing projections of the models. Password hashes
// and raw object names never leave through them.

type UserResource struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorResource struct {
	ID        string  `json:"id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Avatar    *string `json:"avatar"`
}

type ContentResource struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Image     *string   `json:"image"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentResource struct {
	ID        string          `json:"id"`
	PostID    string          `json:"post_id"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	User      *AuthorResource `json:"user"`
}

type LikeResource struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PostResource struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	UserID     string            `json:"user_id"`
	LikesCount int               `json:"likes_count"`
	CreatedAt  time.Time         `json:"created_at"`
	User       *UserResource     `json:"user"`
	Content    *ContentResource  `json:"content"`
	Comments   []CommentResource `json:"comments"`
	Likes      []LikeResource    `json:"likes"`
}

type AuthResource struct {
	Token string       `json:"token"`
	User  UserResource `json:"user"`
}

func newUserResource(user *models.User) UserResource {
	return UserResource{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

func newUserResources(users []models.User) []UserResource {
	resources := make([]UserResource, 0, len(users))
	for i := range users {
		resources = append(resources, newUserResource(&users[i]))
	}
	return resources
}

func (h *Handlers) newContentResource(content *models.Content) ContentResource {
	resource := ContentResource{
		ID:        content.ID,
		PostID:    content.PostID,
		Status:    content.Status,
		CreatedAt: content.CreatedAt,
		UpdatedAt: content.UpdatedAt,
	}

	if content.Image != nil && *content.Image != "" {
		url := h.imageURL(*content.Image)
		resource.Image = &url
	}

	return resource
}

func (h *Handlers) newContentResources(contents []models.Content) []ContentResource {
	resources := make([]ContentResource, 0, len(contents))
	for i := range contents {
		resources = append(resources, h.newContentResource(&contents[i]))
	}
	return resources
}

func newCommentResource(comment *models.Comment) CommentResource {
	resource := CommentResource{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}

	if comment.Author != nil {
		resource.User = &AuthorResource{
			ID:        comment.Author.ID,
			Firstname: comment.Author.Firstname,
			Lastname:  comment.Author.Lastname,
			Avatar:    comment.Author.Avatar,
		}
	}

	return resource
}

func newLikeResource(like *models.Like) LikeResource {
	return LikeResource{
		ID:        like.ID,
		UserID:    like.UserID,
		PostID:    like.PostID,
		CreatedAt: like.CreatedAt,
	}
}

func (h *Handlers) newPostResource(post *models.Post) PostResource {
	resource := PostResource{
		ID:         post.ID,
		Title:      post.Title,
		UserID:     post.UserID,
		LikesCount: post.LikesCount,
		CreatedAt:  post.CreatedAt,
		Comments:   make([]CommentResource, 0, len(post.Comments)),
		Likes:      make([]LikeResource, 0, len(post.Likes)),
	}

	if post.User != nil {
		user := newUserResource(post.User)
		resource.User = &user
	}
	if post.Content != nil {
		content := h.newContentResource(post.Content)
		resource.Content = &content
	}
	for i := range post.Comments {
		resource.Comments = append(resource.Comments, newCommentResource(&post.Comments[i]))
	}
	for i := range post.Likes {
		resource.Likes = append(resource.Likes, newLikeResource(&post.Likes[i]))
	}

	return resource
}

func (h *Handlers) newPostResources(posts []models.Post) []PostResource {
	resources := make([]PostResource, 0, len(posts))
	for i := range posts {
		resources = append(resources, h.newPostResource(&posts[i]))
	}
	return resources
}
