package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"socialboard/internal/models"
	"socialboard/internal/repository"
)

// memStore is a stateful stand-in for the database, used by scenario tests
// that need reads to observe earlier writes. Deleting a post drops its
// content, comments and likes like the schema's ON DELETE CASCADE rules.
type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]models.User
	posts    map[string]models.Post
	contents map[string]models.Content
	comments map[string]models.Comment
	likes    map[string]models.Like
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		posts:    map[string]models.Post{},
		contents: map[string]models.Content{},
		comments: map[string]models.Comment{},
		likes:    map[string]models.Like{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:    memUsers{s},
		Post:    memPosts{s},
		Content: memContents{s},
		Comment: memComments{s},
		Like:    memLikes{s},
	}
}

func (s *memStore) likeRows(postID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, like := range s.likes {
		if like.PostID == postID {
			n++
		}
	}
	return n
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user *models.User, password string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.ErrEmailTaken
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.ID = r.s.nextID("user")
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByIDs(_ context.Context, userIDs []string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := []models.User{}
	for _, id := range userIDs {
		if u, ok := r.s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := []models.User{}
	for _, u := range r.s.users {
		users = append(users, u)
	}
	return users, nil
}

func (r memUsers) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

type memPosts struct{ s *memStore }

func (r memPosts) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.UserID]; !ok {
		return models.ErrNotFound
	}
	post.ID = r.s.nextID("post")
	post.LikesCount = 0
	post.CreatedAt = time.Now()
	r.s.posts[post.ID] = *post
	return nil
}

func (r memPosts) GetByID(_ context.Context, postID string) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r memPosts) List(_ context.Context, _, _ int) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	posts := []models.Post{}
	for _, p := range r.s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r memPosts) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Title = post.Title
	r.s.posts[post.ID] = stored
	return nil
}

func (r memPosts) Delete(_ context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.posts, postID)
	for id, c := range r.s.contents {
		if c.PostID == postID {
			delete(r.s.contents, id)
		}
	}
	for id, c := range r.s.comments {
		if c.PostID == postID {
			delete(r.s.comments, id)
		}
	}
	for id, l := range r.s.likes {
		if l.PostID == postID {
			delete(r.s.likes, id)
		}
	}
	return nil
}

func (r memPosts) IncrementLikes(_ context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return models.ErrNotFound
	}
	p.LikesCount++
	r.s.posts[postID] = p
	return nil
}

func (r memPosts) DecrementLikes(_ context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok || p.LikesCount == 0 {
		return models.ErrIntegrity
	}
	p.LikesCount--
	r.s.posts[postID] = p
	return nil
}

type memContents struct{ s *memStore }

func (r memContents) Create(_ context.Context, content *models.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.contents {
		if c.PostID == content.PostID {
			return models.ErrConflict
		}
	}
	content.ID = r.s.nextID("content")
	r.s.contents[content.ID] = *content
	return nil
}

func (r memContents) GetByID(_ context.Context, contentID string) (*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.contents[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (r memContents) GetByPostID(_ context.Context, postID string) (*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.contents {
		if c.PostID == postID {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memContents) GetByPostIDs(_ context.Context, postIDs []string) ([]models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contents := []models.Content{}
	for _, c := range r.s.contents {
		for _, id := range postIDs {
			if c.PostID == id {
				contents = append(contents, c)
			}
		}
	}
	return contents, nil
}

func (r memContents) List(_ context.Context) ([]models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contents := []models.Content{}
	for _, c := range r.s.contents {
		contents = append(contents, c)
	}
	return contents, nil
}

func (r memContents) Update(_ context.Context, content *models.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.contents[content.ID] = *content
	return nil
}

func (r memContents) Delete(_ context.Context, contentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contents[contentID]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.contents, contentID)
	return nil
}

func (r memContents) DeleteByPostID(_ context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.contents {
		if c.PostID == postID {
			delete(r.s.contents, id)
		}
	}
	return nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return models.ErrNotFound
	}
	comment.ID = r.s.nextID("comment")
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r memComments) GetByPostIDs(_ context.Context, postIDs []string) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := []models.Comment{}
	for _, c := range r.s.comments {
		for _, id := range postIDs {
			if c.PostID == id {
				comments = append(comments, c)
			}
		}
	}
	return comments, nil
}

type memLikes struct{ s *memStore }

func (r memLikes) Create(_ context.Context, like *models.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return models.ErrAlreadyLiked
		}
	}
	like.ID = r.s.nextID("like")
	r.s.likes[like.ID] = *like
	return nil
}

func (r memLikes) Find(_ context.Context, userID, postID string) (*models.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.likes {
		if l.UserID == userID && l.PostID == postID {
			return &l, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memLikes) Delete(_ context.Context, likeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.likes[likeID]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.likes, likeID)
	return nil
}

func (r memLikes) GetByPostIDs(_ context.Context, postIDs []string) ([]models.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	likes := []models.Like{}
	for _, l := range r.s.likes {
		for _, id := range postIDs {
			if l.PostID == id {
				likes = append(likes, l)
			}
		}
	}
	return likes, nil
}
