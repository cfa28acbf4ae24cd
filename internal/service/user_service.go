package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"socialboard/internal/models"
	"socialboard/internal/repository"
)

type CreateUserInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

type UpdateUserInput struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Avatar    *string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Find(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, principalID, userID string, input UpdateUserInput) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	user := &models.User{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
	}

	if err := s.userRepo.Create(ctx, user, input.Password); err != nil {
		return nil, emailTaken(err)
	}

	s.log.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *userService) Find(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// Update lets a user change only their own profile.
func (s *userService) Update(ctx context.Context, principalID, userID string, input UpdateUserInput) (*models.User, error) {
	if principalID != userID {
		return nil, models.ErrForbidden
	}

	// get user by id
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Firstname != nil {
		user.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		user.Lastname = *input.Lastname
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	// update user
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, emailTaken(err)
	}

	return user, nil
}

// emailTaken reports a unique email clash as a field error.
func emailTaken(err error) error {
	if errors.Is(err, models.ErrEmailTaken) {
		return models.NewValidationError("email", "the email has already been taken")
	}
	return err
}
