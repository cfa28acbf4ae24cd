package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"socialboard/internal/config"
	"socialboard/internal/models"
	"socialboard/internal/repository"
	"socialboard/internal/storage"
)

// Claims identify the principal behind an access token. The registered ID
// (jti) is what logout revokes.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, input CreateUserInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, claims *Claims) error
	ParseToken(ctx context.Context, tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	revoked  storage.RevocationStore
	cfg      *config.Config
	log      *zap.Logger
	now      func() time.Time
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// missingUserHash is compared against when the email is unknown, so both
// failure paths spend the same bcrypt work.
func missingUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	})
	return dummyHash
}

func NewAuthService(userRepo repository.UserRepository, revoked storage.RevocationStore, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		revoked:  revoked,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, input CreateUserInput) (*models.User, string, error) {
	user := &models.User{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
	}

	if err := s.userRepo.Create(ctx, user, input.Password); err != nil {
		return nil, "", emailTaken(err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, "", err
		}
		_ = bcrypt.CompareHashAndPassword(missingUserHash(), []byte(password))
		return nil, "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	ttl := s.cfg.AccessTokenDuration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}

	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.log.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ParseToken accepts only unexpired HS256 tokens that have not been revoked.
func (s *authService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, models.ErrUnauthenticated
	}

	if claims.ID == "" || claims.UserID == "" {
		return nil, models.ErrUnauthenticated
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, models.ErrUnauthenticated
	}

	return claims, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return tokenString, nil
}
