package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodbite/models"
	"moodbite/storage"
	"moodbite/utils"

	"go.uber.org/zap"
)

const minPasswordLength = 6

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type AuthService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

func NewAuthService(users UserStore, secret string, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, log: log.Named("auth")}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hashed}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrConflict)
		}
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, s.secret, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, err
}

// DeleteAccount removes the user and everything they logged.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.users.DeleteUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return err
}
