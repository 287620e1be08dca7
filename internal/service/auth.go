package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
)

// AuthService handles registration, login and token issuing. It is the
// identity resolver the collaboration core depends on: a valid token maps
// to a stable user id plus display name.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiryHours int) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("UserRepository cannot be nil for AuthService")
	}
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty for AuthService")
	}
	if jwtExpiryHours <= 0 {
		jwtExpiryHours = 24
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: time.Duration(jwtExpiryHours) * time.Hour,
	}, nil
}

// Register creates a new user account. The returned user has its password
// hash cleared.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Failed to check username availability")
		return nil, ErrInternalServer
	}
	if existing != nil {
		logCtx.Warn("Registration rejected: username taken")
		return nil, ErrRegistrationFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration rejected: duplicate entry on save")
			return nil, ErrRegistrationFailed
		}
		logCtx.WithError(err).Error("Failed to save new user")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered")
	user.Password = ""
	return user, nil
}

// Login verifies credentials and returns a signed JWT carrying the user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login failed: unknown username")
			return "", ErrAuthenticationFailed
		}
		logCtx.WithError(err).Error("Failed to look up user for login")
		return "", ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logCtx.Warn("Login failed: bad password")
		return "", ErrAuthenticationFailed
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign JWT")
		return "", fmt.Errorf("sign token: %w", err)
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return signed, nil
}
