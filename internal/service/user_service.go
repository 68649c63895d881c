package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/todolist/internal/auth"
	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// SignUpInput carries the fields of a new account.
type SignUpInput struct {
	LastName  string
	FirstName string
	Email     string
	Password  string
}

// SignInResult is returned on a successful sign-in.
type SignInResult struct {
	User  *models.User
	Token string
}

// UserService handles account creation, sign-in and user lookup.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *UserService {
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// SignUp creates a new user account. Field validation is the caller's job;
// the authenticator rechecks the password length before hashing.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	s.logger.Info("SignUp request", "email", in.Email)

	user, err := s.authenticator.Register(ctx, in.LastName, in.FirstName, in.Email, in.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", in.Email, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// SignIn checks the credentials and issues a token.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	s.logger.Info("SignIn request", "email", email)

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("SignIn failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User signed in successfully", "user_id", user.ID, "email", user.Email)
	return &SignInResult{User: user, Token: token}, nil
}

// FindByEmail returns every account registered with email.
func (s *UserService) FindByEmail(ctx context.Context, email string) ([]*models.User, error) {
	users, err := s.users.ListUsersByEmail(ctx, email)
	if err != nil {
		s.logger.Error("FindByEmail failed", "email", email, "error", err)
		return nil, fmt.Errorf("find users by email: %w", err)
	}
	return users, nil
}
