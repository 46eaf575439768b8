package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shippingerp/models"
	"shippingerp/repository"
	"shippingerp/utils"
)

type UserService struct {
	Repo   repository.UserRepository
	Tokens *utils.TokenIssuer
	Log    *zap.Logger
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup registers a regular user.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.AppUser, error) {
	return s.CreateUser(ctx, in, models.RoleUser)
}

// CreateUser registers a user with an explicit role.
func (s *UserService) CreateUser(ctx context.Context, in SignupInput, role string) (*models.AppUser, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.Username == "" || in.Email == "" || in.Password == "":
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	case len(in.Username) > 20:
		return nil, fmt.Errorf("%w: username must be at most 20 characters", ErrValidation)
	case !models.ValidRole(role):
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	existing, err := s.Repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.AppUser{
		Username:     in.Username,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrValidation)
		}
		return nil, err
	}

	s.Log.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", role))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	tok, err := s.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: tok, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to the stored user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.AppUser, error) {
	id, err := s.Tokens.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	return user, nil
}
