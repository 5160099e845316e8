package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filebox/internal/auth"
	"filebox/internal/model"
	"filebox/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password; the response must not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
)

// LoginResult is the response for a successful login.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	User        model.PublicUser `json:"user"`
}

// AuthService defines the account and credential use cases.
type AuthService interface {
	// Register creates a new account. Fails with ErrUserExists when the email
	// is already registered; no row is written in that case.
	Register(ctx context.Context, email, password, name string) (*model.PublicUser, error)

	// Login checks credentials and returns a signed bearer token plus the
	// public user view. Fails with ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ValidateCredentials performs the same matching as Login but reports a
	// mismatch as an absent result rather than an error.
	ValidateCredentials(ctx context.Context, email, password string) (*model.PublicUser, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*model.PublicUser, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		Email:    email,
		Password: hash,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	view := user.PublicView()
	return &view, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		User:        user.PublicView(),
	}, nil
}

func (s *authService) ValidateCredentials(ctx context.Context, email, password string) (*model.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, nil
	}
	view := user.PublicView()
	return &view, nil
}
