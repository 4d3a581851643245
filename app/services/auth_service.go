package services

import (
	"context"
	"errors"
	"fmt"

	"userbase/app/dto"
	"userbase/app/models"
	"userbase/app/repo"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password so the response never says which factor failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenIssuer
}

func NewAuthService(users UserStore, hasher PasswordHasher, signer TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, signer: signer}
}

// Register creates an account and mints its first session token.
// The existence pre-check keeps the common case friendly; the unique
// index still decides concurrent registrations, so Create can return
// ErrDuplicateEmail even after the pre-check passed.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.User, string, error) {
	count, err := s.users.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", repo.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	u := &models.User{Name: req.Name, Email: req.Email, PasswordHash: digest, Role: req.Role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(u.Name, u.Email, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return dto.NewUser(u), token, nil
}

// Login verifies credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.User, string, error) {
	u, err := s.users.FindByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	match, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signer.Sign(u.Name, u.Email, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return dto.NewUser(u), token, nil
}

// Me resolves the public projection for an authenticated email.
func (s *AuthService) Me(ctx context.Context, email string) (*dto.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return dto.NewUser(u), nil
}
