package services

import (
	"context"
	"errors"
	"fmt"

	"userbase/app/dto"
	"userbase/app/models"
	"userbase/app/repo"
	"userbase/app/validate"
)

var ErrEmptyUpdate = errors.New("no fields to update")

type UserService struct {
	users  UserStore
	hasher PasswordHasher
}

func NewUserService(users UserStore, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]dto.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserList(users), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*dto.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUser(u), nil
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error) {
	count, err := s.users.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, repo.ErrDuplicateEmail
	}
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u := &models.User{Name: req.Name, Email: req.Email, PasswordHash: digest, Role: req.Role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.NewUser(u), nil
}

// Update applies a partial update. Passwords are re-hashed before
// storage; a changed email is checked against other records first.
func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.User, error) {
	if req.Empty() {
		return nil, ErrEmptyUpdate
	}

	fields := make(map[string]any, 4)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		other, err := s.users.FindByEmail(ctx, *req.Email)
		switch {
		case err == nil && other.ID != id:
			return nil, repo.ErrDuplicateEmail
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			return nil, err
		}
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		digest, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		fields["password_hash"] = digest
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}

	u, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	return dto.NewUser(u), nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account if the email is not
// taken yet. Safe to call on every start. The email comes from config
// rather than a validated request, so it is normalized here.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = validate.NormalizeEmail(email)
	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return s.users.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: digest, Role: models.RoleAdmin})
}
