package services

import (
	"context"

	"userbase/app/models"
)

// UserStore is the credential store capability the services need; the
// gorm repository satisfies it in production, tests may substitute.
type UserStore interface {
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

type TokenIssuer interface {
	Sign(name, email, role string) (string, error)
}
