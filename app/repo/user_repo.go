package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"userbase/app/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// publicColumns excludes password_hash; only the credential
// verification path reads the full row.
var publicColumns = []string{"id", "name", "email", "role", "created_at", "updated_at"}

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count by email: %w", err)
	}
	return count, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Select(publicColumns).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translate(err, "find by email")
	}
	return &u, nil
}

// FindByEmailWithPassword returns the full row including the password
// hash. Login verification only.
func (r *UserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translate(err, "find by email")
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Select(publicColumns).First(&u, id).Error
	if err != nil {
		return nil, translate(err, "find by id")
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Select(publicColumns).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts u as a single atomic write. The unique index decides
// duplicate races; callers may pre-check but must handle
// ErrDuplicateEmail here regardless.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err, "create user")
	}
	return nil
}

// Update applies fields (column name -> value) to the record with the
// given id and returns the fresh public projection.
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Select(publicColumns).First(&u, id).Error; err != nil {
		return nil, translate(err, "find for update")
	}
	if err := r.db.WithContext(ctx).Model(&u).Updates(fields).Error; err != nil {
		return nil, translate(err, "update user")
	}
	var fresh models.User
	if err := r.db.WithContext(ctx).Select(publicColumns).First(&fresh, id).Error; err != nil {
		return nil, translate(err, "reload after update")
	}
	return &fresh, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
