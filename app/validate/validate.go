// Package validate checks and normalizes request payloads before they
// reach the service layer. Functions here never touch storage.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"userbase/app/dto"
	"userbase/app/models"
)

const (
	nameMin     = 2
	nameMax     = 255
	emailMax    = 255
	passwordMin = 6
	// bcrypt ignores everything past 72 bytes
	passwordMax = 72
)

// Register validates and normalizes a public registration payload.
// Public sign-up can never claim the admin role; admin accounts are
// created through the gated user endpoints or the bootstrap config.
func Register(req *dto.RegisterRequest) []dto.FieldError {
	var errs []dto.FieldError
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	errs = appendNameErr(errs, req.Name)
	errs = appendEmailErr(errs, req.Email)
	errs = appendPasswordErr(errs, req.Password)
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser {
		errs = append(errs, dto.FieldError{Field: "role", Message: "role must be \"user\""})
	}
	return errs
}

// Login validates a login payload. Shape only; credential checking is
// the auth flow's job.
func Login(req *dto.LoginRequest) []dto.FieldError {
	var errs []dto.FieldError
	req.Email = NormalizeEmail(req.Email)
	errs = appendEmailErr(errs, req.Email)
	if req.Password == "" {
		errs = append(errs, dto.FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}

// CreateUser validates an admin-side creation payload.
func CreateUser(req *dto.CreateUserRequest) []dto.FieldError {
	var errs []dto.FieldError
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	errs = appendNameErr(errs, req.Name)
	errs = appendEmailErr(errs, req.Email)
	errs = appendPasswordErr(errs, req.Password)
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		errs = append(errs, dto.FieldError{Field: "role", Message: "role must be \"user\" or \"admin\""})
	}
	return errs
}

// UpdateUser validates a partial update. An empty field set is itself
// a validation error.
func UpdateUser(req *dto.UpdateUserRequest) []dto.FieldError {
	if req.Empty() {
		return []dto.FieldError{{Field: "body", Message: "at least one field must be provided"}}
	}
	var errs []dto.FieldError
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
		errs = appendNameErr(errs, *req.Name)
	}
	if req.Email != nil {
		*req.Email = NormalizeEmail(*req.Email)
		errs = appendEmailErr(errs, *req.Email)
	}
	if req.Password != nil {
		errs = appendPasswordErr(errs, *req.Password)
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		errs = append(errs, dto.FieldError{Field: "role", Message: "role must be \"user\" or \"admin\""})
	}
	return errs
}

// NormalizeEmail lowercases and trims an address so that uniqueness
// and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func appendNameErr(errs []dto.FieldError, name string) []dto.FieldError {
	// characters, not bytes: a two-rune multibyte name is long enough
	if n := utf8.RuneCountInString(name); n < nameMin || n > nameMax {
		return append(errs, dto.FieldError{Field: "name", Message: fmt.Sprintf("name must be %d-%d characters", nameMin, nameMax)})
	}
	return errs
}

func appendEmailErr(errs []dto.FieldError, email string) []dto.FieldError {
	if email == "" {
		return append(errs, dto.FieldError{Field: "email", Message: "email is required"})
	}
	if len(email) > emailMax {
		return append(errs, dto.FieldError{Field: "email", Message: fmt.Sprintf("email must be at most %d characters", emailMax)})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errs, dto.FieldError{Field: "email", Message: "email is not a valid address"})
	}
	return errs
}

func appendPasswordErr(errs []dto.FieldError, password string) []dto.FieldError {
	if len(password) < passwordMin || len(password) > passwordMax {
		return append(errs, dto.FieldError{Field: "password", Message: fmt.Sprintf("password must be %d-%d characters", passwordMin, passwordMax)})
	}
	return errs
}
