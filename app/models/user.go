package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the single persisted entity. The unique index on Email is the
// authoritative guard against duplicates; application-level pre-checks
// are advisory only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
