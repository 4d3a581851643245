package dto

import (
	"time"

	"userbase/app/models"
)

// User is the public projection of a user record. The password hash
// never appears here.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUser(u *models.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserList(users []models.User) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		out = append(out, *NewUser(&users[i]))
	}
	return out
}
