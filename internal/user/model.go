package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// User is the full identity record, including the password hash. The
// hash is never serialized; anything leaving the service boundary goes
// through Public instead.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Fullname     string    `json:"fullname"`
	Avatar       string    `json:"avatar,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the client-facing projection of a User. It has no password
// field at all, so it cannot leak one by accident.
type Public struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Fullname  string    `json:"fullname"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() *Public {
	return &Public{
		ID:        u.ID,
		Email:     u.Email,
		Fullname:  u.Fullname,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}
