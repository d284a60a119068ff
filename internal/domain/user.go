package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity that can own rooms and cast votes.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsGuest   bool      `json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
}

func NewGuestUser(name string, avatarURL string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		AvatarURL: avatarURL,
		IsGuest:   true,
		CreatedAt: time.Now().UTC(),
	}
}
