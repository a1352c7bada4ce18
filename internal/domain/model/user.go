package model

import (
	"time"
)

// DefaultAvatar is the sentinel avatar filename assigned at registration.
const DefaultAvatar = "default.jpg"

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	AvatarFile     string    `json:"avatar_file"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
