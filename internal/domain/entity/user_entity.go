package entity

import (
	"strings"
	"time"
)

// User is owned by registration; the social graph only reads it.
// PasswordHash is populated by the seed tool and never leaves the store layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
}

// DisplayName falls back to the local part of the email when no name is set.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return NameFromEmail(u.Email)
}

// NameFromEmail returns everything before the first '@'.
func NameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// UserSummary is the projection used by search results and connection lists.
type UserSummary struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      NameFromEmail(u.Email),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
