package models

import (
	"fmt"
	"net/url"
	"time"
)

// Default profile values assigned at registration.
const (
	DefaultRole      = "developer"
	avatarURLPattern = "https://ui-avatars.com/api/?name=%s&background=4F46E5&color=fff"
)

// DefaultSkills is the skill list assigned to a freshly registered account.
var DefaultSkills = StringList{"JavaScript", "React", "Node.js", "TypeScript"}

// User is a registered account.
// HashedPassword never leaves the service layer.
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	AvatarURL      string     `json:"avatar_url"`
	HashedPassword string     `json:"-"`
	Skills         StringList `json:"skills"`
	Bio            string     `json:"bio"`
	IsActive       bool       `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DefaultAvatarURL returns the generated avatar URL for username.
func DefaultAvatarURL(username string) string {
	return fmt.Sprintf(avatarURLPattern, url.QueryEscape(username))
}

// UserSummary is the reduced profile returned on login.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// Summary projects u onto [UserSummary].
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}
