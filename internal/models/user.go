// Package models defines the database entities and the API error taxonomy.
package models

import (
	"time"
)

// DefaultBio is assigned to every freshly created account.
const DefaultBio = "Hello there! I am using Sphere."

// User represents a registered account. The password hash is never
// serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Fullname     string    `gorm:"size:128;not null" json:"fullname"`
	Bio          string    `gorm:"size:255" json:"bio"`
	About        string    `gorm:"type:text" json:"about"`
	ProfileImage string    `gorm:"size:512" json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Authored articles, newest first on profile reads.
	Articles []Article `gorm:"foreignKey:AuthorID" json:"articles,omitempty"`

	// Assembled by the repository for profile reads; not columns.
	Archives  []Article    `gorm:"-" json:"archives,omitempty"`
	Followers []FollowEdge `gorm:"-" json:"followers,omitempty"`
	Following []FollowEdge `gorm:"-" json:"following,omitempty"`
}

// Sanitize strips fields that must never leave the server even through
// code paths that bypass JSON tags (logs, caches keyed per user).
func (u *User) Sanitize() {
	u.Password = ""
}
