package models

import (
	"time"
)

// Like marks that a user liked an article. The composite unique index
// gives likes set semantics: inserting a duplicate is a no-op.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_like_user_article;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive is a user's bookmark of an article. Same set semantics as Like.
type Archive struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_archive_user_article;index" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_archive_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow is a single directed edge in the social graph. One row backs
// both mirrored views: followers of u are rows with followee_id = u,
// following of u are rows with follower_id = u.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"-"`
}

// FollowEdge is the API view of one side of a follow relationship:
// the counterpart user plus when the edge was created.
type FollowEdge struct {
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
