package models

import (
	"time"
)

// Article is a published post. Title, summary and content are all
// required; likes and responses hang off the article by foreign key.
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Likes     []Like     `gorm:"foreignKey:ArticleID" json:"likes,omitempty"`
	Responses []Response `gorm:"foreignKey:ArticleID" json:"responses,omitempty"`

	// Computed by the repository (subqueries), never written.
	LikesCount     int  `gorm:"->;-:migration" json:"likes_count"`
	ResponsesCount int  `gorm:"->;-:migration" json:"responses_count"`
	Liked          bool `gorm:"->;-:migration" json:"liked"`
}

// Response is a reader comment attached to an article.
type Response struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
