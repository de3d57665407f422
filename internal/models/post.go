package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post kinds
const (
	PostStatus  = "status"
	PostPhoto   = "photo"
	PostAudio   = "audio"
	PostCheckin = "checkin"
	PostGoal    = "goal"
)

// Feed visibility scopes
const (
	FeedCircle = "circle"
	FeedFollow = "follow"
)

// Post is a social feed entry. Each post belongs to exactly one feed scope.
type Post struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Kind        string         `json:"type" gorm:"not null"`       // status, photo, audio, checkin, goal
	Visibility  string         `json:"visibility" gorm:"not null"` // circle, follow
	Content     string         `json:"content"`
	MediaURL    *string        `json:"mediaUrl,omitempty"`
	ActionTitle *string        `json:"actionTitle,omitempty"`
	GoalTitle   *string        `json:"goalTitle,omitempty"`
	GoalColor   *string        `json:"goalColor,omitempty"`
	Streak      *int           `json:"streak,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	User      User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reactions []Reaction `json:"reactions,omitempty" gorm:"foreignKey:PostID"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Reaction struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID      `json:"postId" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null"`
	Emoji     string         `json:"emoji" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Post DTOs
type CreatePostRequest struct {
	Kind        string  `json:"type" validate:"required"`
	Visibility  string  `json:"visibility" validate:"required"`
	Content     string  `json:"content"`
	MediaURL    *string `json:"mediaUrl"`
	ActionTitle *string `json:"actionTitle"`
	GoalTitle   *string `json:"goalTitle"`
	GoalColor   *string `json:"goalColor"`
	Streak      *int    `json:"streak"`
}

type ReactRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}
