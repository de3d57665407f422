package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action kinds
const (
	ActionCommitment  = "commitment"
	ActionPerformance = "performance"
	ActionOneTime     = "one-time"
)

// Action is a recurring or one-time daily task. Streak only ever grows:
// the completion edge increments it, undo leaves it alone.
type Action struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index"`
	GoalID    *uuid.UUID     `json:"goalId" gorm:"type:uuid;index"`
	Title     string         `json:"title" gorm:"not null"`
	GoalTitle string         `json:"goalTitle,omitempty"`
	Kind      string         `json:"type" gorm:"not null;default:'commitment'"` // commitment, performance, one-time
	Time      *string        `json:"time,omitempty"`                            // HH:MM, no timezone
	Streak    int            `json:"streak" gorm:"default:0"`
	Done      bool           `json:"done" gorm:"default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CompletedAction record types
const (
	RecordCheck     = "check"
	RecordPhoto     = "photo"
	RecordAudio     = "audio"
	RecordMilestone = "milestone"
)

// CompletedAction is an immutable record of one completion event. Title and
// goal title are value-copies taken at completion time so later renames never
// rewrite history. The ID combines the source action id and the completion
// timestamp.
type CompletedAction struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ActionID    uuid.UUID `json:"actionId" gorm:"type:uuid;index"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index"`
	Title       string    `json:"title"`
	GoalTitle   string    `json:"goalTitle,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
	IsPrivate   bool      `json:"isPrivate"`
	Streak      int       `json:"streak"`
	Type        string    `json:"type"` // check, photo, audio, milestone
	MediaURL    *string   `json:"mediaUrl,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Action DTOs
type CreateActionRequest struct {
	Title     string  `json:"title" validate:"required"`
	Time      *string `json:"time"`
	GoalID    *string `json:"goalId"`
	Kind      *string `json:"type"`
	GoalTitle *string `json:"goalTitle"`
}

type CompleteActionRequest struct {
	Visibility  string  `json:"visibility"`  // public, private
	ContentType string  `json:"contentType"` // photo, audio, text, check
	MediaURL    *string `json:"mediaUrl"`
	Category    *string `json:"category"`
}
