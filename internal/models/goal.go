package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal status values
const (
	StatusOnTrack        = "On Track"
	StatusNeedsAttention = "Needs Attention"
	StatusCritical       = "Critical"
)

type Goal struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Metric      string         `json:"metric"`
	Deadline    string         `json:"deadline"`
	Why         *string        `json:"why,omitempty"`
	Consistency int            `json:"consistency" gorm:"default:0"`
	Status      string         `json:"status" gorm:"not null;default:'On Track'"` // On Track, Needs Attention, Critical
	Color       string         `json:"color"`
	Category    *string        `json:"category,omitempty"` // fitness, mindfulness, productivity, health, skills, other
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	Milestones  []Milestone    `json:"milestones,omitempty" gorm:"foreignKey:GoalID"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Milestone is a dated checkpoint within a goal's timeline. Milestones never
// exist outside their parent goal.
type Milestone struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID      `json:"goalId" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	TargetDate  time.Time      `json:"targetDate"`
	TargetValue *float64       `json:"targetValue,omitempty"`
	Unit        *string        `json:"unit,omitempty"`
	Completed   bool           `json:"completed" gorm:"default:false"`
	Order       int            `json:"order" gorm:"column:sort_order"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	Title    string  `json:"title" validate:"required"`
	Metric   string  `json:"metric"`
	Deadline string  `json:"deadline"`
	Why      *string `json:"why"`
	Color    *string `json:"color"`
	Category *string `json:"category"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Metric      *string `json:"metric"`
	Deadline    *string `json:"deadline"`
	Why         *string `json:"why"`
	Consistency *int    `json:"consistency"`
	Status      *string `json:"status"`
	Color       *string `json:"color"`
	Category    *string `json:"category"`
}

type MilestoneInput struct {
	Title       string    `json:"title" validate:"required"`
	TargetDate  time.Time `json:"targetDate"`
	TargetValue *float64  `json:"targetValue"`
	Unit        *string   `json:"unit"`
	Completed   bool      `json:"completed"`
	Order       int       `json:"order"`
}

type ReplaceMilestonesRequest struct {
	Milestones []MilestoneInput `json:"milestones"`
}

type UpdateMilestoneRequest struct {
	Title       *string    `json:"title"`
	TargetDate  *time.Time `json:"targetDate"`
	TargetValue *float64   `json:"targetValue"`
	Unit        *string    `json:"unit"`
	Order       *int       `json:"order"`
}
