package registry

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
)

// PlanInput carries the goal parameters the milestone planner works from.
type PlanInput struct {
	GoalID      uuid.UUID
	Title       string
	Category    string
	TargetDate  time.Time
	TargetValue *float64
	Unit        *string
}

// PlanMilestones computes 3–5 evenly time-spaced checkpoints between now and
// the goal's target date, roughly one per month. Titles follow
// category-specific templates; target values scale proportionally.
// Deterministic for a fixed now.
func PlanMilestones(in PlanInput, now time.Time) []models.Milestone {
	totalDays := int(math.Ceil(in.TargetDate.Sub(now).Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}

	count := totalDays / 30
	if count < 3 {
		count = 3
	}
	if count > 5 {
		count = 5
	}

	milestones := make([]models.Milestone, 0, count)
	for i := 1; i <= count; i++ {
		progress := float64(i) / float64(count)
		daysFromNow := int(math.Floor(float64(totalDays) * progress))
		targetDate := now.AddDate(0, 0, daysFromNow)

		m := models.Milestone{
			ID:         uuid.New(),
			GoalID:     in.GoalID,
			Title:      milestoneTitle(in, i, count, progress, daysFromNow),
			TargetDate: targetDate,
			Unit:       in.Unit,
			Order:      i,
		}
		if in.TargetValue != nil {
			v := math.Floor(*in.TargetValue * progress)
			m.TargetValue = &v
		}
		milestones = append(milestones, m)
	}
	return milestones
}

func milestoneTitle(in PlanInput, i, count int, progress float64, daysFromNow int) string {
	switch {
	case in.Category == "fitness" && strings.Contains(strings.ToLower(in.Title), "lose"):
		if i == 1 {
			return "First 10% Progress"
		}
		if i == count {
			return "Reach Target Weight"
		}
		return fmt.Sprintf("%d%% to Goal", int(progress*100))
	case in.Category == "mindfulness":
		if i == 1 {
			return "Establish Routine"
		}
		if i == count {
			return "Master Practice"
		}
		return fmt.Sprintf("Week %d Check-in", daysFromNow/7)
	case in.Category == "productivity":
		if i == 1 {
			return "Foundation Phase"
		}
		if i == count {
			return "Complete Project"
		}
		return fmt.Sprintf("Phase %d Complete", i)
	default:
		return fmt.Sprintf("Milestone %d", i)
	}
}
