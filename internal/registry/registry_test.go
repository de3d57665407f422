package registry

import (
	"testing"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalWithMilestones(title string, count int) models.Goal {
	g := models.Goal{ID: uuid.New(), Title: title, Status: models.StatusOnTrack}
	for i := 0; i < count; i++ {
		g.Milestones = append(g.Milestones, models.Milestone{
			ID:     uuid.New(),
			GoalID: g.ID,
			Title:  "Checkpoint",
			Order:  i + 1,
		})
	}
	return g
}

func TestAddGoalPrepends(t *testing.T) {
	r := New()
	g1 := goalWithMilestones("Run a marathon", 0)
	g2 := goalWithMilestones("Read 20 books", 0)

	r.AddGoal(g1)
	r.AddGoal(g2)

	goals := r.Goals()
	require.Len(t, goals, 2)
	assert.Equal(t, g2.ID, goals[0].ID)
	assert.Equal(t, g1.ID, goals[1].ID)
}

func TestReplaceMilestonesWholesale(t *testing.T) {
	r := New()
	target := goalWithMilestones("Lose 10kg", 5)
	other := goalWithMilestones("Meditate daily", 3)
	r.SetGoals([]models.Goal{target, other})

	r.ReplaceMilestones(target.ID, nil)

	goals := r.Goals()
	assert.Empty(t, goals[0].Milestones)
	assert.Len(t, goals[1].Milestones, 3, "other goals stay untouched")
}

func TestReplaceMilestonesUnknownGoalIsNoOp(t *testing.T) {
	r := New()
	g := goalWithMilestones("Lose 10kg", 2)
	r.SetGoals([]models.Goal{g})

	r.ReplaceMilestones(uuid.New(), nil)

	assert.Len(t, r.Goals()[0].Milestones, 2)
}

func TestToggleMilestone(t *testing.T) {
	r := New()
	g := goalWithMilestones("Lose 10kg", 2)
	r.SetGoals([]models.Goal{g})
	msID := g.Milestones[1].ID

	r.ToggleMilestone(g.ID, msID)
	assert.True(t, r.Goals()[0].Milestones[1].Completed)
	assert.False(t, r.Goals()[0].Milestones[0].Completed)

	r.ToggleMilestone(g.ID, msID)
	assert.False(t, r.Goals()[0].Milestones[1].Completed)
}

func TestToggleMilestoneUnknownIDsAreNoOps(t *testing.T) {
	r := New()
	g := goalWithMilestones("Lose 10kg", 1)
	r.SetGoals([]models.Goal{g})

	r.ToggleMilestone(uuid.New(), g.Milestones[0].ID)
	r.ToggleMilestone(g.ID, uuid.New())

	assert.False(t, r.Goals()[0].Milestones[0].Completed)
}
