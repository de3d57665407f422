package registry

import (
	"sync"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
)

// Registry is the client-side goal collection. Goals are kept
// most-recent-first; milestone lists are owned wholesale by their parent goal.
// Mutations replace the backing slice so earlier snapshots stay valid.
type Registry struct {
	mu    sync.RWMutex
	goals []models.Goal
}

func New() *Registry {
	return &Registry{}
}

// SetGoals replaces the full collection.
func (r *Registry) SetGoals(goals []models.Goal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]models.Goal, len(goals))
	copy(next, goals)
	r.goals = next
}

// AddGoal prepends the goal so the newest one renders first.
func (r *Registry) AddGoal(g models.Goal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]models.Goal, 0, len(r.goals)+1)
	next = append(next, g)
	next = append(next, r.goals...)
	r.goals = next
}

// Goals returns the current collection, newest first.
func (r *Registry) Goals() []models.Goal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.goals
}

// ReplaceMilestones swaps one goal's milestone list wholesale. There is no
// merging; the planning flow always submits the full list. Unknown goal ids
// are no-ops.
func (r *Registry) ReplaceMilestones(goalID uuid.UUID, milestones []models.Milestone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]models.Goal, len(r.goals))
	copy(next, r.goals)
	for i := range next {
		if next[i].ID == goalID {
			ms := make([]models.Milestone, len(milestones))
			copy(ms, milestones)
			next[i].Milestones = ms
			r.goals = next
			return
		}
	}
}

// ToggleMilestone flips one milestone's completion flag within the matching
// goal. No cascade onto goal status or consistency. Unknown ids are no-ops.
func (r *Registry) ToggleMilestone(goalID, milestoneID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]models.Goal, len(r.goals))
	copy(next, r.goals)
	for i := range next {
		if next[i].ID != goalID {
			continue
		}
		ms := make([]models.Milestone, len(next[i].Milestones))
		copy(ms, next[i].Milestones)
		for j := range ms {
			if ms[j].ID == milestoneID {
				ms[j].Completed = !ms[j].Completed
				next[i].Milestones = ms
				r.goals = next
				return
			}
		}
		return
	}
}
