package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
)

// ErrDispositionRequired is returned by Toggle when the completion edge is
// taken without a resolved disposition.
var ErrDispositionRequired = errors.New("ledger: completing an action requires a disposition")

// Result describes the outcome of a completion edge.
type Result struct {
	// ShouldPromptShare is true when a downstream share prompt should fire.
	ShouldPromptShare bool
	// Record is the completion record appended to the history, nil when the
	// call was a no-op.
	Record *models.CompletedAction
}

// Ledger tracks per-action completion state and streaks, and keeps the
// append-only log of completion records. All mutations replace the backing
// slices rather than editing them in place, so snapshots handed out earlier
// stay valid.
type Ledger struct {
	mu        sync.RWMutex
	actions   []models.Action
	completed []models.CompletedAction

	decrementOnUndo bool
	now             func() time.Time
}

type Option func(*Ledger)

// WithUndoDecrement makes Uncomplete take the streak back down by one. The
// shipped behavior leaves the streak untouched on undo.
func WithUndoDecrement(on bool) Option {
	return func(l *Ledger) { l.decrementOnUndo = on }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(opts ...Option) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetActions replaces the full action collection.
func (l *Ledger) SetActions(actions []models.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]models.Action, len(actions))
	copy(next, actions)
	l.actions = next
}

// AddAction appends a new action to the collection.
func (l *Ledger) AddAction(a models.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]models.Action, len(l.actions), len(l.actions)+1)
	copy(next, l.actions)
	l.actions = append(next, a)
}

// Actions returns the current action collection. The slice is never mutated
// after being returned.
func (l *Ledger) Actions() []models.Action {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.actions
}

// CompletedActions returns the append-only completion history.
func (l *Ledger) CompletedActions() []models.CompletedAction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.completed
}

// Complete takes the incomplete→complete edge for one action: done becomes
// true, the streak increments by one, and a completion record built from the
// disposition is appended to the history. Unknown ids and already-complete
// actions are no-ops; the streak can never double-increment.
func (l *Ledger) Complete(id uuid.UUID, d Disposition) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.actions {
		if l.actions[i].ID == id && !l.actions[i].Done {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Result{}
	}

	now := l.now()

	next := make([]models.Action, len(l.actions))
	copy(next, l.actions)
	next[idx].Done = true
	next[idx].Streak++
	l.actions = next

	rec := NewRecord(next[idx], d, now)

	history := make([]models.CompletedAction, len(l.completed), len(l.completed)+1)
	copy(history, l.completed)
	l.completed = append(history, rec)

	return Result{
		ShouldPromptShare: ShouldPromptShare(d),
		Record:            &rec,
	}
}

// Uncomplete takes the complete→incomplete edge. The streak is left as-is
// unless the ledger was built with WithUndoDecrement. No history record is
// created or removed; the completion log is append-only.
func (l *Ledger) Uncomplete(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.actions {
		if l.actions[i].ID == id && l.actions[i].Done {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	next := make([]models.Action, len(l.actions))
	copy(next, l.actions)
	next[idx].Done = false
	if l.decrementOnUndo && next[idx].Streak > 0 {
		next[idx].Streak--
	}
	l.actions = next
}

// Toggle flips one action's completion state. The completion edge requires a
// disposition; undo ignores it. Unknown ids are silent no-ops.
func (l *Ledger) Toggle(id uuid.UUID, d *Disposition) (Result, error) {
	l.mu.RLock()
	var found *models.Action
	for i := range l.actions {
		if l.actions[i].ID == id {
			found = &l.actions[i]
			break
		}
	}
	var done bool
	if found != nil {
		done = found.Done
	}
	l.mu.RUnlock()

	if found == nil {
		return Result{}, nil
	}
	if done {
		l.Uncomplete(id)
		return Result{}, nil
	}
	if d == nil {
		return Result{}, ErrDispositionRequired
	}
	return l.Complete(id, *d), nil
}
