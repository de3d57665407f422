package ledger

import (
	"testing"
	"time"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
}

func seedLedger(opts ...Option) (*Ledger, models.Action) {
	action := models.Action{
		ID:        uuid.New(),
		Title:     "Morning run",
		GoalTitle: "Run a marathon",
		Kind:      models.ActionCommitment,
		Streak:    3,
	}
	opts = append(opts, WithClock(testClock))
	l := New(opts...)
	l.SetActions([]models.Action{action})
	return l, action
}

func TestCompleteUnknownIDIsNoOp(t *testing.T) {
	l, action := seedLedger()
	before := l.Actions()

	res := l.Complete(uuid.New(), Disposition{VisibilityPublic, ContentPhoto})

	assert.Nil(t, res.Record)
	assert.False(t, res.ShouldPromptShare)
	assert.Equal(t, before, l.Actions())
	assert.Empty(t, l.CompletedActions())
	assert.Equal(t, action.Streak, l.Actions()[0].Streak)
}

func TestCompleteIncrementsStreakExactlyOnce(t *testing.T) {
	l, action := seedLedger()

	res := l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})
	require.NotNil(t, res.Record)

	got := l.Actions()[0]
	assert.True(t, got.Done)
	assert.Equal(t, 4, got.Streak)

	// Completing an already-complete action never double-increments.
	res = l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})
	assert.Nil(t, res.Record)
	assert.Equal(t, 4, l.Actions()[0].Streak)
	assert.Len(t, l.CompletedActions(), 1)
}

func TestUndoNeverDecrementsStreak(t *testing.T) {
	l, action := seedLedger()
	l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})

	l.Uncomplete(action.ID)

	got := l.Actions()[0]
	assert.False(t, got.Done)
	assert.Equal(t, 4, got.Streak)
}

func TestUndoDecrementOption(t *testing.T) {
	l, action := seedLedger(WithUndoDecrement(true))
	l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})

	l.Uncomplete(action.ID)

	got := l.Actions()[0]
	assert.False(t, got.Done)
	assert.Equal(t, 3, got.Streak)
}

func TestUndoDoesNotTouchHistory(t *testing.T) {
	l, action := seedLedger()
	l.Complete(action.ID, Disposition{VisibilityPublic, ContentPhoto})
	first := l.CompletedActions()[0]

	l.Uncomplete(action.ID)
	assert.Len(t, l.CompletedActions(), 1)

	l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})
	history := l.CompletedActions()
	require.Len(t, history, 2)
	assert.Equal(t, first, history[0])
}

func TestRecordTypeMappingIsTotal(t *testing.T) {
	cases := map[ContentType]string{
		ContentPhoto: models.RecordPhoto,
		ContentAudio: models.RecordAudio,
		ContentText:  models.RecordMilestone,
		ContentCheck: models.RecordCheck,
	}
	for ct, want := range cases {
		assert.Equal(t, want, RecordType(ct), "content type %s", ct)
	}
}

func TestMediaReferenceOnlyForPhoto(t *testing.T) {
	for _, ct := range []ContentType{ContentPhoto, ContentAudio, ContentText, ContentCheck} {
		l, action := seedLedger()
		res := l.Complete(action.ID, Disposition{VisibilityPublic, ct})
		require.NotNil(t, res.Record)
		if ct == ContentPhoto {
			assert.NotNil(t, res.Record.MediaURL, "photo completion must carry media")
		} else {
			assert.Nil(t, res.Record.MediaURL, "content type %s must not carry media", ct)
		}
	}
}

func TestSharePromptSignal(t *testing.T) {
	cases := []struct {
		d    Disposition
		want bool
	}{
		{Disposition{VisibilityPublic, ContentPhoto}, true},
		{Disposition{VisibilityPublic, ContentAudio}, true},
		{Disposition{VisibilityPublic, ContentText}, true},
		{Disposition{VisibilityPublic, ContentCheck}, false},
		{Disposition{VisibilityPrivate, ContentPhoto}, false},
		{Disposition{VisibilityPrivate, ContentAudio}, false},
		{Disposition{VisibilityPrivate, ContentText}, false},
		{Disposition{VisibilityPrivate, ContentCheck}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldPromptShare(tc.d), "%s/%s", tc.d.Visibility, tc.d.ContentType)
	}
}

func TestCompletionRecordSnapshotsTitles(t *testing.T) {
	l, action := seedLedger()
	res := l.Complete(action.ID, Disposition{VisibilityPublic, ContentText})
	require.NotNil(t, res.Record)

	rec := *res.Record
	assert.Equal(t, "Morning run", rec.Title)
	assert.Equal(t, "Run a marathon", rec.GoalTitle)
	assert.Equal(t, action.ID, rec.ActionID)
	assert.Equal(t, 4, rec.Streak, "record carries the post-increment streak")
	assert.False(t, rec.IsPrivate)
	assert.Equal(t, testClock(), rec.CompletedAt)

	// A later rename of the live action must not rewrite history.
	renamed := l.Actions()[0]
	renamed.Title = "Evening run"
	l.SetActions([]models.Action{renamed})
	assert.Equal(t, "Morning run", l.CompletedActions()[0].Title)
}

func TestCompletionRecordIdentity(t *testing.T) {
	l, action := seedLedger()
	res := l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})
	require.NotNil(t, res.Record)

	want := action.ID.String() + "-1749979800000"
	assert.Equal(t, want, res.Record.ID)
}

func TestToggleRequiresDispositionOnCompletionEdge(t *testing.T) {
	l, action := seedLedger()

	_, err := l.Toggle(action.ID, nil)
	assert.ErrorIs(t, err, ErrDispositionRequired)
	assert.False(t, l.Actions()[0].Done)
	assert.Equal(t, 3, l.Actions()[0].Streak)

	res, err := l.Toggle(action.ID, &Disposition{VisibilityPublic, ContentAudio})
	require.NoError(t, err)
	assert.True(t, res.ShouldPromptShare)
	assert.True(t, l.Actions()[0].Done)

	// Undo through Toggle ignores the disposition.
	res, err = l.Toggle(action.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, res.Record)
	assert.False(t, l.Actions()[0].Done)
	assert.Equal(t, 4, l.Actions()[0].Streak)
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	l, _ := seedLedger()
	before := l.Actions()

	res, err := l.Toggle(uuid.New(), nil)
	require.NoError(t, err)
	assert.Nil(t, res.Record)
	assert.Equal(t, before, l.Actions())
}

func TestFreshActionDefaults(t *testing.T) {
	l := New()
	l.AddAction(models.Action{ID: uuid.New(), Title: "Meditate"})

	got := l.Actions()[0]
	assert.Zero(t, got.Streak)
	assert.False(t, got.Done)
}

func TestMutationsReplaceSlices(t *testing.T) {
	l, action := seedLedger()
	before := l.Actions()

	l.Complete(action.ID, Disposition{VisibilityPrivate, ContentCheck})

	// The snapshot taken before the mutation is untouched.
	assert.False(t, before[0].Done)
	assert.Equal(t, 3, before[0].Streak)
}
