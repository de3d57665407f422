package ledger

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend-api/internal/models"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type ContentType string

const (
	ContentPhoto ContentType = "photo"
	ContentAudio ContentType = "audio"
	ContentText  ContentType = "text"
	ContentCheck ContentType = "check"
)

// Disposition is the (visibility, contentType) pair resolved by the user at
// completion time. Resolving it is the caller's job; the ledger only consumes
// the result.
type Disposition struct {
	Visibility  Visibility  `json:"visibility"`
	ContentType ContentType `json:"contentType"`
}

// Valid reports whether both halves of the disposition are known values.
func (d Disposition) Valid() bool {
	switch d.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		return false
	}
	switch d.ContentType {
	case ContentPhoto, ContentAudio, ContentText, ContentCheck:
		return true
	}
	return false
}

// RecordType maps a completion content type to the stored record type. Text
// check-ins are recorded as milestone entries.
func RecordType(ct ContentType) string {
	switch ct {
	case ContentPhoto:
		return models.RecordPhoto
	case ContentAudio:
		return models.RecordAudio
	case ContentText:
		return models.RecordMilestone
	default:
		return models.RecordCheck
	}
}

// ShouldPromptShare reports whether a share prompt should follow the
// completion: public visibility with anything richer than a bare check.
func ShouldPromptShare(d Disposition) bool {
	return d.Visibility == VisibilityPublic && d.ContentType != ContentCheck
}

// NewRecord builds the immutable completion record for an action that has
// already taken the completion edge (streak incremented, done set). Title and
// goal title are copied by value so history survives later renames. Photo
// completions get a synthesized media reference; everything else has none.
func NewRecord(a models.Action, d Disposition, now time.Time) models.CompletedAction {
	rec := models.CompletedAction{
		ID:          fmt.Sprintf("%s-%d", a.ID, now.UnixMilli()),
		ActionID:    a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		GoalTitle:   a.GoalTitle,
		CompletedAt: now,
		IsPrivate:   d.Visibility == VisibilityPrivate,
		Streak:      a.Streak,
		Type:        RecordType(d.ContentType),
	}
	if d.ContentType == ContentPhoto {
		url := fmt.Sprintf("/uploads/checkins/%s-%d.jpg", a.ID, now.UnixMilli())
		rec.MediaURL = &url
	}
	return rec
}
