package entities

import (
	"slices"
	"time"

	"dogwalk/internal/domain"
)

// WalkEntry is one submitted proof of a walk.
type WalkEntry struct {
	ID              string
	ParticipantID   string
	ParticipantName string
	PhotoURL        string
	Verdict         domain.Verdict
	Confidence      float64
	ManualOverride  bool
	Rejections      []string
	CreatedAt       time.Time
	VerifiedAt      time.Time // zero while pending
}

func (w *WalkEntry) IsPending() bool {
	return w.Verdict == domain.VerdictPending
}

func (w *WalkEntry) HasVoted(participantID string) bool {
	return slices.Contains(w.Rejections, participantID)
}

// Clone returns a copy that shares no slice with w.
func (w WalkEntry) Clone() WalkEntry {
	w.Rejections = slices.Clone(w.Rejections)
	return w
}
