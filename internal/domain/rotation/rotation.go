// Package rotation decides who walks next. Every function is pure: callers
// pass snapshots in and persist what comes out.
package rotation

import (
	"slices"
	"sort"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

// AdvanceTurn returns the participant after currentID in roster order,
// wrapping around. An id missing from the roster yields roster[0].
func AdvanceTurn(roster []entities.Participant, currentID string) (entities.Participant, error) {
	if len(roster) == 0 {
		return entities.Participant{}, domain.ErrEmptyRoster
	}
	index := slices.IndexFunc(roster, func(p entities.Participant) bool {
		return p.ID == currentID
	})
	return roster[(index+1)%len(roster)], nil
}

// SelectReplacement picks the lowest-balance participant other than
// excludeID. Ties go to the earliest in roster order.
func SelectReplacement(roster []entities.Participant, excludeID string) (entities.Participant, error) {
	candidates := make([]entities.Participant, 0, len(roster))
	for _, p := range roster {
		if p.ID != excludeID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return entities.Participant{}, domain.ErrNoCandidate
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Balance < candidates[j].Balance
	})
	return candidates[0], nil
}

// Rotate builds the turn that follows a verified walk.
func Rotate(next entities.Participant, lastWalker string, now time.Time) entities.TurnState {
	return entities.TurnState{
		ParticipantID:   next.ID,
		ParticipantName: next.Name,
		Status:          domain.TurnWaiting,
		LastWalker:      lastWalker,
		UpdatedAt:       now,
	}
}

// ChainPolicy decides who is recorded as the original participant when a
// stand-in is replaced in turn.
type ChainPolicy string

const (
	// KeepFirstOriginal keeps the participant who first gave the turn away.
	KeepFirstOriginal ChainPolicy = "first"
	// KeepLatestOriginal records the stand-in being replaced.
	KeepLatestOriginal ChainPolicy = "latest"
)

// Replace hands turn to replacement under KeepFirstOriginal.
func Replace(turn entities.TurnState, replacement entities.Participant, now time.Time) entities.TurnState {
	return ReplaceWith(KeepFirstOriginal, turn, replacement, now)
}

// ReplaceWith hands turn to replacement. The active participant becomes the
// original unless turn is already a replacement and policy keeps the first.
func ReplaceWith(policy ChainPolicy, turn entities.TurnState, replacement entities.Participant, now time.Time) entities.TurnState {
	original := &entities.ParticipantRef{ID: turn.ParticipantID, Name: turn.ParticipantName}
	if turn.Original != nil && policy != KeepLatestOriginal {
		o := *turn.Original
		original = &o
	}
	return entities.TurnState{
		ParticipantID:   replacement.ID,
		ParticipantName: replacement.Name,
		Original:        original,
		Status:          domain.TurnWaiting,
		LastWalker:      turn.LastWalker,
		UpdatedAt:       now,
	}
}

// Revert gives the turn back to the submitter of a rejected walk.
func Revert(entry entities.WalkEntry, now time.Time) entities.TurnState {
	return entities.TurnState{
		ParticipantID:   entry.ParticipantID,
		ParticipantName: entry.ParticipantName,
		Status:          domain.TurnWaiting,
		LastWalker:      domain.RevertSentinel,
		UpdatedAt:       now,
	}
}

// TurnPatch is a field-level update of the turn. Nil fields are left as is.
type TurnPatch struct {
	Participant   *entities.ParticipantRef
	Original      *entities.ParticipantRef
	ClearOriginal bool
	Status        *domain.TurnStatus
	LastWalker    *string
}

// PatchOf expresses a full turn as a patch that overwrites every field.
func PatchOf(t entities.TurnState) TurnPatch {
	status := t.Status
	lastWalker := t.LastWalker
	patch := TurnPatch{
		Participant: &entities.ParticipantRef{ID: t.ParticipantID, Name: t.ParticipantName},
		Status:      &status,
		LastWalker:  &lastWalker,
	}
	if t.Original != nil {
		o := *t.Original
		patch.Original = &o
	} else {
		patch.ClearOriginal = true
	}
	return patch
}

// Merge applies patch to current, creating the turn when current is nil.
// The version of current is carried over so the store can check it.
func Merge(current *entities.TurnState, patch TurnPatch, now time.Time) entities.TurnState {
	var out entities.TurnState
	if current != nil {
		out = current.Clone()
	} else {
		out.Status = domain.TurnWaiting
	}
	if patch.Participant != nil {
		out.ParticipantID = patch.Participant.ID
		out.ParticipantName = patch.Participant.Name
	}
	if patch.ClearOriginal {
		out.Original = nil
	}
	if patch.Original != nil {
		o := *patch.Original
		out.Original = &o
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.LastWalker != nil {
		out.LastWalker = *patch.LastWalker
	}
	out.UpdatedAt = now
	return out
}
