package entities

import (
	"time"

	"dogwalk/internal/domain"
)

// ParticipantRef names a participant without carrying the full record.
type ParticipantRef struct {
	ID   string
	Name string
}

// TurnState is the singleton record naming who walks next.
type TurnState struct {
	ParticipantID   string
	ParticipantName string
	// Original is set only while the active participant is a stand-in.
	Original   *ParticipantRef
	Status     domain.TurnStatus
	LastWalker string
	UpdatedAt  time.Time
	// Version increments on every committed write; 0 means never stored.
	Version int64
}

func (t *TurnState) IsReplacement() bool {
	return t.Original != nil
}

// Clone returns a copy that shares no pointer with t.
func (t TurnState) Clone() TurnState {
	if t.Original != nil {
		o := *t.Original
		t.Original = &o
	}
	return t
}
