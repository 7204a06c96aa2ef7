package input

import (
	"context"

	"dogwalk/internal/domain/entities"
)

// Submission is a photo proof sent by a participant.
type Submission struct {
	ParticipantID  string
	Image          []byte
	Filename       string
	ManualOverride bool
}

// VoteResult reports the state of an entry after a rejection vote.
type VoteResult struct {
	Walk     entities.WalkEntry
	Votes    int
	Quorum   int
	Rejected bool
	// Reverted is true only for the vote that reached the quorum.
	Reverted bool
}

type WalkUseCase interface {
	Submit(ctx context.Context, sub Submission) (*entities.WalkEntry, error)
	List(ctx context.Context, limit int) ([]entities.WalkEntry, error)
	Pending(ctx context.Context) (*entities.WalkEntry, error)
	Reject(ctx context.Context, walkID, voterID string) (*VoteResult, error)
}
