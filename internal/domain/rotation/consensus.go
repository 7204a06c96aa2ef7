package rotation

import (
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

// AddRejectionVote records voterID against entry. Duplicate votes and votes
// by the submitter leave the entry unchanged; the bool reports a change.
func AddRejectionVote(entry entities.WalkEntry, voterID string) (entities.WalkEntry, bool) {
	if voterID == "" || voterID == entry.ParticipantID || entry.HasVoted(voterID) {
		return entry, false
	}
	out := entry.Clone()
	out.Rejections = append(out.Rejections, voterID)
	return out, true
}

func QuorumReached(entry entities.WalkEntry, quorum int) bool {
	return len(entry.Rejections) >= quorum
}

// Reject marks entry as rejected. Rejecting twice is a no-op.
func Reject(entry entities.WalkEntry, now time.Time) (entities.WalkEntry, bool) {
	if entry.Verdict == domain.VerdictRejected {
		return entry, false
	}
	out := entry.Clone()
	out.Verdict = domain.VerdictRejected
	if out.VerifiedAt.IsZero() {
		out.VerifiedAt = now
	}
	return out, true
}
