package domain

// TurnStatus is the state of the singleton turn record.
type TurnStatus string

const (
	// TurnWaiting means no verification is in flight for the active participant.
	TurnWaiting TurnStatus = "WAITING"
	// TurnVerifying means a walk by the active participant awaits the classifier.
	TurnVerifying TurnStatus = "VERIFYING"
)

// Verdict is the verification outcome of a walk.
type Verdict string

const (
	VerdictPending  Verdict = "PENDING"
	VerdictApproved Verdict = "APPROVED"
	VerdictRejected Verdict = "REJECTED"
)

// RevertSentinel is recorded as the last walker when a turn is handed back
// after a consensus rejection.
const RevertSentinel = "SYSTEM_REVERT"

// DefaultRejectionQuorum is the number of votes that rejects a walk.
const DefaultRejectionQuorum = 2

// DefaultWalkerName is used when a signing-in participant has no display name.
const DefaultWalkerName = "Walker"
