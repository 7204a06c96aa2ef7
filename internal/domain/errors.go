package domain

import "errors"

// Domain errors.
var (
	ErrValidation            = errors.New("invalid request")
	ErrEmptyRoster           = errors.New("roster is empty")
	ErrNoCandidate           = errors.New("no participant can take over the turn")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrWalkNotFound          = errors.New("walk not found")
	ErrWalkPending           = errors.New("walk is still awaiting verification")
	ErrTurnNotFound          = errors.New("no active turn")
	ErrAnimalNotDetected     = errors.New("no animal detected in the photo")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrConcurrentUpdate      = errors.New("turn was modified concurrently")
	ErrPersistence           = errors.New("storage failure")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrValidation, "validation"},
	{ErrEmptyRoster, "empty_roster"},
	{ErrNoCandidate, "no_candidate"},
	{ErrParticipantNotFound, "participant_not_found"},
	{ErrWalkNotFound, "walk_not_found"},
	{ErrWalkPending, "walk_pending"},
	{ErrTurnNotFound, "turn_not_found"},
	{ErrAnimalNotDetected, "animal_not_detected"},
	{ErrClassifierUnavailable, "classifier_unavailable"},
	{ErrConcurrentUpdate, "concurrent_update"},
	{ErrPersistence, "persistence"},
}

// Code returns the stable machine-readable code of the first domain error
// found in err's chain, or "" when err is not a domain error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
