package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/domain/rotation"
	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

var _ input.TurnUseCase = (*TurnService)(nil)

// DefaultWriteRetries bounds automatic retries after a version conflict.
const DefaultWriteRetries = 3

// TurnService owns the turn record. All writes go through one mutex and are
// checked against the stored version.
type TurnService struct {
	mu              sync.Mutex
	turnRepo        output.TurnRepository
	participantRepo output.ParticipantRepository
	events          *TurnEvents
	retries         int
	chain           rotation.ChainPolicy
	now             func() time.Time
}

func NewTurnService(
	turnRepo output.TurnRepository,
	participantRepo output.ParticipantRepository,
	events *TurnEvents,
	retries int,
) *TurnService {
	if retries < 0 {
		retries = DefaultWriteRetries
	}
	return &TurnService{
		turnRepo:        turnRepo,
		participantRepo: participantRepo,
		events:          events,
		retries:         retries,
		chain:           rotation.KeepFirstOriginal,
		now:             time.Now,
	}
}

// SetChainPolicy chooses how a replacement of a stand-in records the
// original participant.
func (s *TurnService) SetChainPolicy(p rotation.ChainPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chain = p
}

func (s *TurnService) Current(ctx context.Context) (*entities.TurnState, error) {
	return s.turnRepo.Get(ctx)
}

func (s *TurnService) Subscribe() (<-chan entities.TurnState, func()) {
	return s.events.Subscribe()
}

// Initialize assigns the first turn to p unless a turn already exists.
func (s *TurnService) Initialize(ctx context.Context, p entities.Participant) (*entities.TurnState, error) {
	return s.mutate(ctx, "initialize turn", func(current *entities.TurnState) (*entities.TurnState, error) {
		if current != nil {
			return nil, nil
		}
		t := rotation.Rotate(p, "", s.now())
		return &t, nil
	})
}

// CommitRotation moves the turn to whoever follows submitter in the roster.
// The roster is re-read inside the write gate.
func (s *TurnService) CommitRotation(ctx context.Context, submitter entities.ParticipantRef) (*entities.TurnState, error) {
	return s.mutate(ctx, "commit rotation", func(current *entities.TurnState) (*entities.TurnState, error) {
		roster, err := s.participantRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list roster: %w", err)
		}
		next, err := rotation.AdvanceTurn(roster, submitter.ID)
		if err != nil {
			return nil, err
		}
		now := s.now()
		t := rotation.Merge(current, rotation.PatchOf(rotation.Rotate(next, submitter.Name, now)), now)
		return &t, nil
	})
}

// RequestReplacement hands the current turn to the lowest-balance
// participant. The acting participant is the one currently holding the turn.
func (s *TurnService) RequestReplacement(ctx context.Context) (*entities.TurnState, error) {
	return s.mutate(ctx, "request replacement", func(current *entities.TurnState) (*entities.TurnState, error) {
		if current == nil {
			return nil, domain.ErrTurnNotFound
		}
		roster, err := s.participantRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list roster: %w", err)
		}
		replacement, err := rotation.SelectReplacement(roster, current.ParticipantID)
		if err != nil {
			return nil, err
		}
		now := s.now()
		t := rotation.Merge(current, rotation.PatchOf(rotation.ReplaceWith(s.chain, *current, replacement, now)), now)
		return &t, nil
	})
}

// MarkVerifying flags that participantID's walk awaits the classifier.
// Walks by anyone other than the active participant leave the turn alone.
func (s *TurnService) MarkVerifying(ctx context.Context, participantID string) (*entities.TurnState, error) {
	return s.setStatus(ctx, participantID, domain.TurnVerifying)
}

// MarkWaiting ends a verification for participantID without rotating.
func (s *TurnService) MarkWaiting(ctx context.Context, participantID string) (*entities.TurnState, error) {
	return s.setStatus(ctx, participantID, domain.TurnWaiting)
}

func (s *TurnService) setStatus(ctx context.Context, participantID string, status domain.TurnStatus) (*entities.TurnState, error) {
	return s.mutate(ctx, "set turn status", func(current *entities.TurnState) (*entities.TurnState, error) {
		if current == nil || current.ParticipantID != participantID || current.Status == status {
			return nil, nil
		}
		t := rotation.Merge(current, rotation.TurnPatch{Status: &status}, s.now())
		return &t, nil
	})
}

// RevertTo gives the turn back to the submitter of a rejected walk.
func (s *TurnService) RevertTo(ctx context.Context, walk entities.WalkEntry) (*entities.TurnState, error) {
	return s.mutate(ctx, "revert turn", func(current *entities.TurnState) (*entities.TurnState, error) {
		now := s.now()
		t := rotation.Merge(current, rotation.PatchOf(rotation.Revert(walk, now)), now)
		return &t, nil
	})
}

// mutate runs a read-modify-write of the turn. fn returns nil to skip the
// write, in which case the current turn is returned unchanged.
func (s *TurnService) mutate(
	ctx context.Context,
	op string,
	fn func(current *entities.TurnState) (*entities.TurnState, error),
) (*entities.TurnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conflict error
	for attempt := 0; attempt <= s.retries; attempt++ {
		current, err := s.turnRepo.Get(ctx)
		if errors.Is(err, domain.ErrTurnNotFound) {
			current, err = nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		next, err := fn(current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if next == nil {
			return current, nil
		}

		var expected int64
		if current != nil {
			expected = current.Version
		}
		saved, err := s.turnRepo.Save(ctx, *next, expected)
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			conflict = err
			log.Printf("⚠️ %s: version %d conflict, retrying (%d/%d)", op, expected, attempt+1, s.retries)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.events.Publish(*saved)
		return saved, nil
	}
	return nil, fmt.Errorf("%s: %w", op, conflict)
}
