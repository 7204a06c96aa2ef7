package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

var _ input.ParticipantUseCase = (*ParticipantService)(nil)

type ParticipantService struct {
	participantRepo output.ParticipantRepository
	turns           *TurnService
	now             func() time.Time
}

func NewParticipantService(participantRepo output.ParticipantRepository, turns *TurnService) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		turns:           turns,
		now:             time.Now,
	}
}

func (s *ParticipantService) List(ctx context.Context) ([]entities.Participant, error) {
	return s.participantRepo.List(ctx)
}

// Add registers a participant explicitly. The first participant ever added
// also receives the first turn.
func (s *ParticipantService) Add(ctx context.Context, name, email, photoURL string) (*entities.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.create(ctx, uuid.NewString(), name, email, photoURL)
}

// SignIn returns the participant for an authenticated id, creating it on
// first sign-in.
func (s *ParticipantService) SignIn(ctx context.Context, id, name, email, photoURL string) (*entities.Participant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	existing, err := s.participantRepo.FindByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrParticipantNotFound) {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultWalkerName
	}
	return s.create(ctx, id, name, email, photoURL)
}

func (s *ParticipantService) AdjustBalance(ctx context.Context, id string, delta int) (*entities.Participant, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	return s.participantRepo.AdjustBalance(ctx, id, delta)
}

func (s *ParticipantService) create(ctx context.Context, id, name, email, photoURL string) (*entities.Participant, error) {
	count, err := s.participantRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	participant := &entities.Participant{
		ID:        id,
		Name:      name,
		Email:     strings.TrimSpace(email),
		PhotoURL:  strings.TrimSpace(photoURL),
		CreatedAt: s.now(),
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	if count == 0 {
		if _, err := s.turns.Initialize(ctx, *participant); err != nil {
			return nil, fmt.Errorf("initialize turn: %w", err)
		}
	}
	return participant, nil
}
