package memory

import (
	"context"
	"sync"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.TurnRepository = (*TurnRepository)(nil)

type TurnRepository struct {
	mu   sync.RWMutex
	turn *entities.TurnState
}

func NewTurnRepository() *TurnRepository {
	return &TurnRepository{}
}

func (r *TurnRepository) Get(_ context.Context) (*entities.TurnState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.turn == nil {
		return nil, domain.ErrTurnNotFound
	}
	t := r.turn.Clone()
	return &t, nil
}

func (r *TurnRepository) Save(_ context.Context, turn entities.TurnState, expectedVersion int64) (*entities.TurnState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stored int64
	if r.turn != nil {
		stored = r.turn.Version
	}
	if stored != expectedVersion {
		return nil, domain.ErrConcurrentUpdate
	}
	saved := turn.Clone()
	saved.Version = expectedVersion + 1
	r.turn = &saved
	out := saved.Clone()
	return &out, nil
}
