// Package memory keeps the roster, walk log and turn in process memory.
// Every read returns copies so callers cannot mutate stored records.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	mu   sync.RWMutex
	byID map[string]entities.Participant
	// seq breaks creation-time ties in insertion order.
	seq   map[string]int
	count int
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{
		byID: make(map[string]entities.Participant),
		seq:  make(map[string]int),
	}
}

func (r *ParticipantRepository) Create(_ context.Context, participant *entities.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[participant.ID]; ok {
		return fmt.Errorf("create participant %s: %w: duplicate id", participant.ID, domain.ErrPersistence)
	}
	r.byID[participant.ID] = *participant
	r.seq[participant.ID] = r.count
	r.count++
	return nil
}

func (r *ParticipantRepository) FindByID(_ context.Context, id string) (*entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *ParticipantRepository) List(_ context.Context) ([]entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Participant, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})
	return out, nil
}

func (r *ParticipantRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

func (r *ParticipantRepository) AdjustBalance(_ context.Context, id string, delta int) (*entities.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	p.Balance += delta
	r.byID[id] = p
	return &p, nil
}
