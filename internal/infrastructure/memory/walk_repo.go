package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.WalkRepository = (*WalkRepository)(nil)

type WalkRepository struct {
	mu    sync.RWMutex
	walks []entities.WalkEntry // insertion order
	index map[string]int
}

func NewWalkRepository() *WalkRepository {
	return &WalkRepository{index: make(map[string]int)}
}

func (r *WalkRepository) Create(_ context.Context, walk *entities.WalkEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[walk.ID]; ok {
		return fmt.Errorf("create walk %s: %w: duplicate id", walk.ID, domain.ErrPersistence)
	}
	r.index[walk.ID] = len(r.walks)
	r.walks = append(r.walks, walk.Clone())
	return nil
}

func (r *WalkRepository) FindByID(_ context.Context, id string) (*entities.WalkEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrWalkNotFound
	}
	w := r.walks[i].Clone()
	return &w, nil
}

// recent returns matching walks newest first. Caller holds r.mu.
func (r *WalkRepository) recent(match func(entities.WalkEntry) bool) []entities.WalkEntry {
	out := make([]entities.WalkEntry, 0)
	for i := len(r.walks) - 1; i >= 0; i-- {
		if match(r.walks[i]) {
			out = append(out, r.walks[i].Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *WalkRepository) ListRecent(_ context.Context, limit int) ([]entities.WalkEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.recent(func(entities.WalkEntry) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WalkRepository) FindLatestPending(_ context.Context) (*entities.WalkEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.recent(func(w entities.WalkEntry) bool { return w.IsPending() })
	if len(out) == 0 {
		return nil, domain.ErrWalkNotFound
	}
	return &out[0], nil
}

func (r *WalkRepository) FindPendingBefore(_ context.Context, cutoff time.Time) ([]entities.WalkEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.recent(func(w entities.WalkEntry) bool {
		return w.IsPending() && w.CreatedAt.Before(cutoff)
	}), nil
}

func (r *WalkRepository) Update(_ context.Context, walk *entities.WalkEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[walk.ID]
	if !ok {
		return domain.ErrWalkNotFound
	}
	stored := &r.walks[i]
	stored.Verdict = walk.Verdict
	stored.Confidence = walk.Confidence
	stored.VerifiedAt = walk.VerifiedAt
	stored.Rejections = append([]string(nil), walk.Rejections...)
	return nil
}
