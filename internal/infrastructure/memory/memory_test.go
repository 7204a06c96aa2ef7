package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

func TestParticipantRepository_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	r := NewParticipantRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	r.Create(ctx, &entities.Participant{ID: "late", CreatedAt: base.Add(time.Hour)})
	r.Create(ctx, &entities.Participant{ID: "tie-1", CreatedAt: base})
	r.Create(ctx, &entities.Participant{ID: "tie-2", CreatedAt: base})

	got, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"tie-1", "tie-2", "late"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestParticipantRepository_AdjustBalance(t *testing.T) {
	ctx := context.Background()
	r := NewParticipantRepository()
	r.Create(ctx, &entities.Participant{ID: "a"})

	p, err := r.AdjustBalance(ctx, "a", -2)
	if err != nil {
		t.Fatalf("AdjustBalance failed: %v", err)
	}
	if p.Balance != -2 {
		t.Errorf("Expected -2, got %d", p.Balance)
	}
	if _, err := r.AdjustBalance(ctx, "missing", 1); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Errorf("Expected ErrParticipantNotFound, got %v", err)
	}
}

func TestWalkRepository_PendingQueries(t *testing.T) {
	ctx := context.Background()
	r := NewWalkRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	r.Create(ctx, &entities.WalkEntry{ID: "old", Verdict: domain.VerdictPending, CreatedAt: base})
	r.Create(ctx, &entities.WalkEntry{ID: "done", Verdict: domain.VerdictApproved, CreatedAt: base.Add(time.Minute)})
	r.Create(ctx, &entities.WalkEntry{ID: "new", Verdict: domain.VerdictPending, CreatedAt: base.Add(2 * time.Minute)})

	latest, err := r.FindLatestPending(ctx)
	if err != nil || latest.ID != "new" {
		t.Fatalf("Expected latest pending new, got %v (%v)", latest, err)
	}
	stale, _ := r.FindPendingBefore(ctx, base.Add(time.Minute))
	if len(stale) != 1 || stale[0].ID != "old" {
		t.Fatalf("Expected [old], got %v", stale)
	}
	recent, _ := r.ListRecent(ctx, 2)
	if len(recent) != 2 || recent[0].ID != "new" || recent[1].ID != "done" {
		t.Fatalf("Expected [new done], got %v", recent)
	}
}

func TestWalkRepository_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	r := NewWalkRepository()
	r.Create(ctx, &entities.WalkEntry{ID: "w", Rejections: []string{"b"}})

	w, _ := r.FindByID(ctx, "w")
	w.Rejections[0] = "mutated"

	again, _ := r.FindByID(ctx, "w")
	if again.Rejections[0] != "b" {
		t.Fatalf("stored walk was mutated through a read: %v", again.Rejections)
	}
}

func TestTurnRepository_VersionCheck(t *testing.T) {
	ctx := context.Background()
	r := NewTurnRepository()

	if _, err := r.Get(ctx); !errors.Is(err, domain.ErrTurnNotFound) {
		t.Fatalf("Expected ErrTurnNotFound, got %v", err)
	}
	saved, err := r.Save(ctx, entities.TurnState{ParticipantID: "a"}, 0)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.Version != 1 {
		t.Fatalf("Expected version 1, got %d", saved.Version)
	}
	if _, err := r.Save(ctx, entities.TurnState{ParticipantID: "b"}, 0); !errors.Is(err, domain.ErrConcurrentUpdate) {
		t.Fatalf("Expected ErrConcurrentUpdate on stale create, got %v", err)
	}
	if _, err := r.Save(ctx, entities.TurnState{ParticipantID: "b"}, 1); err != nil {
		t.Fatalf("Save with current version failed: %v", err)
	}
}

func TestTurnRepository_ConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	r := NewTurnRepository()
	r.Save(ctx, entities.TurnState{ParticipantID: "a"}, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Save(ctx, entities.TurnState{ParticipantID: "b"}, 1); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("Expected exactly one writer to win, got %d", wins)
	}
}
