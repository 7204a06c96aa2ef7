package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"dogwalk/internal/domain/entities"
	"dogwalk/internal/infrastructure/classifier"
	"dogwalk/internal/infrastructure/memory"
	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

var epoch = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

// clock is a manual time source shared by the services under test.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type stubPhotos struct {
	mu      sync.Mutex
	saved   int
	deleted []string
}

func (s *stubPhotos) Save(_ context.Context, participantID, _ string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved++
	return fmt.Sprintf("/uploads/%s-%d.jpg", participantID, s.saved), nil
}

func (s *stubPhotos) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []VerificationJob
}

func (q *recordingQueue) Enqueue(job VerificationJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

type harness struct {
	clock        *clock
	participants *memory.ParticipantRepository
	walks        *memory.WalkRepository
	turnRepo     *memory.TurnRepository
	events       *TurnEvents
	photos       *stubPhotos
	queue        *recordingQueue
	turnSvc      *TurnService
	people       *ParticipantService
	walkSvc      *WalkService
}

func newHarness(t *testing.T, c output.Classifier, cfg WalkConfig) *harness {
	t.Helper()
	h := &harness{
		clock:        &clock{t: epoch},
		participants: memory.NewParticipantRepository(),
		walks:        memory.NewWalkRepository(),
		turnRepo:     memory.NewTurnRepository(),
		events:       NewTurnEvents(),
		photos:       &stubPhotos{},
		queue:        &recordingQueue{},
	}
	h.turnSvc = NewTurnService(h.turnRepo, h.participants, h.events, DefaultWriteRetries)
	h.turnSvc.now = h.clock.Now
	h.people = NewParticipantService(h.participants, h.turnSvc)
	h.people.now = h.clock.Now
	if c == nil {
		c = classifier.Fixed{Verdict: output.Verdict{Present: true, Confidence: 0.9}}
	}
	h.walkSvc = NewWalkService(h.walks, h.participants, h.photos, c, h.queue, h.turnSvc, cfg)
	h.walkSvc.now = h.clock.Now
	return h
}

// seed adds participants one second apart with the given balances.
func (h *harness) seed(t *testing.T, names []string, balances []int) []entities.Participant {
	t.Helper()
	ctx := context.Background()
	out := make([]entities.Participant, len(names))
	for i, name := range names {
		p, err := h.people.SignIn(ctx, name, name, "", "")
		if err != nil {
			t.Fatalf("sign in %s: %v", name, err)
		}
		if balances != nil && balances[i] != 0 {
			if p, err = h.people.AdjustBalance(ctx, p.ID, balances[i]); err != nil {
				t.Fatalf("adjust %s: %v", name, err)
			}
		}
		out[i] = *p
		h.clock.Advance(time.Second)
	}
	return out
}

func (h *harness) turn(t *testing.T) entities.TurnState {
	t.Helper()
	turn, err := h.turnSvc.Current(context.Background())
	if err != nil {
		t.Fatalf("current turn: %v", err)
	}
	return *turn
}

func submission(participantID string) input.Submission {
	return input.Submission{ParticipantID: participantID, Image: photo, Filename: "walk.jpg"}
}
