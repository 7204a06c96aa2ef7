package application

import (
	"testing"

	"dogwalk/internal/domain/entities"
)

func TestTurnEventsSlowSubscriberKeepsNewest(t *testing.T) {
	e := NewTurnEvents()
	ch, cancel := e.Subscribe()
	defer cancel()

	for v := int64(1); v <= subscriberBuffer+3; v++ {
		e.Publish(entities.TurnState{Version: v})
	}

	var last int64
	for i := 0; i < subscriberBuffer; i++ {
		last = (<-ch).Version
	}
	if last != subscriberBuffer+3 {
		t.Fatalf("expected newest version %d, got %d", subscriberBuffer+3, last)
	}
}

func TestTurnEventsCancelClosesChannel(t *testing.T) {
	e := NewTurnEvents()
	ch, cancel := e.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	e.Publish(entities.TurnState{Version: 1})
}

func TestTurnEventsDeliverCopies(t *testing.T) {
	e := NewTurnEvents()
	a, cancelA := e.Subscribe()
	defer cancelA()
	b, cancelB := e.Subscribe()
	defer cancelB()

	e.Publish(entities.TurnState{ParticipantID: "x", Original: &entities.ParticipantRef{ID: "o"}})
	got := <-a
	got.Original.ID = "mutated"
	if other := <-b; other.Original.ID != "o" {
		t.Fatalf("subscribers share state: %+v", other.Original)
	}
}
