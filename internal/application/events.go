package application

import (
	"sync"

	"dogwalk/internal/domain/entities"
)

const subscriberBuffer = 8

// TurnEvents fans committed turns out to subscribers. A subscriber that
// falls behind loses its oldest buffered turn, never the newest.
type TurnEvents struct {
	mu   sync.Mutex
	next int
	subs map[int]chan entities.TurnState
}

func NewTurnEvents() *TurnEvents {
	return &TurnEvents{subs: make(map[int]chan entities.TurnState)}
}

// Subscribe registers a listener. The returned cancel func closes the channel.
func (e *TurnEvents) Subscribe() (<-chan entities.TurnState, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.next
	e.next++
	ch := make(chan entities.TurnState, subscriberBuffer)
	e.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (e *TurnEvents) Publish(turn entities.TurnState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		t := turn.Clone()
		select {
		case ch <- t:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- t
		}
	}
}
