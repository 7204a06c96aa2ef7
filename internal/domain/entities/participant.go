package entities

import "time"

// Participant is a person in the walking rotation.
type Participant struct {
	ID        string
	Name      string
	Email     string
	PhotoURL  string
	Balance   int
	CreatedAt time.Time
}
