package output

import (
	"context"

	"dogwalk/internal/domain/entities"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entities.Participant) error
	FindByID(ctx context.Context, id string) (*entities.Participant, error)
	// List returns the roster ordered by creation time.
	List(ctx context.Context) ([]entities.Participant, error)
	Count(ctx context.Context) (int64, error)
	AdjustBalance(ctx context.Context, id string, delta int) (*entities.Participant, error)
}
