package input

import (
	"context"

	"dogwalk/internal/domain/entities"
)

type ParticipantUseCase interface {
	List(ctx context.Context) ([]entities.Participant, error)
	Add(ctx context.Context, name, email, photoURL string) (*entities.Participant, error)
	SignIn(ctx context.Context, id, name, email, photoURL string) (*entities.Participant, error)
	AdjustBalance(ctx context.Context, id string, delta int) (*entities.Participant, error)
}
