package input

import (
	"context"

	"dogwalk/internal/domain/entities"
)

type TurnUseCase interface {
	Current(ctx context.Context) (*entities.TurnState, error)
	RequestReplacement(ctx context.Context) (*entities.TurnState, error)
	// Subscribe streams every committed turn until cancel is called.
	Subscribe() (<-chan entities.TurnState, func())
}
