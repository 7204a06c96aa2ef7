package output

import (
	"context"

	"dogwalk/internal/domain/entities"
)

type TurnRepository interface {
	// Get returns domain.ErrTurnNotFound when no turn was ever stored.
	Get(ctx context.Context) (*entities.TurnState, error)
	// Save writes turn if the stored version equals expectedVersion (0 means
	// the turn must not exist yet) and returns it with its new version.
	// A mismatch yields domain.ErrConcurrentUpdate.
	Save(ctx context.Context, turn entities.TurnState, expectedVersion int64) (*entities.TurnState, error)
}
