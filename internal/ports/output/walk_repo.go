package output

import (
	"context"
	"time"

	"dogwalk/internal/domain/entities"
)

type WalkRepository interface {
	Create(ctx context.Context, walk *entities.WalkEntry) error
	FindByID(ctx context.Context, id string) (*entities.WalkEntry, error)
	ListRecent(ctx context.Context, limit int) ([]entities.WalkEntry, error)
	FindLatestPending(ctx context.Context) (*entities.WalkEntry, error)
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]entities.WalkEntry, error)
	// Update persists the mutable fields: verdict, confidence, verified time
	// and rejections.
	Update(ctx context.Context, walk *entities.WalkEntry) error
}
