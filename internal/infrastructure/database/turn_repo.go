package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.TurnRepository = (*TurnRepository)(nil)

// turnID is the key of the single turn_state row.
const turnID = "current_turn"

type TurnRepository struct {
	db DBTX
}

func NewTurnRepository(db DBTX) *TurnRepository {
	return &TurnRepository{db: db}
}

func (r *TurnRepository) Get(ctx context.Context) (*entities.TurnState, error) {
	t, err := scanTurn(r.db.QueryRow(ctx, `SELECT `+turnColumns+` FROM turn_state WHERE id = $1`, turnID))
	if err != nil {
		return nil, wrap("get turn", err, domain.ErrTurnNotFound)
	}
	return &t, nil
}

// Save inserts the row when expectedVersion is 0 and otherwise updates it
// only if its version still matches. Zero rows back means another writer
// got there first.
func (r *TurnRepository) Save(ctx context.Context, turn entities.TurnState, expectedVersion int64) (*entities.TurnState, error) {
	var originalID, originalName string
	if turn.Original != nil {
		originalID, originalName = turn.Original.ID, turn.Original.Name
	}
	args := []any{
		turnID, turn.ParticipantID, turn.ParticipantName,
		textToPgtype(originalID), textToPgtype(originalName),
		string(turn.Status), turn.LastWalker, timeToPgtype(turn.UpdatedAt),
	}

	var row pgx.Row
	if expectedVersion == 0 {
		row = r.db.QueryRow(ctx, `
			INSERT INTO turn_state (id, participant_id, participant_name, original_id, original_name,
				status, last_walker, updated_at, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8::timestamptz, NOW()), 1)
			ON CONFLICT (id) DO NOTHING
			RETURNING `+turnColumns, args...)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE turn_state
			SET participant_id = $2, participant_name = $3, original_id = $4, original_name = $5,
				status = $6, last_walker = $7, updated_at = COALESCE($8::timestamptz, NOW()), version = version + 1
			WHERE id = $1 AND version = $9
			RETURNING `+turnColumns, append(args, expectedVersion)...)
	}

	saved, err := scanTurn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("save turn (expected version %d): %w", expectedVersion, domain.ErrConcurrentUpdate)
	}
	if err != nil {
		return nil, wrap("save turn", err, nil)
	}
	return &saved, nil
}
