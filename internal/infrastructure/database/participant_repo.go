package database

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository with pgx.
type ParticipantRepository struct {
	db DBTX
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(db DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO participants (id, name, email, photo_url, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()))
		RETURNING `+participantColumns,
		participant.ID, participant.Name, participant.Email, participant.PhotoURL,
		participant.Balance, timeToPgtype(participant.CreatedAt))
	p, err := scanParticipant(row)
	if err != nil {
		return wrap("create participant", err, nil)
	}
	*participant = p
	return nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id string) (*entities.Participant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	p, err := scanParticipant(row)
	if err != nil {
		return nil, wrap("get participant by id", err, domain.ErrParticipantNotFound)
	}
	return &p, nil
}

func (r *ParticipantRepository) List(ctx context.Context) ([]entities.Participant, error) {
	rows, err := r.db.Query(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY created_at, seq`)
	if err != nil {
		return nil, wrap("list participants", err, nil)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Participant, error) {
		return scanParticipant(row)
	})
	if err != nil {
		return nil, wrap("list participants", err, nil)
	}
	return out, nil
}

func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM participants`).Scan(&n); err != nil {
		return 0, wrap("count participants", err, nil)
	}
	return n, nil
}

func (r *ParticipantRepository) AdjustBalance(ctx context.Context, id string, delta int) (*entities.Participant, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE participants SET balance = balance + $2
		WHERE id = $1
		RETURNING `+participantColumns, id, delta)
	p, err := scanParticipant(row)
	if err != nil {
		return nil, wrap("adjust balance", err, domain.ErrParticipantNotFound)
	}
	return &p, nil
}
