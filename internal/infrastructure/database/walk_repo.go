package database

import (
	"context"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

var _ output.WalkRepository = (*WalkRepository)(nil)

// WalkRepository implements output.WalkRepository with pgx. Rejections are
// kept in a text[] column.
type WalkRepository struct {
	db DBTX
}

func NewWalkRepository(db DBTX) *WalkRepository {
	return &WalkRepository{db: db}
}

func (r *WalkRepository) Create(ctx context.Context, walk *entities.WalkEntry) error {
	rejections := walk.Rejections
	if rejections == nil {
		rejections = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO walks (id, participant_id, participant_name, photo_url, verdict, confidence,
			manual_override, rejections, created_at, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, NOW()), $10)`,
		walk.ID, walk.ParticipantID, walk.ParticipantName, walk.PhotoURL, string(walk.Verdict),
		walk.Confidence, walk.ManualOverride, rejections, timeToPgtype(walk.CreatedAt),
		timeToPgtype(walk.VerifiedAt))
	if err != nil {
		return wrap("create walk", err, nil)
	}
	return nil
}

func (r *WalkRepository) FindByID(ctx context.Context, id string) (*entities.WalkEntry, error) {
	w, err := scanWalk(r.db.QueryRow(ctx, `SELECT `+walkColumns+` FROM walks WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get walk by id", err, domain.ErrWalkNotFound)
	}
	return &w, nil
}

func (r *WalkRepository) ListRecent(ctx context.Context, limit int) ([]entities.WalkEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+walkColumns+` FROM walks ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, wrap("list walks", err, nil)
	}
	out, err := collectWalks(rows)
	if err != nil {
		return nil, wrap("list walks", err, nil)
	}
	return out, nil
}

func (r *WalkRepository) FindLatestPending(ctx context.Context) (*entities.WalkEntry, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+walkColumns+` FROM walks
		WHERE verdict = $1
		ORDER BY created_at DESC LIMIT 1`, string(domain.VerdictPending))
	w, err := scanWalk(row)
	if err != nil {
		return nil, wrap("get latest pending walk", err, domain.ErrWalkNotFound)
	}
	return &w, nil
}

func (r *WalkRepository) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]entities.WalkEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+walkColumns+` FROM walks
		WHERE verdict = $1 AND created_at < $2
		ORDER BY created_at`, string(domain.VerdictPending), cutoff)
	if err != nil {
		return nil, wrap("list pending walks", err, nil)
	}
	out, err := collectWalks(rows)
	if err != nil {
		return nil, wrap("list pending walks", err, nil)
	}
	return out, nil
}

func (r *WalkRepository) Update(ctx context.Context, walk *entities.WalkEntry) error {
	rejections := walk.Rejections
	if rejections == nil {
		rejections = []string{}
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE walks
		SET verdict = $2, confidence = $3, verified_at = $4, rejections = $5
		WHERE id = $1`,
		walk.ID, string(walk.Verdict), walk.Confidence, timeToPgtype(walk.VerifiedAt), rejections)
	if err != nil {
		return wrap("update walk", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalkNotFound
	}
	return nil
}
