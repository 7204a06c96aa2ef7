package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtype maps the zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// wrap turns a driver error into a domain error. pgx.ErrNoRows becomes
// notFound when one is given.
func wrap(op string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

const participantColumns = `id, name, email, photo_url, balance, created_at`

func scanParticipant(row pgx.Row) (entities.Participant, error) {
	var (
		p         entities.Participant
		balance   int32
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PhotoURL, &balance, &createdAt); err != nil {
		return entities.Participant{}, err
	}
	p.Balance = int(balance)
	p.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return p, nil
}

const walkColumns = `id, participant_id, participant_name, photo_url, verdict, confidence,
	manual_override, rejections, created_at, verified_at`

func scanWalk(row pgx.Row) (entities.WalkEntry, error) {
	var (
		w          entities.WalkEntry
		verdict    string
		createdAt  pgtype.Timestamptz
		verifiedAt pgtype.Timestamptz
	)
	err := row.Scan(&w.ID, &w.ParticipantID, &w.ParticipantName, &w.PhotoURL, &verdict, &w.Confidence,
		&w.ManualOverride, &w.Rejections, &createdAt, &verifiedAt)
	if err != nil {
		return entities.WalkEntry{}, err
	}
	w.Verdict = domain.Verdict(verdict)
	w.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	w.VerifiedAt = pgtypeTimestamptzToTime(verifiedAt)
	return w, nil
}

func collectWalks(rows pgx.Rows) ([]entities.WalkEntry, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.WalkEntry, error) {
		return scanWalk(row)
	})
}

const turnColumns = `participant_id, participant_name, original_id, original_name, status,
	last_walker, updated_at, version`

func scanTurn(row pgx.Row) (entities.TurnState, error) {
	var (
		t            entities.TurnState
		originalID   pgtype.Text
		originalName pgtype.Text
		status       string
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(&t.ParticipantID, &t.ParticipantName, &originalID, &originalName, &status,
		&t.LastWalker, &updatedAt, &t.Version)
	if err != nil {
		return entities.TurnState{}, err
	}
	if originalID.Valid {
		t.Original = &entities.ParticipantRef{ID: originalID.String, Name: originalName.String}
	}
	t.Status = domain.TurnStatus(status)
	t.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return t, nil
}
