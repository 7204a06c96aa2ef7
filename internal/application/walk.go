package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/domain/rotation"
	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

var (
	_ input.WalkUseCase = (*WalkService)(nil)
	_ Completer         = (*WalkService)(nil)
	_ VerificationQueue = (*Verifier)(nil)
)

// Verification modes.
const (
	// ModeInline classifies before anything is stored; a negative verdict
	// abandons the submission.
	ModeInline = "inline"
	// ModeDeferred stores a pending walk and classifies it in the background.
	ModeDeferred = "deferred"
)

const defaultHistoryLimit = 20

type WalkConfig struct {
	Mode           string
	Quorum         int
	PendingTimeout time.Duration
	// HoldOverrides stores manually approved walks without rotating the turn.
	HoldOverrides bool
}

// VerificationQueue accepts walks that await the classifier.
type VerificationQueue interface {
	Enqueue(job VerificationJob) error
}

type WalkService struct {
	walkRepo        output.WalkRepository
	participantRepo output.ParticipantRepository
	photos          output.PhotoStore
	classifier      output.Classifier
	queue           VerificationQueue
	turns           *TurnService
	cfg             WalkConfig
	locks           *keyedMutex
	now             func() time.Time
}

func NewWalkService(
	walkRepo output.WalkRepository,
	participantRepo output.ParticipantRepository,
	photos output.PhotoStore,
	classifier output.Classifier,
	queue VerificationQueue,
	turns *TurnService,
	cfg WalkConfig,
) *WalkService {
	if cfg.Quorum < 1 {
		cfg.Quorum = domain.DefaultRejectionQuorum
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeDeferred
	}
	return &WalkService{
		walkRepo:        walkRepo,
		participantRepo: participantRepo,
		photos:          photos,
		classifier:      classifier,
		queue:           queue,
		turns:           turns,
		cfg:             cfg,
		locks:           newKeyedMutex(),
		now:             time.Now,
	}
}

func (s *WalkService) Submit(ctx context.Context, sub input.Submission) (*entities.WalkEntry, error) {
	if strings.TrimSpace(sub.ParticipantID) == "" {
		return nil, fmt.Errorf("%w: participant id is required", domain.ErrValidation)
	}
	if len(sub.Image) == 0 {
		return nil, fmt.Errorf("%w: photo is required", domain.ErrValidation)
	}
	participant, err := s.participantRepo.FindByID(ctx, sub.ParticipantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	walk := &entities.WalkEntry{
		ID:              uuid.NewString(),
		ParticipantID:   participant.ID,
		ParticipantName: participant.Name,
		Verdict:         domain.VerdictPending,
		CreatedAt:       now,
	}
	switch {
	case sub.ManualOverride:
		walk.Verdict = domain.VerdictApproved
		walk.ManualOverride = true
		walk.VerifiedAt = now
	case s.cfg.Mode == ModeInline:
		verdict, err := s.classify(ctx, sub.Image)
		if err != nil {
			return nil, fmt.Errorf("submit walk: %w", err)
		}
		if !verdict.Present {
			return nil, fmt.Errorf("submit walk: %w", domain.ErrAnimalNotDetected)
		}
		walk.Verdict = domain.VerdictApproved
		walk.Confidence = verdict.Confidence
		walk.VerifiedAt = now
	}

	url, err := s.photos.Save(ctx, participant.ID, sub.Filename, sub.Image)
	if err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}
	walk.PhotoURL = url
	if err := s.walkRepo.Create(ctx, walk); err != nil {
		if derr := s.photos.Delete(ctx, url); derr != nil {
			log.Printf("⚠️ Walk %s: orphaned photo %s: %v", walk.ID, url, derr)
		}
		return nil, fmt.Errorf("create walk: %w", err)
	}

	if walk.Verdict == domain.VerdictApproved {
		if walk.ManualOverride && s.cfg.HoldOverrides {
			log.Printf("✋ Walk %s: manual override recorded, turn kept", walk.ID)
			return walk, nil
		}
		if _, err := s.turns.CommitRotation(ctx, submitterOf(walk)); err != nil {
			return nil, fmt.Errorf("rotate after walk %s: %w", walk.ID, err)
		}
		return walk, nil
	}

	if _, err := s.turns.MarkVerifying(ctx, participant.ID); err != nil {
		log.Printf("⚠️ Walk %s: could not flag turn as verifying: %v", walk.ID, err)
	}
	if err := s.queue.Enqueue(VerificationJob{WalkID: walk.ID, Image: sub.Image}); err != nil {
		log.Printf("⚠️ Walk %s: not queued for verification, it will expire: %v", walk.ID, err)
	}
	return walk, nil
}

func (s *WalkService) List(ctx context.Context, limit int) ([]entities.WalkEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.walkRepo.ListRecent(ctx, limit)
}

// Pending returns the latest walk awaiting verification, or nil.
func (s *WalkService) Pending(ctx context.Context) (*entities.WalkEntry, error) {
	walk, err := s.walkRepo.FindLatestPending(ctx)
	if errors.Is(err, domain.ErrWalkNotFound) {
		return nil, nil
	}
	return walk, err
}

// Reject records voterID's vote against a walk. The vote that reaches the
// quorum rejects the walk and hands the turn back to its submitter. The turn
// is reverted before the walk is stored as rejected; if the revert fails the
// vote is not recorded and may be cast again.
func (s *WalkService) Reject(ctx context.Context, walkID, voterID string) (*input.VoteResult, error) {
	if strings.TrimSpace(walkID) == "" || strings.TrimSpace(voterID) == "" {
		return nil, fmt.Errorf("%w: walk id and voter id are required", domain.ErrValidation)
	}
	if _, err := s.participantRepo.FindByID(ctx, voterID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(walkID)
	defer unlock()

	walk, err := s.walkRepo.FindByID(ctx, walkID)
	if err != nil {
		return nil, err
	}
	if walk.IsPending() {
		return nil, domain.ErrWalkPending
	}

	result := &input.VoteResult{Quorum: s.cfg.Quorum}
	updated, changed := rotation.AddRejectionVote(*walk, voterID)
	if changed {
		rejectedNow := false
		if rotation.QuorumReached(updated, s.cfg.Quorum) {
			updated, rejectedNow = rotation.Reject(updated, s.now())
		}
		if rejectedNow {
			if _, err := s.turns.RevertTo(ctx, updated); err != nil {
				return nil, fmt.Errorf("revert turn: %w", err)
			}
		}
		if err := s.walkRepo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("record vote: %w", err)
		}
		if rejectedNow {
			log.Printf("🗳️ Walk %s rejected by consensus, turn handed back to %s", updated.ID, updated.ParticipantName)
			result.Reverted = true
		}
	}

	result.Walk = updated
	result.Votes = len(updated.Rejections)
	result.Rejected = updated.Verdict == domain.VerdictRejected
	return result, nil
}

// Complete applies a classifier outcome to a pending walk. Walks decided in
// the meantime are left untouched. A classifier error rejects the walk.
func (s *WalkService) Complete(ctx context.Context, walkID string, verdict output.Verdict, classifyErr error) error {
	unlock := s.locks.Lock(walkID)
	defer unlock()

	walk, err := s.walkRepo.FindByID(ctx, walkID)
	if err != nil {
		return err
	}
	if !walk.IsPending() {
		return nil
	}

	walk.VerifiedAt = s.now()
	switch {
	case classifyErr != nil:
		log.Printf("❌ Walk %s: verification failed, rejecting: %v", walk.ID, classifyErr)
		walk.Verdict = domain.VerdictRejected
		walk.Confidence = 0
	case verdict.Present:
		walk.Verdict = domain.VerdictApproved
		walk.Confidence = verdict.Confidence
	default:
		walk.Verdict = domain.VerdictRejected
		walk.Confidence = verdict.Confidence
	}
	if err := s.walkRepo.Update(ctx, walk); err != nil {
		return fmt.Errorf("store verdict: %w", err)
	}
	log.Printf("🔎 Walk %s: %s (score %.2f)", walk.ID, walk.Verdict, walk.Confidence)

	if walk.Verdict == domain.VerdictApproved {
		_, err = s.turns.CommitRotation(ctx, submitterOf(walk))
	} else {
		_, err = s.turns.MarkWaiting(ctx, walk.ParticipantID)
	}
	return err
}

// ExpirePending rejects walks that waited longer than the pending timeout.
func (s *WalkService) ExpirePending(ctx context.Context) (int, error) {
	if s.cfg.PendingTimeout <= 0 {
		return 0, nil
	}
	stale, err := s.walkRepo.FindPendingBefore(ctx, s.now().Add(-s.cfg.PendingTimeout))
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, w := range stale {
		err := s.Complete(ctx, w.ID, output.Verdict{}, fmt.Errorf("pending for more than %s", s.cfg.PendingTimeout))
		if err != nil {
			return expired, fmt.Errorf("expire walk %s: %w", w.ID, err)
		}
		expired++
	}
	return expired, nil
}

func (s *WalkService) classify(ctx context.Context, image []byte) (output.Verdict, error) {
	if s.classifier == nil {
		return output.Verdict{}, domain.ErrClassifierUnavailable
	}
	verdict, err := s.classifier.Classify(ctx, image)
	if err != nil && !errors.Is(err, domain.ErrClassifierUnavailable) {
		err = fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	return verdict, err
}

func submitterOf(w *entities.WalkEntry) entities.ParticipantRef {
	return entities.ParticipantRef{ID: w.ParticipantID, Name: w.ParticipantName}
}
