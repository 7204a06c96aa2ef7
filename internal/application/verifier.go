package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/ports/output"
)

var ErrQueueFull = errors.New("verification queue is full")

const defaultQueueSize = 32

// VerificationJob is a pending walk waiting for the classifier.
type VerificationJob struct {
	WalkID string
	Image  []byte
}

// Completer receives verification outcomes. *WalkService implements it.
type Completer interface {
	Complete(ctx context.Context, walkID string, verdict output.Verdict, classifyErr error) error
	ExpirePending(ctx context.Context) (int, error)
}

type VerifierConfig struct {
	// Delay before a job is classified.
	Delay time.Duration
	// Timeout bounds a single classifier call.
	Timeout       time.Duration
	SweepInterval time.Duration
	QueueSize     int
}

// Verifier classifies pending walks in the background and expires the ones
// that never got an answer.
type Verifier struct {
	classifier output.Classifier
	cfg        VerifierConfig
	jobs       chan VerificationJob
	wg         sync.WaitGroup
}

func NewVerifier(classifier output.Classifier, cfg VerifierConfig) *Verifier {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &Verifier{
		classifier: classifier,
		cfg:        cfg,
		jobs:       make(chan VerificationJob, cfg.QueueSize),
	}
}

func (v *Verifier) Enqueue(job VerificationJob) error {
	select {
	case v.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run processes jobs until ctx is cancelled. Jobs still in their delay are
// dropped on shutdown and left pending; classifications already started run
// to completion.
func (v *Verifier) Run(ctx context.Context, c Completer) error {
	ticker := time.NewTicker(v.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			v.wg.Wait()
			return nil
		case job := <-v.jobs:
			v.wg.Add(1)
			go func() {
				defer v.wg.Done()
				v.verify(ctx, c, job)
			}()
		case <-ticker.C:
			n, err := c.ExpirePending(ctx)
			if err != nil {
				log.Printf("❌ Pending walk sweep: %v", err)
			} else if n > 0 {
				log.Printf("⏱️ %d pending walk(s) expired", n)
			}
		}
	}
}

func (v *Verifier) verify(ctx context.Context, c Completer, job VerificationJob) {
	if v.cfg.Delay > 0 {
		timer := time.NewTimer(v.cfg.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	runCtx := context.WithoutCancel(ctx)
	verdict, err := v.classify(runCtx, job.Image)
	if err := c.Complete(runCtx, job.WalkID, verdict, err); err != nil {
		log.Printf("❌ Walk %s: %v", job.WalkID, err)
	}
}

func (v *Verifier) classify(ctx context.Context, image []byte) (output.Verdict, error) {
	if v.classifier == nil {
		return output.Verdict{}, domain.ErrClassifierUnavailable
	}
	if v.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.Timeout)
		defer cancel()
	}
	return v.classifier.Classify(ctx, image)
}
