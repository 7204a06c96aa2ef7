// Package classifier holds the stand-ins used in place of a real
// animal-presence model.
package classifier

import (
	"context"
	"math/rand/v2"
	"sync"

	"dogwalk/internal/ports/output"
)

var _ output.Classifier = (*Random)(nil)

// Random approves a photo with a fixed probability. Approved photos score
// between 0.85 and 0.95, the others 0.1.
type Random struct {
	mu          sync.Mutex
	rng         *rand.Rand
	approveRate float64
}

func NewRandom(approveRate float64, seed uint64) *Random {
	return &Random{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		approveRate: approveRate,
	}
}

func (r *Random) Classify(ctx context.Context, image []byte) (output.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return output.Verdict{}, err
	}
	if len(image) == 0 {
		return output.Verdict{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng.Float64() >= r.approveRate {
		return output.Verdict{Present: false, Confidence: 0.1}, nil
	}
	return output.Verdict{Present: true, Confidence: 0.85 + r.rng.Float64()*0.1}, nil
}
