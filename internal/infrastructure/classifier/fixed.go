package classifier

import (
	"context"

	"dogwalk/internal/domain"
	"dogwalk/internal/ports/output"
)

var (
	_ output.Classifier = Fixed{}
	_ output.Classifier = Unavailable{}
)

// Fixed always answers with the same verdict, or Err when set.
type Fixed struct {
	Verdict output.Verdict
	Err     error
}

func (f Fixed) Classify(ctx context.Context, _ []byte) (output.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return output.Verdict{}, err
	}
	return f.Verdict, f.Err
}

// Unavailable is used when classification is switched off.
type Unavailable struct{}

func (Unavailable) Classify(context.Context, []byte) (output.Verdict, error) {
	return output.Verdict{}, domain.ErrClassifierUnavailable
}
