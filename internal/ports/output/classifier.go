package output

import "context"

// Verdict is what an animal-presence classifier says about one image.
type Verdict struct {
	Present    bool
	Confidence float64
}

// Classifier decides whether an image shows the dog. Calls are independent
// of each other; implementations may cache a loaded model.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Verdict, error)
}
