package output

import "context"

// PhotoStore keeps walk photos and returns a reference clients can fetch.
type PhotoStore interface {
	Save(ctx context.Context, participantID, filename string, data []byte) (string, error)
	// Delete removes a photo by the reference Save returned. Unknown
	// references are not an error.
	Delete(ctx context.Context, url string) error
}
