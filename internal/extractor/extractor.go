// Package extractor wraps the external document-understanding call that
// turns a transcript PDF into structured term/course data. The rest of the
// system depends only on the Extractor interface; everything about layout,
// OCR, and grading-legend interpretation lives behind the API call.
package extractor

import (
	"context"

	"github.com/macuoit/articulation-backend/internal/model"
)

// Extractor converts a transcript PDF into extracted terms.
type Extractor interface {
	Extract(ctx context.Context, pdf []byte) ([]model.TranscriptTerm, *model.TokenUsage, error)
}
