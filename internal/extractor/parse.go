package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/macuoit/articulation-backend/internal/model"
)

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ParseFencedTerms recovers the JSON array from a model reply. The reply
// is expected to carry a ```json fenced block; a bare JSON array is
// accepted as a fallback.
func ParseFencedTerms(text string) ([]model.TranscriptTerm, error) {
	raw := text
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	}
	raw = strings.TrimSpace(raw)

	var terms []model.TranscriptTerm
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, fmt.Errorf("parse extracted JSON: %w", err)
	}
	return terms, nil
}
