package lyrics

import (
	"fmt"

	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/shared"
)

// Merge pairs a and b by position.
//
// The shorter sequence is padded with empty lines. A pair with both sides empty is never emitted.
// Fails with [shared.ErrMissingInput] when either sequence is empty.
func Merge(a, b []string) (models.Document, error) {
	if len(a) == 0 || len(b) == 0 {
		return models.Document{}, fmt.Errorf("%w: both lyrics fields must contain text", shared.ErrMissingInput)
	}

	n := max(len(a), len(b))
	pairs := make([]models.Pair, 0, n)
	for i := range n {
		var p models.Pair
		if i < len(a) {
			p.First = a[i]
		}
		if i < len(b) {
			p.Second = b[i]
		}
		if p.Empty() {
			continue
		}
		pairs = append(pairs, p)
	}

	return models.NewDocument(pairs), nil
}

// MergeText normalizes both texts with [LyricsProfile] and merges them.
func MergeText(first, second string) (models.Document, error) {
	return Merge(Normalize(first), Normalize(second))
}
