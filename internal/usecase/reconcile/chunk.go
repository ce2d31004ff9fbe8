package reconcile

import (
	"fmt"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

// Chunk splits records into consecutive sub-slices of at most n elements;
// the last chunk may be shorter. Concatenating the chunks in order yields
// the input exactly once. Empty input yields no chunks.
func Chunk[T any](records []T, n int) ([][]T, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", offers.ErrChunkSize, n)
	}
	if len(records) == 0 {
		return nil, nil
	}
	out := make([][]T, 0, (len(records)+n-1)/n)
	for i := 0; i < len(records); i += n {
		end := i + n
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[i:end:end])
	}
	return out, nil
}
