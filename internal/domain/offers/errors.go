package offers

import "errors"

var (
	// ErrUpstream marks any transport or protocol failure talking to a
	// marketplace API or the feed host.
	ErrUpstream = errors.New("upstream failure")

	// ErrMalformedRecord marks a feed row whose quantity or price text
	// cannot be normalized.
	ErrMalformedRecord = errors.New("malformed feed record")

	// ErrChunkSize marks a non-positive batch size.
	ErrChunkSize = errors.New("chunk size must be positive")
)
