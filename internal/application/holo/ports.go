package holo

import (
	"context"
	"fmt"
)

// ArtifactStore writes shipping-label artifacts to named paths. Writes are
// idempotent: storing the same key twice overwrites the previous content.
type ArtifactStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
}

// LabelFetcher retrieves shipping-label bytes from a carrier URL.
// Implementations bound the call with a timeout and may retry once.
type LabelFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LabelFetchError reports a failed label download. The fulfillment service
// inspects it to decide between proceeding with an empty artifact and
// aborting the transition.
type LabelFetchError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *LabelFetchError) Error() string {
	return fmt.Sprintf("fetching shipping label from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *LabelFetchError) Unwrap() error {
	return e.Err
}

// OrderLocker serializes fulfillment calls per order. Acquire returns a
// release function on success and shared.ErrConcurrencyConflict when another
// call already holds the lock.
type OrderLocker interface {
	Acquire(ctx context.Context, orderID string) (release func(), err error)
}
