// Package source defines the contract for external capture sources
// that feed items into the task and link collections.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthError indicates that authentication has failed or expired for a
// source. Pollers stop retrying until the credentials change.
type AuthError struct {
	Source  string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Source, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ItemKind names the collection an imported item belongs to.
type ItemKind string

const (
	ItemTask ItemKind = "task"
	ItemLink ItemKind = "link"
)

// Item is one captured entry fetched from a source.
type Item struct {
	// Kind selects the destination collection.
	Kind ItemKind

	// Text is the task text or link input.
	Text string

	// Ref is the source's handle for this item, passed back to
	// MarkProcessed after a successful import.
	Ref string

	// Received is when the source first saw the item.
	Received time.Time
}

// Source defines the contract that every capture source implements.
type Source interface {
	// Name returns a short identifier used in logs and notices.
	Name() string

	// Validate verifies credentials and connectivity. Returns a
	// human-readable status message on success.
	Validate(ctx context.Context) (string, error)

	// FetchItems retrieves the pending items waiting at the source.
	FetchItems(ctx context.Context) ([]Item, error)

	// MarkProcessed tells the source the given items were imported,
	// so they are not fetched again.
	MarkProcessed(ctx context.Context, refs []string) error
}
