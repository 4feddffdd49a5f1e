// Package review implements the spaced-repetition session core: the
// provider boundary the host plugs into, the card view handed to learners,
// per-session statistics, and the session orchestrator that walks a batch
// of cards through the scheduling engine.
//
// The package owns no storage and performs no I/O of its own; everything it
// needs from the outside world arrives through the Provider capability.
package review

import (
	"context"
	"errors"

	"github.com/mixread/srs-api/internal/domain"
)

// Common errors returned across the review package.
var (
	// ErrItemNotFound indicates that a provider has no item with the
	// requested ID.
	ErrItemNotFound = errors.New("learning item not found")

	// ErrSessionAlreadyBuilt indicates that BuildSession was called on a
	// session whose batch was already populated. Sessions are single-use.
	ErrSessionAlreadyBuilt = errors.New("review session already built")
)

// DefaultBatchLimit is the per-status item limit used when a session build
// does not specify one.
const DefaultBatchLimit = 20

// Provider is the data-access boundary the review core calls into. The host
// application implements it to bridge its own records to the core; any
// storage technology, ordering policy, or caching strategy is free to vary
// behind this interface.
//
// The core depends on these three operations and nothing else. Provider
// calls may block on I/O; the core places no requirement on how the host
// executes them beyond eventually returning or failing.
type Provider interface {
	// GetItemByID retrieves a single learning item. Returns ErrItemNotFound
	// if no item with the given ID exists.
	GetItemByID(ctx context.Context, itemID string) (domain.LearningItem, error)

	// GetItemsByStatus retrieves up to limit items with the given status.
	// The ordering of the returned slice is entirely the host's choice
	// (for example most-overdue-first) and is preserved by the session.
	GetItemsByStatus(
		ctx context.Context,
		status domain.LearningStatus,
		limit int,
	) ([]domain.LearningItem, error)

	// SaveReviewResult applies a graded review to the host's canonical
	// record: interval, ease factor and next review time. The result is the
	// single source of truth for the update. If the identified item no
	// longer exists the host must silently no-op; the core has already
	// computed the in-memory result.
	SaveReviewResult(ctx context.Context, result domain.ReviewResult) error
}
