// Package vocabulary bridges MixRead's vocabulary records to the review
// core. The EntryStore owns canonical persistence; the Provider in this
// package adapts stored entries onto the review.Provider capability so the
// session orchestrator never sees a vocabulary-specific type.
package vocabulary

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mixread/srs-api/internal/domain"
)

// ErrEntryNotFound indicates that no vocabulary entry with the requested ID
// exists.
var ErrEntryNotFound = errors.New("vocabulary entry not found")

// Entry is the host's canonical record of one vocabulary word under study.
type Entry struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Word           string
	Status         domain.LearningStatus
	ReviewInterval int     // hours
	EaseFactor     float64 // bounded below by the engine's floor
	TotalReviews   int
	CorrectReviews int
	ReviewStreak   int
	NextReview     *time.Time // nil until the first review is scheduled
	AddedAt        time.Time
}

// NewEntry creates a vocabulary entry ready for its first review.
func NewEntry(userID uuid.UUID, word string) *Entry {
	return &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Word:       word,
		Status:     domain.StatusNew,
		EaseFactor: 2.5,
		AddedAt:    time.Now().UTC(),
	}
}

// ReviewUpdate carries the full post-review state the store must apply to
// one entry in a single write.
type ReviewUpdate struct {
	ID             uuid.UUID
	Status         domain.LearningStatus
	ReviewInterval int
	EaseFactor     float64
	TotalReviews   int
	CorrectReviews int
	ReviewStreak   int
	NextReview     time.Time
}

// EntryStore defines the persistence interface for vocabulary entries.
type EntryStore interface {
	// Create saves a new entry.
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListByStatus retrieves up to limit entries for a user with the given
	// status. Due entries come back most overdue first, new entries oldest
	// first; the ordering is this store's policy and callers just preserve
	// it.
	ListByStatus(
		ctx context.Context,
		userID uuid.UUID,
		status domain.LearningStatus,
		limit int,
	) ([]*Entry, error)

	// ApplyReviewResult writes the post-review state in one update.
	// Returns ErrEntryNotFound if the entry no longer exists.
	ApplyReviewResult(ctx context.Context, update ReviewUpdate) error
}
