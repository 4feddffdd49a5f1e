package domain

import (
	"errors"
	"time"
)

// LearningStatus classifies where an item sits in its review lifecycle.
// The set is closed; every switch over it should handle all five values.
type LearningStatus string

// Possible learning status values
const (
	StatusNew       LearningStatus = "new"       // never reviewed
	StatusLearning  LearningStatus = "learning"  // in early repetition
	StatusReviewing LearningStatus = "reviewing" // under active spaced review
	StatusDue       LearningStatus = "due"       // past its scheduled review time
	StatusMastered  LearningStatus = "mastered"  // graduated
)

// Validation errors shared by the learning item and review result types.
var (
	// ErrItemIDEmpty is returned when a learning item ID is empty.
	ErrItemIDEmpty = errors.New("learning item ID cannot be empty")

	// ErrInvalidStatus is returned when a learning status is not one of the
	// five known values.
	ErrInvalidStatus = errors.New("invalid learning status")

	// ErrInvalidInterval is returned when a review interval is negative.
	ErrInvalidInterval = errors.New("review interval must be greater than or equal to 0")

	// ErrInvalidQuality is returned when a quality score falls outside 0-5.
	// Callers must treat this as a contract violation, not clamp the value.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)

// IsValid reports whether s is one of the known learning statuses.
func (s LearningStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReviewing, StatusDue, StatusMastered:
		return true
	default:
		return false
	}
}

// Quality is the learner's feedback on a single review, 0 (total failure)
// through 5 (perfect recall). Scores of 3 and above count as successful.
type Quality int

// MaxQuality is the highest valid quality score.
const MaxQuality Quality = 5

// CorrectThreshold is the lowest quality score treated as a successful recall.
const CorrectThreshold Quality = 3

// Validate returns ErrInvalidQuality if q is outside [0, 5].
func (q Quality) Validate() error {
	if q < 0 || q > MaxQuality {
		return ErrInvalidQuality
	}
	return nil
}

// IsCorrect reports whether q counts as a successful recall.
func (q Quality) IsCorrect() bool {
	return q >= CorrectThreshold
}

// LearningItem is the capability every reviewable thing must expose to the
// scheduling core. Applications adapt their own records to this interface;
// the core never mutates an item in place and never persists one. An item
// handed to the core is a read view constructed on demand - the host keeps
// the canonical record.
type LearningItem interface {
	// ItemID returns the opaque identifier of the item.
	ItemID() string

	// Content returns the opaque payload to render during review. The core
	// never inspects it.
	Content() map[string]any

	// Status returns the item's current learning status as classified by
	// the host's provider.
	Status() LearningStatus

	// ReviewInterval returns the current scheduling interval in whole hours.
	ReviewInterval() int

	// EaseFactor returns the item's SM-2 ease factor.
	EaseFactor() float64

	// CreatedAt returns when the item was first added.
	CreatedAt() time.Time
}
