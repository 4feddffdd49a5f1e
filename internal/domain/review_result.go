package domain

import "time"

// ReviewResult is the sole output of a graded review. The engine computes it,
// the host applies it via its ReviewProvider implementation. It is immutable
// once constructed; the unexported fields keep callers from editing a result
// after the fact.
type ReviewResult struct {
	itemID         string
	quality        Quality
	newInterval    int
	newEase        float64
	nextReviewTime time.Time
}

// NewReviewResult builds a validated, immutable ReviewResult.
// Returns ErrItemIDEmpty, ErrInvalidQuality or ErrInvalidInterval when the
// inputs violate the result's invariants.
func NewReviewResult(
	itemID string,
	quality Quality,
	newInterval int,
	newEase float64,
	nextReviewTime time.Time,
) (ReviewResult, error) {
	if itemID == "" {
		return ReviewResult{}, ErrItemIDEmpty
	}
	if err := quality.Validate(); err != nil {
		return ReviewResult{}, err
	}
	if newInterval < 0 {
		return ReviewResult{}, ErrInvalidInterval
	}

	return ReviewResult{
		itemID:         itemID,
		quality:        quality,
		newInterval:    newInterval,
		newEase:        newEase,
		nextReviewTime: nextReviewTime,
	}, nil
}

// ItemID returns the identifier of the reviewed item.
func (r ReviewResult) ItemID() string { return r.itemID }

// Quality returns the learner's quality score for the review.
func (r ReviewResult) Quality() Quality { return r.quality }

// NewInterval returns the newly computed interval in hours.
func (r ReviewResult) NewInterval() int { return r.newInterval }

// NewEase returns the newly computed ease factor.
func (r ReviewResult) NewEase() float64 { return r.newEase }

// NextReviewTime returns the absolute timestamp of the next scheduled review.
func (r ReviewResult) NextReviewTime() time.Time { return r.nextReviewTime }
