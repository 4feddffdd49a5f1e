package srs

import (
	"time"

	"github.com/mixread/srs-api/internal/domain"
)

// Engine defines the interface for SRS scheduling calculations.
//
// Implementations must be pure and deterministic apart from NextReviewTime's
// clock read: identical inputs always produce identical outputs, which is
// what makes the algorithm testable and usable for offline precomputation.
type Engine interface {
	// CalculateInterval computes the next review interval and the new ease
	// factor for a single graded review. currentInterval is in whole hours,
	// quality is the learner's 0-5 score, easeFactor is the item's current
	// ease. Returns domain.ErrInvalidQuality for out-of-range quality.
	CalculateInterval(
		currentInterval int,
		quality domain.Quality,
		easeFactor float64,
	) (nextInterval int, newEase float64, err error)

	// NextReviewTime returns the absolute timestamp at which an item with
	// the given interval becomes due: now plus intervalHours hours.
	NextReviewTime(intervalHours int) time.Time

	// StatusForProgress derives a coarse learning status from an item's
	// review history. correctReviews is accepted for completeness but the
	// derivation keys off the streak and interval.
	StatusForProgress(
		totalReviews int,
		correctReviews int,
		reviewStreak int,
		currentInterval int,
	) domain.LearningStatus
}

// defaultEngine is the standard implementation of the Engine interface.
type defaultEngine struct {
	params *Params
	now    func() time.Time
}

// NewEngine creates an Engine with default parameters.
func NewEngine() Engine {
	return &defaultEngine{
		params: NewDefaultParams(),
		now:    time.Now,
	}
}

// NewEngineWithParams creates an Engine with custom parameters.
func NewEngineWithParams(params *Params) Engine {
	return &defaultEngine{
		params: params,
		now:    time.Now,
	}
}

// NewEngineWithClock creates an Engine whose clock is supplied by the caller.
// Used by tests that need a deterministic NextReviewTime.
func NewEngineWithClock(params *Params, now func() time.Time) Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	if now == nil {
		now = time.Now
	}
	return &defaultEngine{
		params: params,
		now:    now,
	}
}

// Verify interface compliance at compile time
var _ Engine = (*defaultEngine)(nil)

// CalculateInterval implements Engine.CalculateInterval.
func (e *defaultEngine) CalculateInterval(
	currentInterval int,
	quality domain.Quality,
	easeFactor float64,
) (int, float64, error) {
	if err := quality.Validate(); err != nil {
		return 0, 0, err
	}

	newEase := calculateNewEaseFactor(easeFactor, quality, e.params)
	nextInterval := calculateNewInterval(currentInterval, quality, newEase, e.params)

	return nextInterval, newEase, nil
}

// NextReviewTime implements Engine.NextReviewTime.
func (e *defaultEngine) NextReviewTime(intervalHours int) time.Time {
	return e.now().Add(time.Duration(intervalHours) * time.Hour)
}

// StatusForProgress implements Engine.StatusForProgress.
func (e *defaultEngine) StatusForProgress(
	totalReviews int,
	correctReviews int,
	reviewStreak int,
	currentInterval int,
) domain.LearningStatus {
	_ = correctReviews
	return statusForProgress(totalReviews, reviewStreak, currentInterval, e.params)
}
