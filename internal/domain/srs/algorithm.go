package srs

import (
	"github.com/mixread/srs-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor after a review.
//
// The ease factor represents how easy an item is - higher values make the
// interval grow faster on each successful recall. The adjustment follows the
// SM-2 formula:
//
//	EF' = EF + (0.1 - (5 - q) * (0.08 + (5 - q) * 0.02))
//
// A perfect answer (quality 5) yields a positive delta of +0.1; a total
// blackout (quality 0) yields the most negative delta of -0.8. The result is
// clamped from below by params.MinEaseFactor so repeated failures can never
// push an item's ease under the floor.
func calculateNewEaseFactor(
	currentEF float64,
	quality domain.Quality,
	params *Params,
) float64 {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	newEF := currentEF + delta
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next review interval in hours.
//
// Interval selection separates "is the answer good enough to avoid a reset"
// from "how much to grow the interval":
//
//   - Failed recall (quality < 3): the interval resets to
//     params.ResetIntervalHours, no matter how long the item had grown.
//   - First successful review (current interval 0): params.FirstIntervalHours.
//   - Second successful review (current interval equals the first step):
//     params.SecondIntervalHours, a fixed graduation step independent of ease.
//   - Third and subsequent successful reviews: the interval grows
//     multiplicatively, truncated to whole hours: floor(current * newEase).
//
// newEase must be the ease factor already adjusted for this review; the
// multiplicative phase grows by the post-review ease, not the prior one.
func calculateNewInterval(
	currentInterval int,
	quality domain.Quality,
	newEase float64,
	params *Params,
) int {
	if !quality.IsCorrect() {
		return params.ResetIntervalHours
	}

	switch currentInterval {
	case 0:
		return params.FirstIntervalHours
	case params.FirstIntervalHours:
		return params.SecondIntervalHours
	default:
		return int(float64(currentInterval) * newEase)
	}
}

// statusForProgress derives a coarse learning status from review history.
//
// An item that has never been reviewed is still learning. One that has built
// a correct streak of params.MasteredStreak while its interval reached
// params.MasteredIntervalHours has graduated to mastered. Anything else that
// has been reviewed at least once is under active review.
//
// This derivation is informative for hosts that want a status label; the
// session orchestrator itself never branches on it.
func statusForProgress(
	totalReviews int,
	reviewStreak int,
	currentInterval int,
	params *Params,
) domain.LearningStatus {
	if totalReviews == 0 {
		return domain.StatusLearning
	}

	if reviewStreak >= params.MasteredStreak && currentInterval >= params.MasteredIntervalHours {
		return domain.StatusMastered
	}

	return domain.StatusReviewing
}
