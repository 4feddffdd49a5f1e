package review

import (
	"time"

	"github.com/mixread/srs-api/internal/domain"
)

// SessionStats accumulates per-session metrics. A fresh instance is created
// for every session and discarded when the session ends; all counters are
// append-only for the session's lifetime.
type SessionStats struct {
	startTime           time.Time
	cardsReviewed       int
	correctCount        int
	streak              int
	qualityDistribution [int(domain.MaxQuality) + 1]int

	now func() time.Time
}

// NewSessionStats creates stats anchored at the current time.
func NewSessionStats() *SessionStats {
	return newSessionStats(time.Now)
}

func newSessionStats(now func() time.Time) *SessionStats {
	return &SessionStats{
		startTime: now(),
		now:       now,
	}
}

// RecordAnswer folds one graded answer into the session's counters: the
// review count and the quality histogram always advance; a correct answer
// (quality >= 3) extends the streak, any other answer resets it to zero.
// Quality must already be validated by the caller.
func (s *SessionStats) RecordAnswer(quality domain.Quality) {
	s.cardsReviewed++
	s.qualityDistribution[quality]++

	if quality.IsCorrect() {
		s.correctCount++
		s.streak++
	} else {
		s.streak = 0
	}
}

// CardsReviewed returns the number of answers recorded so far.
func (s *SessionStats) CardsReviewed() int { return s.cardsReviewed }

// CorrectCount returns the number of correct answers recorded so far.
func (s *SessionStats) CorrectCount() int { return s.correctCount }

// Streak returns the current run of consecutive correct answers.
func (s *SessionStats) Streak() int { return s.streak }

// Accuracy returns correct answers over total answers as a value in [0, 1].
// Returns 0 when nothing has been reviewed yet; it never divides by zero.
func (s *SessionStats) Accuracy() float64 {
	if s.cardsReviewed == 0 {
		return 0
	}
	return float64(s.correctCount) / float64(s.cardsReviewed)
}

// Summary is the serializable end-of-session snapshot.
type Summary struct {
	CardsReviewed       int         `json:"cards_reviewed"`
	CorrectCount        int         `json:"correct_count"`
	Accuracy            float64     `json:"accuracy"`
	Streak              int         `json:"streak"`
	QualityDistribution map[int]int `json:"quality_distribution"`
	DurationSeconds     float64     `json:"duration_seconds"`
}

// Snapshot captures the session's metrics, including the elapsed duration
// since the session started.
func (s *SessionStats) Snapshot() Summary {
	distribution := make(map[int]int, len(s.qualityDistribution))
	for quality, count := range s.qualityDistribution {
		distribution[quality] = count
	}

	return Summary{
		CardsReviewed:       s.cardsReviewed,
		CorrectCount:        s.correctCount,
		Accuracy:            s.Accuracy(),
		Streak:              s.streak,
		QualityDistribution: distribution,
		DurationSeconds:     s.now().Sub(s.startTime).Seconds(),
	}
}
