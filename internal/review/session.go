package review

import (
	"context"
	"fmt"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/domain/srs"
)

// Session orchestrates one bounded review flow: a batch of cards pulled once
// from the Provider and walked strictly in build order by a monotonically
// advancing cursor.
//
// A Session moves through three states - empty (no cards built), in progress
// (cursor within bounds) and complete (cursor past the last card) - and is
// single-use: there is no way back to empty, and a completed session is
// expected to be discarded by the host.
//
// A Session is not safe for concurrent use; at most one logical caller
// should drive the cursor and submit answers. Cross-device conflict handling
// belongs behind the Provider, not here.
type Session struct {
	provider     Provider
	cards        []*Card
	currentIndex int
	stats        *SessionStats
	sessionID    string
}

// NewSession creates an empty session over the given provider.
func NewSession(provider Provider) *Session {
	if provider == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("provider cannot be nil")
	}

	return &Session{
		provider: provider,
		stats:    NewSessionStats(),
	}
}

// SetSessionID attaches the host-assigned identifier for this session.
func (s *Session) SetSessionID(id string) { s.sessionID = id }

// SessionID returns the host-assigned identifier, if any.
func (s *Session) SessionID() string { return s.sessionID }

// BuildSession populates the card batch. For each status in statusList, in
// the given order, it pulls up to limits[status] items (DefaultBatchLimit
// when unspecified) from the provider and appends them, so the iteration
// order of statusList is the priority order of the batch: requesting
// [due, new] puts every due card before every new card.
//
// Returns true when the resulting batch is non-empty. An empty batch leaves
// the session empty and the host must not proceed with it. Rebuilding a
// session is not supported; a second call returns ErrSessionAlreadyBuilt.
func (s *Session) BuildSession(
	ctx context.Context,
	statusList []domain.LearningStatus,
	limits map[domain.LearningStatus]int,
) (bool, error) {
	if len(s.cards) > 0 {
		return false, ErrSessionAlreadyBuilt
	}

	var items []domain.LearningItem
	for _, status := range statusList {
		limit, ok := limits[status]
		if !ok {
			limit = DefaultBatchLimit
		}

		statusItems, err := s.provider.GetItemsByStatus(ctx, status, limit)
		if err != nil {
			return false, fmt.Errorf("failed to get items with status %q: %w", status, err)
		}
		items = append(items, statusItems...)
	}

	if len(items) == 0 {
		return false, nil
	}

	s.cards = make([]*Card, 0, len(items))
	for _, item := range items {
		s.cards = append(s.cards, NewCard(item))
	}

	return true, nil
}

// CurrentCard returns the card at the cursor, or nil when the cursor is out
// of bounds (session not built yet, or already complete).
func (s *Session) CurrentCard() *Card {
	if s.currentIndex >= 0 && s.currentIndex < len(s.cards) {
		return s.cards[s.currentIndex]
	}
	return nil
}

// SubmitAnswer grades the current card with the given quality score.
//
// It validates the score, asks the engine for the new interval and ease,
// assembles an immutable ReviewResult, hands the result to the provider for
// persistence, and records the answer in the session stats. The cursor does
// NOT advance; that is the caller's explicit next step via NextCard, which
// lets a UI show the result before moving on.
//
// Returns (nil, nil) when there is no current card to grade - a normal
// "nothing to do" outcome, not an error - leaving all state untouched.
// Callers must check for a nil result before treating the call as a
// successful grade. Quality outside [0, 5] is a contract violation and is
// rejected with domain.ErrInvalidQuality, never clamped.
func (s *Session) SubmitAnswer(
	ctx context.Context,
	quality domain.Quality,
	engine srs.Engine,
) (*domain.ReviewResult, error) {
	if err := quality.Validate(); err != nil {
		return nil, err
	}

	card := s.CurrentCard()
	if card == nil {
		return nil, nil
	}

	item := card.Item()

	nextInterval, newEase, err := engine.CalculateInterval(
		item.ReviewInterval(),
		quality,
		item.EaseFactor(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate interval: %w", err)
	}

	result, err := domain.NewReviewResult(
		item.ItemID(),
		quality,
		nextInterval,
		newEase,
		engine.NextReviewTime(nextInterval),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build review result: %w", err)
	}

	if err := s.provider.SaveReviewResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save review result: %w", err)
	}

	s.stats.RecordAnswer(quality)

	return &result, nil
}

// NextCard advances the cursor by one and returns the new current card, or
// nil when the session is now past its last card.
func (s *Session) NextCard() *Card {
	s.currentIndex++
	return s.CurrentCard()
}

// IsComplete reports whether the cursor has passed the last card.
func (s *Session) IsComplete() bool {
	return s.currentIndex >= len(s.cards)
}

// TotalCards returns the size of the built batch.
func (s *Session) TotalCards() int {
	return len(s.cards)
}

// Progress is the serializable snapshot of how far a session has advanced.
type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
}

// GetProgress reports the cursor position (1-based), batch size, completion
// percentage, and running correctness. An empty batch reports zero
// percentage rather than dividing by zero.
func (s *Session) GetProgress() Progress {
	total := len(s.cards)
	current := s.currentIndex + 1

	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
	}

	return Progress{
		Current:    current,
		Total:      total,
		Percentage: percentage,
		Correct:    s.stats.CorrectCount(),
		Accuracy:   s.stats.Accuracy(),
	}
}

// Stats exposes the session's running statistics.
func (s *Session) Stats() *SessionStats { return s.stats }

// EndSession returns the final statistics snapshot. It is intended as the
// terminal call on a session, after which the host discards the object.
func (s *Session) EndSession() Summary {
	return s.stats.Snapshot()
}
