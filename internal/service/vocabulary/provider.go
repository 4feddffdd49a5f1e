package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/domain/srs"
	"github.com/mixread/srs-api/internal/review"
)

// Provider implements review.Provider on top of an EntryStore, scoped to a
// single user. One Provider is created per session build; it is the boundary
// that keeps the review core free of vocabulary-specific types.
type Provider struct {
	store  EntryStore
	engine srs.Engine
	userID uuid.UUID
	logger *slog.Logger
	now    func() time.Time
}

// Verify interface compliance at compile time
var _ review.Provider = (*Provider)(nil)

// NewProvider creates a review provider for the given user.
func NewProvider(
	store EntryStore,
	engine srs.Engine,
	userID uuid.UUID,
	logger *slog.Logger,
) *Provider {
	if store == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}
	if engine == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		store:  store,
		engine: engine,
		userID: userID,
		logger: logger.With(slog.String("component", "vocabulary_provider")),
		now:    time.Now,
	}
}

// GetItemByID implements review.Provider.GetItemByID.
func (p *Provider) GetItemByID(ctx context.Context, itemID string) (domain.LearningItem, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, review.ErrItemNotFound
	}

	entry, err := p.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, review.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary entry: %w", err)
	}

	return newAdaptedItem(entry, p.now()), nil
}

// GetItemsByStatus implements review.Provider.GetItemsByStatus. The store's
// ordering (most overdue first for due entries, oldest first for new ones)
// is passed through untouched.
func (p *Provider) GetItemsByStatus(
	ctx context.Context,
	status domain.LearningStatus,
	limit int,
) ([]domain.LearningItem, error) {
	entries, err := p.store.ListByStatus(ctx, p.userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary entries: %w", err)
	}

	now := p.now()
	items := make([]domain.LearningItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, newAdaptedItem(entry, now))
	}

	return items, nil
}

// SaveReviewResult implements review.Provider.SaveReviewResult. It folds the
// result into the entry's review history, derives the coarse status from the
// engine, and applies everything as one store update. A result for an entry
// that no longer exists is silently dropped; the session has already
// computed the in-memory outcome.
func (p *Provider) SaveReviewResult(ctx context.Context, result domain.ReviewResult) error {
	id, err := uuid.Parse(result.ItemID())
	if err != nil {
		p.logger.Warn("dropping review result with malformed item ID",
			slog.String("item_id", result.ItemID()))
		return nil
	}

	entry, err := p.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			p.logger.Debug("dropping review result for deleted entry",
				slog.String("item_id", result.ItemID()))
			return nil
		}
		return fmt.Errorf("failed to load entry for review result: %w", err)
	}

	totalReviews := entry.TotalReviews + 1
	correctReviews := entry.CorrectReviews
	reviewStreak := 0
	if result.Quality().IsCorrect() {
		correctReviews++
		reviewStreak = entry.ReviewStreak + 1
	}

	status := p.engine.StatusForProgress(
		totalReviews, correctReviews, reviewStreak, result.NewInterval())

	update := ReviewUpdate{
		ID:             id,
		Status:         status,
		ReviewInterval: result.NewInterval(),
		EaseFactor:     result.NewEase(),
		TotalReviews:   totalReviews,
		CorrectReviews: correctReviews,
		ReviewStreak:   reviewStreak,
		NextReview:     result.NextReviewTime(),
	}

	if err := p.store.ApplyReviewResult(ctx, update); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			p.logger.Debug("entry vanished before review result applied",
				slog.String("item_id", result.ItemID()))
			return nil
		}
		return fmt.Errorf("failed to apply review result: %w", err)
	}

	p.logger.Debug("applied review result",
		slog.String("item_id", result.ItemID()),
		slog.Int("quality", int(result.Quality())),
		slog.Int("new_interval", result.NewInterval()),
		slog.Float64("new_ease", result.NewEase()),
		slog.String("status", string(status)))

	return nil
}
