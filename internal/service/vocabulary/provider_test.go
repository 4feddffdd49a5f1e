package vocabulary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/domain/srs"
	"github.com/mixread/srs-api/internal/review"
)

// fakeEntryStore keeps entries in memory and records applied updates.
type fakeEntryStore struct {
	entries map[uuid.UUID]*Entry
	applied []ReviewUpdate
}

var _ EntryStore = (*fakeEntryStore)(nil)

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[uuid.UUID]*Entry)}
}

func (f *fakeEntryStore) Create(_ context.Context, entry *Entry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeEntryStore) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeEntryStore) ListByStatus(
	_ context.Context,
	userID uuid.UUID,
	status domain.LearningStatus,
	limit int,
) ([]*Entry, error) {
	var entries []*Entry
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.Status == status && len(entries) < limit {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeEntryStore) ApplyReviewResult(_ context.Context, update ReviewUpdate) error {
	if _, ok := f.entries[update.ID]; !ok {
		return ErrEntryNotFound
	}
	f.applied = append(f.applied, update)
	return nil
}

func newTestProvider(store EntryStore, userID uuid.UUID) *Provider {
	return NewProvider(store, srs.NewEngine(), userID, nil)
}

func TestProvider_GetItemByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeEntryStore()
	entry := NewEntry(userID, "ephemeral")
	entry.ReviewInterval = 72
	require.NoError(t, store.Create(ctx, entry))

	provider := newTestProvider(store, userID)

	item, err := provider.GetItemByID(ctx, entry.ID.String())
	require.NoError(t, err)
	require.Equal(t, entry.ID.String(), item.ItemID())
	require.Equal(t, "ephemeral", item.Content()["word"])
	require.Equal(t, 72, item.ReviewInterval())
	require.InDelta(t, 2.5, item.EaseFactor(), 1e-9)
}

func TestProvider_GetItemByID_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := newTestProvider(newFakeEntryStore(), uuid.New())

	_, err := provider.GetItemByID(ctx, uuid.New().String())
	require.ErrorIs(t, err, review.ErrItemNotFound)

	// A malformed ID is indistinguishable from a missing item.
	_, err = provider.GetItemByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, review.ErrItemNotFound)
}

func TestProvider_OverdueEntryPresentsAsDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeEntryStore()
	entry := NewEntry(userID, "overdue")
	entry.Status = domain.StatusReviewing
	past := time.Now().Add(-2 * time.Hour)
	entry.NextReview = &past
	require.NoError(t, store.Create(ctx, entry))

	provider := newTestProvider(store, userID)

	item, err := provider.GetItemByID(ctx, entry.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.StatusDue, item.Status())
}

func TestProvider_SaveReviewResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeEntryStore()
	entry := NewEntry(userID, "word")
	entry.TotalReviews = 3
	entry.CorrectReviews = 2
	entry.ReviewStreak = 2
	require.NoError(t, store.Create(ctx, entry))

	provider := newTestProvider(store, userID)

	next := time.Now().Add(72 * time.Hour)
	result, err := domain.NewReviewResult(entry.ID.String(), 5, 72, 2.6, next)
	require.NoError(t, err)

	require.NoError(t, provider.SaveReviewResult(ctx, result))
	require.Len(t, store.applied, 1)

	update := store.applied[0]
	require.Equal(t, entry.ID, update.ID)
	require.Equal(t, 72, update.ReviewInterval)
	require.InDelta(t, 2.6, update.EaseFactor, 1e-9)
	require.Equal(t, 4, update.TotalReviews)
	require.Equal(t, 3, update.CorrectReviews)
	require.Equal(t, 3, update.ReviewStreak)
	require.Equal(t, next, update.NextReview)
	require.Equal(t, domain.StatusReviewing, update.Status)
}

func TestProvider_SaveReviewResult_FailureResetsStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeEntryStore()
	entry := NewEntry(userID, "word")
	entry.TotalReviews = 5
	entry.CorrectReviews = 5
	entry.ReviewStreak = 5
	require.NoError(t, store.Create(ctx, entry))

	provider := newTestProvider(store, userID)

	result, err := domain.NewReviewResult(
		entry.ID.String(), 1, 24, 1.96, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	require.NoError(t, provider.SaveReviewResult(ctx, result))
	require.Len(t, store.applied, 1)
	require.Zero(t, store.applied[0].ReviewStreak)
	require.Equal(t, 5, store.applied[0].CorrectReviews)
}

func TestProvider_SaveReviewResult_MastersEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeEntryStore()
	entry := NewEntry(userID, "word")
	entry.TotalReviews = 6
	entry.CorrectReviews = 6
	entry.ReviewStreak = 4
	require.NoError(t, store.Create(ctx, entry))

	provider := newTestProvider(store, userID)

	// Fifth consecutive correct answer with a week-plus interval.
	result, err := domain.NewReviewResult(
		entry.ID.String(), 5, 187, 2.6, time.Now().Add(187*time.Hour))
	require.NoError(t, err)

	require.NoError(t, provider.SaveReviewResult(ctx, result))
	require.Len(t, store.applied, 1)
	require.Equal(t, domain.StatusMastered, store.applied[0].Status)
}

func TestProvider_SaveReviewResult_MissingEntryIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := newTestProvider(newFakeEntryStore(), uuid.New())

	result, err := domain.NewReviewResult(
		uuid.New().String(), 4, 24, 2.5, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	// The entry was deleted mid-session; the result is dropped silently.
	require.NoError(t, provider.SaveReviewResult(ctx, result))
}
