package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLearningStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, status := range []LearningStatus{
		StatusNew, StatusLearning, StatusReviewing, StatusDue, StatusMastered,
	} {
		require.True(t, status.IsValid(), "status %q should be valid", status)
	}

	require.False(t, LearningStatus("").IsValid())
	require.False(t, LearningStatus("graduated").IsValid())
}

func TestQualityValidate(t *testing.T) {
	t.Parallel()

	for q := Quality(0); q <= MaxQuality; q++ {
		require.NoError(t, q.Validate())
	}

	require.ErrorIs(t, Quality(-1).Validate(), ErrInvalidQuality)
	require.ErrorIs(t, Quality(6).Validate(), ErrInvalidQuality)
}

func TestQualityIsCorrect(t *testing.T) {
	t.Parallel()

	require.False(t, Quality(0).IsCorrect())
	require.False(t, Quality(2).IsCorrect())
	require.True(t, Quality(3).IsCorrect())
	require.True(t, Quality(5).IsCorrect())
}

func TestNewReviewResult(t *testing.T) {
	t.Parallel()
	next := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		itemID      string
		quality     Quality
		interval    int
		expectedErr error
	}{
		{
			name:     "valid result",
			itemID:   "item-1",
			quality:  5,
			interval: 24,
		},
		{
			name:        "empty item ID",
			itemID:      "",
			quality:     5,
			interval:    24,
			expectedErr: ErrItemIDEmpty,
		},
		{
			name:        "quality above range",
			itemID:      "item-1",
			quality:     6,
			interval:    24,
			expectedErr: ErrInvalidQuality,
		},
		{
			name:        "negative interval",
			itemID:      "item-1",
			quality:     4,
			interval:    -1,
			expectedErr: ErrInvalidInterval,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NewReviewResult(tc.itemID, tc.quality, tc.interval, 2.6, next)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.itemID, result.ItemID())
			require.Equal(t, tc.quality, result.Quality())
			require.Equal(t, tc.interval, result.NewInterval())
			require.InDelta(t, 2.6, result.NewEase(), 1e-9)
			require.Equal(t, next, result.NextReviewTime())
		})
	}
}
