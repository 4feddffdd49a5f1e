package srs

import (
	"testing"
	"time"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	require.NotNil(t, engine)

	impl, ok := engine.(*defaultEngine)
	require.True(t, ok, "expected *defaultEngine type")
	require.NotNil(t, impl.params)
}

func TestCalculateInterval(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	testCases := []struct {
		name             string
		currentInterval  int
		quality          domain.Quality
		easeFactor       float64
		expectedInterval int
		expectedEase     float64
	}{
		{
			name:             "first successful review bootstraps to one day",
			currentInterval:  0,
			quality:          5,
			easeFactor:       2.5,
			expectedInterval: 24,
			expectedEase:     2.6,
		},
		{
			name:             "second successful review graduates to three days",
			currentInterval:  24,
			quality:          5,
			easeFactor:       2.5,
			expectedInterval: 72,
			expectedEase:     2.6,
		},
		{
			name:             "third review grows by the ease factor",
			currentInterval:  72,
			quality:          5,
			easeFactor:       2.5,
			expectedInterval: 187, // floor(72 * 2.6)
			expectedEase:     2.6,
		},
		{
			name:             "failure resets interval and drops ease",
			currentInterval:  187,
			quality:          1,
			easeFactor:       2.5,
			expectedInterval: 24,
			expectedEase:     1.96, // 2.5 - 0.54
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval, ease, err := engine.CalculateInterval(
				tc.currentInterval, tc.quality, tc.easeFactor)
			require.NoError(t, err)
			require.Equal(t, tc.expectedInterval, interval)
			require.InDelta(t, tc.expectedEase, ease, 1e-9)
		})
	}
}

func TestCalculateInterval_Deterministic(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	firstInterval, firstEase, err := engine.CalculateInterval(72, 4, 2.1)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		interval, ease, err := engine.CalculateInterval(72, 4, 2.1)
		require.NoError(t, err)
		require.Equal(t, firstInterval, interval)
		require.Equal(t, firstEase, ease)
	}
}

func TestCalculateInterval_RejectsInvalidQuality(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	for _, quality := range []domain.Quality{-1, 6, 100} {
		_, _, err := engine.CalculateInterval(24, quality, 2.5)
		require.ErrorIs(t, err, domain.ErrInvalidQuality,
			"quality=%d", quality)
	}
}

func TestNextReviewTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngineWithClock(nil, func() time.Time { return now })

	testCases := []struct {
		name     string
		interval int
		expected time.Time
	}{
		{
			name:     "one day",
			interval: 24,
			expected: now.Add(24 * time.Hour),
		},
		{
			name:     "one week",
			interval: 168,
			expected: now.Add(168 * time.Hour),
		},
		{
			name:     "zero interval is due immediately",
			interval: 0,
			expected: now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, engine.NextReviewTime(tc.interval))
		})
	}
}

func TestNewEngineWithParams(t *testing.T) {
	t.Parallel()
	params := NewParams(ParamsConfig{MinEaseFactor: 1.5})
	engine := NewEngineWithParams(params)

	// A blackout on an item already near the floor must respect the
	// custom minimum, not the default 1.3.
	_, ease, err := engine.CalculateInterval(24, 0, 1.6)
	require.NoError(t, err)
	require.InDelta(t, 1.5, ease, 1e-9)
}

func TestStatusForProgressService(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	require.Equal(t, domain.StatusLearning, engine.StatusForProgress(0, 0, 0, 0))
	require.Equal(t, domain.StatusMastered, engine.StatusForProgress(12, 10, 6, 200))
	require.Equal(t, domain.StatusReviewing, engine.StatusForProgress(3, 2, 2, 24))
}
