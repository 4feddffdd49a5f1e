package srs

// Params defines all configurable parameters for the SRS algorithm.
type Params struct {
	// MinEaseFactor is the floor below which an item's ease factor can
	// never fall, no matter how many failed reviews accumulate.
	MinEaseFactor float64

	// ResetIntervalHours is the interval assigned after any failed recall
	// (quality below 3), regardless of the prior interval or ease.
	ResetIntervalHours int

	// FirstIntervalHours is the interval after the first successful review
	// of an item that has never been scheduled (current interval 0).
	FirstIntervalHours int

	// SecondIntervalHours is the fixed graduation step after the second
	// successful review. It is deliberately independent of ease so the very
	// first ease adjustment cannot produce a runaway interval.
	SecondIntervalHours int

	// MasteredStreak and MasteredIntervalHours together define graduation:
	// an item counts as mastered once its correct streak reaches
	// MasteredStreak and its interval has grown to at least
	// MasteredIntervalHours.
	MasteredStreak        int
	MasteredIntervalHours int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor         float64
	ResetIntervalHours    int
	FirstIntervalHours    int
	SecondIntervalHours   int
	MasteredStreak        int
	MasteredIntervalHours int
}

// NewDefaultParams creates a new Params instance with the standard values:
// ease floor 1.3, one-day reset and first interval, three-day second
// interval, mastery at a streak of 5 with a one-week interval.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:         1.3,
		ResetIntervalHours:    24,
		FirstIntervalHours:    24,
		SecondIntervalHours:   72,
		MasteredStreak:        5,
		MasteredIntervalHours: 7 * 24,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.ResetIntervalHours > 0 {
		params.ResetIntervalHours = config.ResetIntervalHours
	}
	if config.FirstIntervalHours > 0 {
		params.FirstIntervalHours = config.FirstIntervalHours
	}
	if config.SecondIntervalHours > 0 {
		params.SecondIntervalHours = config.SecondIntervalHours
	}
	if config.MasteredStreak > 0 {
		params.MasteredStreak = config.MasteredStreak
	}
	if config.MasteredIntervalHours > 0 {
		params.MasteredIntervalHours = config.MasteredIntervalHours
	}

	return params
}
