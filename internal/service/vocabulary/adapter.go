package vocabulary

import (
	"time"

	"github.com/mixread/srs-api/internal/domain"
)

// adaptedItem presents one vocabulary entry as a domain.LearningItem.
// It is a read view built on demand; the review core never sees the Entry
// itself and never mutates it.
type adaptedItem struct {
	entry *Entry
	now   time.Time
}

// Verify interface compliance at compile time
var _ domain.LearningItem = (*adaptedItem)(nil)

func newAdaptedItem(entry *Entry, now time.Time) *adaptedItem {
	return &adaptedItem{entry: entry, now: now}
}

func (a *adaptedItem) ItemID() string {
	return a.entry.ID.String()
}

func (a *adaptedItem) Content() map[string]any {
	content := map[string]any{
		"word": a.entry.Word,
	}
	if !a.entry.AddedAt.IsZero() {
		content["added_at"] = a.entry.AddedAt.Format(time.RFC3339)
	}
	return content
}

// Status classifies the entry for the review core. An entry whose scheduled
// next review has passed is due regardless of its stored status; otherwise
// the stored status stands.
func (a *adaptedItem) Status() domain.LearningStatus {
	if a.entry.NextReview != nil && a.now.After(*a.entry.NextReview) {
		return domain.StatusDue
	}
	return a.entry.Status
}

func (a *adaptedItem) ReviewInterval() int {
	return a.entry.ReviewInterval
}

func (a *adaptedItem) EaseFactor() float64 {
	return a.entry.EaseFactor
}

func (a *adaptedItem) CreatedAt() time.Time {
	return a.entry.AddedAt
}
