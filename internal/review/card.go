package review

import "github.com/mixread/srs-api/internal/domain"

// Card is a thin read view over one LearningItem, held only while the item
// is shown to the learner. It carries no state of its own.
type Card struct {
	item domain.LearningItem
}

// NewCard wraps a learning item for presentation during a session.
func NewCard(item domain.LearningItem) *Card {
	return &Card{item: item}
}

// Item returns the wrapped learning item.
func (c *Card) Item() domain.LearningItem { return c.item }

// CardView is the serializable projection of a card, the shape hosts map
// onto their transport of choice.
type CardView struct {
	ID             string                `json:"id"`
	Content        map[string]any        `json:"content"`
	Status         domain.LearningStatus `json:"status"`
	ReviewInterval int                   `json:"review_interval"`
}

// View projects the card for rendering.
func (c *Card) View() CardView {
	return CardView{
		ID:             c.item.ItemID(),
		Content:        c.item.Content(),
		Status:         c.item.Status(),
		ReviewInterval: c.item.ReviewInterval(),
	}
}
