package api

import (
	"time"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/review"
)

// StartSessionRequest is the body for starting a review session.
// session_type selects which statuses feed the batch: "new" pulls only
// unseen words, "review" only due words, "mixed" (the default) both, due
// first.
type StartSessionRequest struct {
	SessionType string `json:"session_type" validate:"omitempty,oneof=new review mixed"`
}

// StartSessionResponse reports the built session and its first card.
// Success is false when no cards were available, in which case the other
// fields are empty.
type StartSessionResponse struct {
	Success    bool             `json:"success"`
	SessionID  string           `json:"session_id,omitempty"`
	TotalCards int              `json:"total_cards,omitempty"`
	FirstCard  *review.CardView `json:"first_card,omitempty"`
	Progress   *review.Progress `json:"progress,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// SubmitAnswerRequest is the body for grading the current card of a
// session. Quality is a pointer so an explicit 0 survives the required
// check.
type SubmitAnswerRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Quality   *int   `json:"quality"    validate:"required"`
}

// ReviewResultResponse is the serialized review result.
type ReviewResultResponse struct {
	ItemID         string    `json:"item_id"`
	Quality        int       `json:"quality"`
	NewInterval    int       `json:"new_interval"`
	NewEase        float64   `json:"new_ease"`
	NextReviewTime time.Time `json:"next_review_time"`
}

// SubmitAnswerResponse carries the graded result plus either the next card
// or, when the batch is exhausted, the end-of-session summary.
type SubmitAnswerResponse struct {
	Success         bool                 `json:"success"`
	Result          ReviewResultResponse `json:"result"`
	SessionComplete bool                 `json:"session_complete"`
	NextCard        *review.CardView     `json:"next_card,omitempty"`
	Progress        *review.Progress     `json:"progress,omitempty"`
	Summary         *review.Summary      `json:"summary,omitempty"`
}

// SessionStateResponse reports a session's current card and progress.
type SessionStateResponse struct {
	SessionID   string           `json:"session_id"`
	CurrentCard *review.CardView `json:"current_card,omitempty"`
	Progress    review.Progress  `json:"progress"`
	Complete    bool             `json:"complete"`
}

// EndSessionResponse is the terminal summary of an ended session.
type EndSessionResponse struct {
	Success bool           `json:"success"`
	Summary review.Summary `json:"summary"`
}

func resultToResponse(result *domain.ReviewResult) ReviewResultResponse {
	return ReviewResultResponse{
		ItemID:         result.ItemID(),
		Quality:        int(result.Quality()),
		NewInterval:    result.NewInterval(),
		NewEase:        result.NewEase(),
		NextReviewTime: result.NextReviewTime(),
	}
}

func cardViewOrNil(card *review.Card) *review.CardView {
	if card == nil {
		return nil
	}
	view := card.View()
	return &view
}
