// Package api provides HTTP handlers for the review API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mixread/srs-api/internal/api/shared"
	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/domain/srs"
	"github.com/mixread/srs-api/internal/platform/logger"
	"github.com/mixread/srs-api/internal/review"
	"github.com/mixread/srs-api/internal/service/sessions"
	"github.com/mixread/srs-api/internal/service/vocabulary"
)

// BatchLimits caps how many cards of each kind a single session pulls.
type BatchLimits struct {
	Due int
	New int
}

// ReviewHandler handles review session HTTP requests. It owns no session
// state itself; active sessions live in the registry between requests.
type ReviewHandler struct {
	store    vocabulary.EntryStore
	engine   srs.Engine
	registry *sessions.Registry
	limits   BatchLimits
	validate *validator.Validate
	logger   *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	store vocabulary.EntryStore,
	engine srs.Engine,
	registry *sessions.Registry,
	limits BatchLimits,
	logger *slog.Logger,
) *ReviewHandler {
	if store == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}
	if engine == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("engine cannot be nil")
	}
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		store:    store,
		engine:   engine,
		registry: registry,
		limits:   limits,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "review_handler")),
	}
}

// RegisterRoutes mounts the review endpoints on the given router.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users/{userID}/review", func(r chi.Router) {
		r.Post("/session", h.StartSession)
		r.Post("/answer", h.SubmitAnswer)
		r.Get("/session/{sessionID}", h.GetSession)
		r.Delete("/session/{sessionID}", h.EndSession)
	})
}

// StartSession handles POST /users/{userID}/review/session.
// It builds a fresh session for the requested session type, registers it,
// and returns the first card. A batch with no cards is a normal outcome
// reported with success=false, not an error status.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if req.SessionType == "" {
		req.SessionType = "mixed"
	}

	statusList, limits := h.batchPlan(req.SessionType)

	provider := vocabulary.NewProvider(h.store, h.engine, userID, log)
	session := review.NewSession(provider)

	built, err := session.BuildSession(r.Context(), statusList, limits)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to build review session", err)
		return
	}
	if !built {
		log.Debug("no cards available for review",
			slog.String("user_id", userID.String()),
			slog.String("session_type", req.SessionType))
		shared.RespondWithJSON(w, r, http.StatusOK, StartSessionResponse{
			Success: false,
			Error:   "No cards available for review",
		})
		return
	}

	sessionID := h.registry.Put(userID, session)
	progress := session.GetProgress()

	log.Debug("review session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID),
		slog.String("session_type", req.SessionType),
		slog.Int("total_cards", session.TotalCards()))

	shared.RespondWithJSON(w, r, http.StatusOK, StartSessionResponse{
		Success:    true,
		SessionID:  sessionID,
		TotalCards: session.TotalCards(),
		FirstCard:  cardViewOrNil(session.CurrentCard()),
		Progress:   &progress,
	})
}

// SubmitAnswer handles POST /users/{userID}/review/answer.
// It grades the session's current card, advances the cursor, and returns
// either the next card or the final summary when the batch is exhausted.
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.withSession(w, r, req.SessionID, userID, func(session *review.Session) {
		result, err := session.SubmitAnswer(r.Context(), domain.Quality(*req.Quality), h.engine)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidQuality) {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Quality must be 0-5")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to submit answer", err)
			return
		}
		if result == nil {
			// No current card to grade: the session was already walked past
			// its last card.
			shared.RespondWithError(w, r, http.StatusBadRequest, "No card to review")
			return
		}

		nextCard := session.NextCard()

		response := SubmitAnswerResponse{
			Success: true,
			Result:  resultToResponse(result),
		}

		if session.IsComplete() {
			summary := session.EndSession()
			h.registry.Remove(req.SessionID)

			response.SessionComplete = true
			response.Summary = &summary

			log.Debug("review session completed",
				slog.String("user_id", userID.String()),
				slog.String("session_id", req.SessionID),
				slog.Int("cards_reviewed", summary.CardsReviewed),
				slog.Float64("accuracy", summary.Accuracy))
		} else {
			progress := session.GetProgress()
			response.NextCard = cardViewOrNil(nextCard)
			response.Progress = &progress
		}

		shared.RespondWithJSON(w, r, http.StatusOK, response)
	})
}

// GetSession handles GET /users/{userID}/review/session/{sessionID}.
// It reports the session's current card and progress without grading or
// advancing anything.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	h.withSession(w, r, sessionID, userID, func(session *review.Session) {
		shared.RespondWithJSON(w, r, http.StatusOK, SessionStateResponse{
			SessionID:   sessionID,
			CurrentCard: cardViewOrNil(session.CurrentCard()),
			Progress:    session.GetProgress(),
			Complete:    session.IsComplete(),
		})
	})
}

// EndSession handles DELETE /users/{userID}/review/session/{sessionID}.
// It ends the session early and returns the summary; already-graded cards
// stay graded, ungraded cards stay untouched.
func (h *ReviewHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	h.withSession(w, r, sessionID, userID, func(session *review.Session) {
		summary := session.EndSession()
		h.registry.Remove(sessionID)

		log.Debug("review session ended early",
			slog.String("user_id", userID.String()),
			slog.String("session_id", sessionID),
			slog.Int("cards_reviewed", summary.CardsReviewed))

		shared.RespondWithJSON(w, r, http.StatusOK, EndSessionResponse{
			Success: true,
			Summary: summary,
		})
	})
}

// batchPlan maps a session type onto the status priority order and
// per-status limits. Mixed sessions pull due cards before new ones.
func (h *ReviewHandler) batchPlan(
	sessionType string,
) ([]domain.LearningStatus, map[domain.LearningStatus]int) {
	switch sessionType {
	case "new":
		return []domain.LearningStatus{domain.StatusNew},
			map[domain.LearningStatus]int{domain.StatusNew: h.limits.New}
	case "review":
		return []domain.LearningStatus{domain.StatusDue},
			map[domain.LearningStatus]int{domain.StatusDue: h.limits.Due}
	default:
		return []domain.LearningStatus{domain.StatusDue, domain.StatusNew},
			map[domain.LearningStatus]int{
				domain.StatusDue: h.limits.Due,
				domain.StatusNew: h.limits.New,
			}
	}
}

func (h *ReviewHandler) userIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "userID")
	userID, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ReviewHandler) decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	req any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request parameters")
		return false
	}
	return true
}

// withSession resolves a session ID to a live registry entry owned by
// userID and runs fn with the session under the registry's per-entry lock,
// so concurrent requests driving the same session are serialized. An
// expired, unknown, or foreign session is uniformly a 404; the handler does
// not reveal whether someone else's session ID exists.
func (h *ReviewHandler) withSession(
	w http.ResponseWriter,
	r *http.Request,
	sessionID string,
	userID uuid.UUID,
	fn func(session *review.Session),
) {
	if sessionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return
	}

	found := h.registry.WithSession(sessionID, func(entry sessions.Entry) {
		if entry.UserID != userID {
			shared.RespondWithError(w, r, http.StatusNotFound, "Session not found")
			return
		}
		fn(entry.Session)
	})
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "Session not found")
	}
}
