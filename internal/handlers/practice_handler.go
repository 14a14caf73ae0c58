package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulariojapones/backend/internal/middleware"
	"github.com/vocabulariojapones/backend/internal/models"
	"github.com/vocabulariojapones/backend/internal/services"
	"go.uber.org/zap"
)

// PracticeService is the interface that wraps methods for practice business logic
type PracticeService interface {
	// Method BuildDeck retrieves the user's words ordered for practice:
	// most-failed first, ties broken by id.
	BuildDeck(ctx context.Context, userID int) (*services.Deck, error)
}

// PracticeCard is the response for a single practice step
type PracticeCard struct {
	Word         *models.VocabularyWord `json:"word"`
	NextPosition int                    `json:"nextPosition"`
}

// PracticeHandler handles practice-related HTTP requests
type PracticeHandler struct {
	BaseHandler
	service PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(service PracticeService, logger *zap.Logger) *PracticeHandler {
	return &PracticeHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all practice handler routes
// Note: This assumes the router is already scoped to /api
func (h *PracticeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/practice", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetDeck)
		r.Get("/next", h.NextCard)
	})
}

// GetDeck handles GET /api/practice
// @Summary Get the practice deck
// @Description The caller's words ordered for practice, most-failed first.
// @Tags practice
// @Produce json
// @Success 200 {object} services.Deck "Ordered deck"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /practice [get]
func (h *PracticeHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	deck, err := h.service.BuildDeck(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to build practice deck", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, deck)
}

// NextCard handles GET /api/practice/next
// @Summary Get a practice card
// @Description The card at the given position plus the next position. The deck is circular: after the last card comes the first.
// @Tags practice
// @Produce json
// @Param position query int false "Current position, default: 0"
// @Success 200 {object} PracticeCard "Card and next position"
// @Failure 400 {object} map[string]string "Invalid position parameter"
// @Failure 404 {object} map[string]string "No words to practice"
// @Router /practice/next [get]
func (h *PracticeHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	position := 0
	if positionStr := r.URL.Query().Get("position"); positionStr != "" {
		parsed, err := strconv.Atoi(positionStr)
		if err != nil || parsed < 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid position parameter")
			return
		}
		position = parsed
	}

	deck, err := h.service.BuildDeck(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to build practice deck", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	card, err := deck.Card(position)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, PracticeCard{
		Word:         card,
		NextPosition: deck.Next(position),
	})
}
