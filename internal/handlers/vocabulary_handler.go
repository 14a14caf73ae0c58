package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulariojapones/backend/internal/middleware"
	"github.com/vocabulariojapones/backend/internal/models"
	"go.uber.org/zap"
)

// VocabularyService is the interface that wraps methods for vocabulary business logic
type VocabularyService interface {
	// Method AddWord creates a new word pair for the user.
	//
	// "japanese" and "spanish" parameters must be non-empty; the Japanese text
	// must be unique among the user's own words.
	AddWord(ctx context.Context, userID int, japanese, spanish string) (*models.VocabularyWord, error)
	// Method ListWords retrieves all of the user's words.
	ListWords(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// Method SetLearned sets the learned flag of a word owned by the user.
	SetLearned(ctx context.Context, userID, wordID int, learned bool) (*models.VocabularyWord, error)
	// Method RecordFailure increments the word's failure counter by one.
	RecordFailure(ctx context.Context, userID, wordID int) (*models.VocabularyWord, error)
	// Method DeleteWord deletes a word owned by the user.
	DeleteWord(ctx context.Context, userID, wordID int) error
	// Method Stats aggregates the user's word counts and practice history.
	Stats(ctx context.Context, userID int) (*models.UserStats, error)
}

// VocabularyHandler handles vocabulary-related HTTP requests
type VocabularyHandler struct {
	BaseHandler
	service VocabularyService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(service VocabularyService, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all vocabulary handler routes
// Note: This assumes the router is already scoped to /api
func (h *VocabularyHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/vocabulary", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListWords)
		r.Post("/", h.AddWord)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/fail", h.RecordFailure)
		r.Delete("/{id}", h.DeleteWord)
	})
	r.With(authMiddleware).Get("/stats", h.Stats)
}

// ListWords handles GET /api/vocabulary
// @Summary List vocabulary words
// @Description List all words owned by the authenticated user.
// @Tags vocabulary
// @Produce json
// @Success 200 {array} models.VocabularyWord "The caller's words"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocabulary [get]
func (h *VocabularyHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	words, err := h.service.ListWords(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list words", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// AddWord handles POST /api/vocabulary
// @Summary Add a vocabulary word
// @Description Add a Japanese-Spanish word pair. The Japanese text must be unique among the caller's words.
// @Tags vocabulary
// @Accept json
// @Produce json
// @Param request body models.AddWordRequest true "Word pair"
// @Success 200 {object} models.VocabularyWord "Created word"
// @Failure 400 {object} map[string]string "Empty field or duplicate word"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /vocabulary [post]
func (h *VocabularyHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.AddWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.service.AddWord(r.Context(), userID, req.Japanese, req.Spanish)
	if err != nil {
		h.Logger.Error("failed to add word", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, word)
}

// UpdateStatus handles PATCH /api/vocabulary/{id}/status
// @Summary Update learned status
// @Description Mark a word learned or unlearned. The failure counter is not reset.
// @Tags vocabulary
// @Accept json
// @Produce json
// @Param id path int true "Word ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.VocabularyWord "Updated word"
// @Failure 400 {object} map[string]string "Missing or mistyped learned field"
// @Failure 403 {object} map[string]string "Word belongs to another user"
// @Failure 404 {object} map[string]string "Word not found"
// @Router /vocabulary/{id}/status [patch]
func (h *VocabularyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Learned == nil {
		h.RespondError(w, http.StatusBadRequest, "learned must be a boolean")
		return
	}

	word, err := h.service.SetLearned(r.Context(), userID, wordID, *req.Learned)
	if err != nil {
		h.Logger.Error("failed to update word status", zap.Error(err), zap.Int("wordId", wordID))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, word)
}

// RecordFailure handles POST /api/vocabulary/{id}/fail
// @Summary Record a failed attempt
// @Description Increment the word's failure counter by one.
// @Tags vocabulary
// @Produce json
// @Param id path int true "Word ID"
// @Success 200 {object} models.VocabularyWord "Updated word"
// @Failure 403 {object} map[string]string "Word belongs to another user"
// @Failure 404 {object} map[string]string "Word not found"
// @Router /vocabulary/{id}/fail [post]
func (h *VocabularyHandler) RecordFailure(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	word, err := h.service.RecordFailure(r.Context(), userID, wordID)
	if err != nil {
		h.Logger.Error("failed to record failure", zap.Error(err), zap.Int("wordId", wordID))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, word)
}

// DeleteWord handles DELETE /api/vocabulary/{id}
// @Summary Delete a vocabulary word
// @Description Delete a word owned by the authenticated user.
// @Tags vocabulary
// @Param id path int true "Word ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Word belongs to another user"
// @Failure 404 {object} map[string]string "Word not found"
// @Router /vocabulary/{id} [delete]
func (h *VocabularyHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	if err := h.service.DeleteWord(r.Context(), userID, wordID); err != nil {
		h.Logger.Error("failed to delete word", zap.Error(err), zap.Int("wordId", wordID))
		h.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/stats
// @Summary Get user statistics
// @Description Aggregate word counts and practice history for the authenticated user.
// @Tags vocabulary
// @Produce json
// @Success 200 {object} models.UserStats "Aggregate statistics"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *VocabularyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to compute stats", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
