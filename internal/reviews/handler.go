package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/eventhub/backend/internal/api"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

// Store defines the interface for review persistence.
type Store interface {
	Create(ctx context.Context, rev *models.Review) (*models.Review, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	FindPair(ctx context.Context, eventID, userID, excludeID string) (*models.Review, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

// Handler holds review HTTP handlers.
type Handler struct {
	reviews Store
	log     zerolog.Logger
}

func NewHandler(reviews Store, log zerolog.Logger) *Handler {
	return &Handler{reviews: reviews, log: log}
}

// ListByEvent returns the reviews for one event; an empty result reads
// as not-found.
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		h.log.Error().Err(err).Msg("list reviews")
		api.Error(w, http.StatusInternalServerError, "Error fetching reviews", err)
		return
	}
	if len(reviews) == 0 {
		api.Error(w, http.StatusNotFound, "No reviews found for this event", nil)
		return
	}
	api.JSON(w, http.StatusOK, reviews)
}

// Create persists a review. The rating range is re-checked here even
// though the validation layer already enforces it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Rating != math.Trunc(req.Rating) || req.Rating < 1 || req.Rating > 5 {
		api.Error(w, http.StatusBadRequest, "Rating must be a number between 1 and 5.", nil)
		return
	}

	_, err := h.reviews.FindPair(r.Context(), req.EventID, req.UserID, "")
	if err == nil {
		api.Error(w, http.StatusConflict, "User has already submitted a review for this event.", nil)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.log.Error().Err(err).Msg("review pre-check")
		api.Error(w, http.StatusInternalServerError, "Error creating review.", err)
		return
	}

	saved, err := h.reviews.Create(r.Context(), &models.Review{
		EventID: req.EventID,
		UserID:  req.UserID,
		Rating:  int(req.Rating),
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusConflict, "User has already submitted a review for this event.", nil)
			return
		}
		h.log.Error().Err(err).Msg("create review")
		api.Error(w, http.StatusInternalServerError, "Error creating review.", err)
		return
	}
	api.JSON(w, http.StatusCreated, saved)
}

// Update applies the supplied fields, re-checking the uniqueness pair
// when eventId or userId changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	delete(fields, "_id")
	delete(fields, "id")

	if len(fields) == 0 {
		api.Error(w, http.StatusBadRequest, "Request body cannot be empty for an update.", nil)
		return
	}
	eventID, hasEvent := fields["eventId"].(string)
	if hasEvent && eventID == "" {
		api.Error(w, http.StatusBadRequest, "Event ID cannot be empty.", nil)
		return
	}
	userID, hasUser := fields["userId"].(string)
	if hasUser && userID == "" {
		api.Error(w, http.StatusBadRequest, "User ID cannot be empty.", nil)
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := h.reviews.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Review ID format.", nil)
		return
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Review not found.", nil)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("get review")
		api.Error(w, http.StatusInternalServerError, "Error updating review.", err)
		return
	}

	if hasEvent || hasUser {
		newEventID, newUserID := existing.EventID, existing.UserID
		if hasEvent {
			newEventID = eventID
		}
		if hasUser {
			newUserID = userID
		}
		_, err := h.reviews.FindPair(r.Context(), newEventID, newUserID, id)
		if err == nil {
			api.Error(w, http.StatusConflict, "User has already submitted a review for this event.", nil)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error().Err(err).Msg("review pre-check")
			api.Error(w, http.StatusInternalServerError, "Error updating review.", err)
			return
		}
	}

	updated, err := h.reviews.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusConflict, "User has already submitted a review for this event.", nil)
			return
		}
		h.log.Error().Err(err).Msg("update review")
		api.Error(w, http.StatusInternalServerError, "Error updating review.", err)
		return
	}
	api.JSON(w, http.StatusOK, updated)
}

// Delete removes a review.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.reviews.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Review ID format.", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Review not found.", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("delete review")
		api.Error(w, http.StatusInternalServerError, "Error deleting review.", err)
	default:
		api.JSON(w, http.StatusOK, map[string]string{"message": "Review successfully deleted."})
	}
}
