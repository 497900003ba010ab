package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/eventhub/backend/internal/api"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

// Store defines the interface for event persistence.
type Store interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// Handler holds event HTTP handlers.
type Handler struct {
	events Store
	log    zerolog.Logger
}

func NewHandler(events Store, log zerolog.Logger) *Handler {
	return &Handler{events: events, log: log}
}

// List returns all events. An empty collection is a valid outcome.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list events")
		api.Error(w, http.StatusInternalServerError, "Error fetching events", err)
		return
	}
	api.JSON(w, http.StatusOK, events)
}

// Get returns a single event by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Event ID format", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Event not found", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("get event")
		api.Error(w, http.StatusInternalServerError, "Error fetching event", err)
	default:
		api.JSON(w, http.StatusOK, event)
	}
}

// Create persists a new event. When the body carries no creatorId the
// authenticated caller becomes the creator.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	creatorID := req.CreatorID
	if creatorID == "" {
		creatorID = middleware.UserID(r.Context())
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		CreatorID:   creatorID,
	}

	saved, err := h.events.Create(r.Context(), event)
	if err != nil {
		h.log.Error().Err(err).Msg("create event")
		api.Error(w, http.StatusInternalServerError, "Error creating event", err)
		return
	}
	api.JSON(w, http.StatusCreated, saved)
}

// Update applies the supplied fields and returns the updated document.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	delete(fields, "_id")
	delete(fields, "id")

	event, err := h.events.Update(r.Context(), chi.URLParam(r, "id"), fields)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Event ID format", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Event not found", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("update event")
		api.Error(w, http.StatusInternalServerError, "Error updating event", err)
	default:
		api.JSON(w, http.StatusOK, event)
	}
}

// Delete removes an event. Its registrations and reviews are left in
// place, referencing the now-absent event id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.events.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Event ID format", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Event not found", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("delete event")
		api.Error(w, http.StatusInternalServerError, "Error deleting event", err)
	default:
		api.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
	}
}
