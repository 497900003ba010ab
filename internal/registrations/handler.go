package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/eventhub/backend/internal/api"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

// Store defines the interface for registration persistence.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error)
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	FindPair(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Registration, error)
	Delete(ctx context.Context, id string) error
}

// Handler holds registration HTTP handlers.
type Handler struct {
	regs Store
	log  zerolog.Logger
}

func NewHandler(regs Store, log zerolog.Logger) *Handler {
	return &Handler{regs: regs, log: log}
}

// ListByEvent returns the registrations for one event. Unlike the
// unfiltered listings, an empty result here reads as not-found.
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	regs, err := h.regs.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		h.log.Error().Err(err).Msg("list registrations")
		api.Error(w, http.StatusInternalServerError, "Error fetching registrations", err)
		return
	}
	if len(regs) == 0 {
		api.Error(w, http.StatusNotFound, "No registrations found for this event", nil)
		return
	}
	api.JSON(w, http.StatusOK, regs)
}

// Create registers a user for an event. The pre-check gives the
// friendly 409; the unique index catches the race where two identical
// submissions both pass it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	_, err := h.regs.FindPair(r.Context(), req.EventID, req.UserID, "")
	if err == nil {
		api.Error(w, http.StatusConflict, "User is already registered for this event.", nil)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.log.Error().Err(err).Msg("registration pre-check")
		api.Error(w, http.StatusInternalServerError, "Error creating registration.", err)
		return
	}

	saved, err := h.regs.Create(r.Context(), &models.Registration{
		EventID: req.EventID,
		UserID:  req.UserID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusConflict, "User is already registered for this event.", nil)
			return
		}
		h.log.Error().Err(err).Msg("create registration")
		api.Error(w, http.StatusInternalServerError, "Error creating registration.", err)
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
	existing, err := h.regs.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Registration ID format.", nil)
		return
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Registration not found.", nil)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("get registration")
		api.Error(w, http.StatusInternalServerError, "Error updating registration.", err)
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
		_, err := h.regs.FindPair(r.Context(), newEventID, newUserID, id)
		if err == nil {
			api.Error(w, http.StatusConflict, "User is already registered for this event.", nil)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error().Err(err).Msg("registration pre-check")
			api.Error(w, http.StatusInternalServerError, "Error updating registration.", err)
			return
		}
	}

	updated, err := h.regs.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusConflict, "User is already registered for this event.", nil)
			return
		}
		h.log.Error().Err(err).Msg("update registration")
		api.Error(w, http.StatusInternalServerError, "Error updating registration.", err)
		return
	}
	api.JSON(w, http.StatusOK, updated)
}

// Delete removes a registration.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.regs.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid Registration ID format.", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Registration not found.", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("delete registration")
		api.Error(w, http.StatusInternalServerError, "Error deleting registration.", err)
	default:
		api.JSON(w, http.StatusOK, map[string]string{"message": "Registration successfully deleted."})
	}
}
