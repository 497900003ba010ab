package registrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

type fakeStore struct {
	createFn   func(ctx context.Context, reg *models.Registration) (*models.Registration, error)
	listFn     func(ctx context.Context, eventID string) ([]models.Registration, error)
	getFn      func(ctx context.Context, id string) (*models.Registration, error)
	findPairFn func(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error)
	updateFn   func(ctx context.Context, id string, fields map[string]any) (*models.Registration, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeStore) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	return f.createFn(ctx, reg)
}
func (f *fakeStore) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	return f.listFn(ctx, eventID)
}
func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	return f.getFn(ctx, id)
}
func (f *fakeStore) FindPair(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error) {
	return f.findPairFn(ctx, eventID, userID, excludeID)
}
func (f *fakeStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Registration, error) {
	return f.updateFn(ctx, id, fields)
}
func (f *fakeStore) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/registrations/{eventId}", h.ListByEvent)
	r.Post("/api/registrations", h.Create)
	r.Put("/api/registrations/{id}", h.Update)
	r.Delete("/api/registrations/{id}", h.Delete)
	return r
}

func pairIsFree(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error) {
	return nil, store.ErrNotFound
}

const createBody = `{"eventId":"64f1b2a9c3d4e5f601234567","userId":"64f1b2a9c3d4e5f601234568"}`

func TestListByEventEmptyIsNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{
		listFn: func(ctx context.Context, eventID string) ([]models.Registration, error) {
			return []models.Registration{}, nil
		},
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registrations/64f1b2a9c3d4e5f601234567", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No registrations found for this event")
}

func TestCreateSuccess(t *testing.T) {
	h := NewHandler(&fakeStore{
		findPairFn: pairIsFree,
		createFn: func(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
			reg.ID = primitive.NewObjectID()
			return reg, nil
		},
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(createBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "64f1b2a9c3d4e5f601234567")
}

func TestCreateDuplicatePairConflict(t *testing.T) {
	h := NewHandler(&fakeStore{
		findPairFn: func(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error) {
			return &models.Registration{EventID: eventID, UserID: userID}, nil
		},
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(createBody)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is already registered for this event.")
}

func TestCreateRaceLosesToUniqueIndex(t *testing.T) {
	// Both submissions pass the pre-check; the second insert hits the
	// unique index and must still surface as 409.
	h := NewHandler(&fakeStore{
		findPairFn: pairIsFree,
		createFn: func(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
			return nil, store.ErrDuplicate
		},
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(createBody)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is already registered for this event.")
}

func TestUpdateEmptyBody(t *testing.T) {
	h := NewHandler(&fakeStore{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/registrations/64f1b2a9c3d4e5f601234567", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body cannot be empty for an update.")
}

func TestUpdateEmptyEventID(t *testing.T) {
	h := NewHandler(&fakeStore{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/registrations/64f1b2a9c3d4e5f601234567", strings.NewReader(`{"eventId":""}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event ID cannot be empty.")
}

func TestUpdateNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{
		getFn: func(ctx context.Context, id string) (*models.Registration, error) {
			return nil, store.ErrNotFound
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/registrations/64f1b2a9c3d4e5f601234567", strings.NewReader(`{"userId":"64f1b2a9c3d4e5f601234569"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration not found.")
}

func TestUpdatePairCollisionExcludesSelf(t *testing.T) {
	id := "64f1b2a9c3d4e5f601234567"
	var gotExclude string
	h := NewHandler(&fakeStore{
		getFn: func(ctx context.Context, gotID string) (*models.Registration, error) {
			return &models.Registration{EventID: "e1", UserID: "u1"}, nil
		},
		findPairFn: func(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error) {
			gotExclude = excludeID
			return &models.Registration{}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/registrations/"+id, strings.NewReader(`{"userId":"64f1b2a9c3d4e5f601234569"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is already registered for this event.")
	assert.Equal(t, id, gotExclude)
}

func TestUpdateSuccessReturnsDocument(t *testing.T) {
	h := NewHandler(&fakeStore{
		getFn: func(ctx context.Context, id string) (*models.Registration, error) {
			return &models.Registration{EventID: "e1", UserID: "u1"}, nil
		},
		findPairFn: pairIsFree,
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*models.Registration, error) {
			return &models.Registration{EventID: "e1", UserID: "64f1b2a9c3d4e5f601234569"}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/registrations/64f1b2a9c3d4e5f601234567", strings.NewReader(`{"userId":"64f1b2a9c3d4e5f601234569"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "64f1b2a9c3d4e5f601234569")
}

func TestDeleteSuccess(t *testing.T) {
	h := NewHandler(&fakeStore{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/registrations/64f1b2a9c3d4e5f601234567", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration successfully deleted.")
}

func TestDeleteInvalidID(t *testing.T) {
	h := NewHandler(&fakeStore{
		deleteFn: func(ctx context.Context, id string) error { return store.ErrInvalidID },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/registrations/abc123invalid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Registration ID format.")
}
