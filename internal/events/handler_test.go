package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

type fakeStore struct {
	createFn func(ctx context.Context, e *models.Event) (*models.Event, error)
	listFn   func(ctx context.Context) ([]models.Event, error)
	getFn    func(ctx context.Context, id string) (*models.Event, error)
	updateFn func(ctx context.Context, id string, fields map[string]any) (*models.Event, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeStore) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	return f.createFn(ctx, e)
}
func (f *fakeStore) List(ctx context.Context) ([]models.Event, error) { return f.listFn(ctx) }
func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return f.getFn(ctx, id)
}
func (f *fakeStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Event, error) {
	return f.updateFn(ctx, id, fields)
}
func (f *fakeStore) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/events", h.List)
	r.Get("/api/events/{id}", h.Get)
	r.Post("/api/events", h.Create)
	r.Put("/api/events/{id}", h.Update)
	r.Delete("/api/events/{id}", h.Delete)
	return r
}

func TestListReturnsEmptyArray(t *testing.T) {
	h := NewHandler(&fakeStore{
		listFn: func(ctx context.Context) ([]models.Event, error) { return []models.Event{}, nil },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{
		getFn: func(ctx context.Context, id string) (*models.Event, error) { return nil, store.ErrNotFound },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/64f1b2a9c3d4e5f601234567", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestGetInvalidID(t *testing.T) {
	h := NewHandler(&fakeStore{
		getFn: func(ctx context.Context, id string) (*models.Event, error) { return nil, store.ErrInvalidID },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/abc123invalid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Event ID format")
}

func TestCreateEchoesFields(t *testing.T) {
	oid := primitive.NewObjectID()
	h := NewHandler(&fakeStore{
		createFn: func(ctx context.Context, e *models.Event) (*models.Event, error) {
			e.ID = oid
			return e, nil
		},
	}, zerolog.Nop())

	body := `{"title":"Tech Conference 2025","description":"Annual tech meetup","date":"2025-06-15","location":"NYC"}`
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, oid, got.ID)
	assert.Equal(t, "Tech Conference 2025", got.Title)
	assert.Equal(t, "Annual tech meetup", got.Description)
	assert.Equal(t, "2025-06-15", got.Date)
	assert.Equal(t, "NYC", got.Location)
}

func TestCreateDefaultsCreatorToCaller(t *testing.T) {
	var created *models.Event
	h := NewHandler(&fakeStore{
		createFn: func(ctx context.Context, e *models.Event) (*models.Event, error) {
			created = e
			return e, nil
		},
	}, zerolog.Nop())

	r := chi.NewRouter()
	r.With(middleware.RequireAuth(staticVerifier("64f1b2a9c3d4e5f601234567"))).Post("/api/events", h.Create)

	body := `{"title":"Tech Conference 2025","description":"Annual tech meetup","date":"2025-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "64f1b2a9c3d4e5f601234567", created.CreatorID)
}

type staticVerifier string

func (s staticVerifier) Verify(token string) (string, error) { return string(s), nil }

func TestUpdateNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*models.Event, error) {
			return nil, store.ErrNotFound
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/events/64f1b2a9c3d4e5f601234567", strings.NewReader(`{"title":"New Title"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestUpdateStripsIDFields(t *testing.T) {
	var gotFields map[string]any
	h := NewHandler(&fakeStore{
		updateFn: func(ctx context.Context, id string, fields map[string]any) (*models.Event, error) {
			gotFields = fields
			return &models.Event{Title: "New Title"}, nil
		},
	}, zerolog.Nop())

	body := `{"title":"New Title","_id":"x","id":"y"}`
	req := httptest.NewRequest(http.MethodPut, "/api/events/64f1b2a9c3d4e5f601234567", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"title": "New Title"}, gotFields)
}

func TestDeleteSuccess(t *testing.T) {
	h := NewHandler(&fakeStore{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/events/64f1b2a9c3d4e5f601234567", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event deleted successfully")
}
