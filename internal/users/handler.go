package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/eventhub/backend/internal/api"
	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/store"
)

// Store defines the interface for user persistence.
type Store interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenIssuer mints the bearer tokens returned by login and the OAuth
// callback. Satisfied by auth.TokenManager.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// OAuthClient is the handshake with the external identity provider.
// Satisfied by auth.GoogleClient.
type OAuthClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*auth.GoogleProfile, error)
}

// StateStore carries the OAuth state nonce through the redirect.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// Handler holds user HTTP handlers, including login and the Google
// OAuth route pair.
type Handler struct {
	users  Store
	tokens TokenIssuer
	oauth  OAuthClient
	states StateStore
	log    zerolog.Logger
}

func NewHandler(users Store, tokens TokenIssuer, oauth OAuthClient, states StateStore, log zerolog.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, oauth: oauth, states: states, log: log}
}

// List returns all users. Password hashes are never serialized.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users")
		api.Error(w, http.StatusInternalServerError, "Error fetching users", err)
		return
	}
	api.JSON(w, http.StatusOK, users)
}

// Create registers a new user with a hashed password. The response
// carries only the new id, never the stored document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	_, err := h.users.GetByEmail(r.Context(), req.Email)
	if err == nil {
		api.Error(w, http.StatusBadRequest, "Email already registered", nil)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.log.Error().Err(err).Msg("lookup user by email")
		api.Error(w, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("hash password")
		api.Error(w, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	user, err := h.users.Create(r.Context(), &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusBadRequest, "Email already registered", nil)
			return
		}
		h.log.Error().Err(err).Msg("create user")
		api.Error(w, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	api.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"userId":  user.ID.Hex(),
	})
}

// Login verifies email and password and issues a bearer token. Both
// failure cases share one message so callers cannot tell which check
// failed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusBadRequest, "Invalid email or password", nil)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("login lookup")
		api.Error(w, http.StatusInternalServerError, "Login error", err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		api.Error(w, http.StatusBadRequest, "Invalid email or password", nil)
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		h.log.Error().Err(err).Msg("issue token")
		api.Error(w, http.StatusInternalServerError, "Login error", err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// Update applies the supplied fields. A password in the patch is
// re-hashed before storage.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	delete(fields, "_id")
	delete(fields, "id")

	if pw, ok := fields["password"].(string); ok && pw != "" {
		hashed, err := auth.HashPassword(pw)
		if err != nil {
			h.log.Error().Err(err).Msg("hash password")
			api.Error(w, http.StatusInternalServerError, "Error updating user", err)
			return
		}
		fields["password"] = hashed
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), fields)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid User ID format", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusBadRequest, "User not found", nil)
	case errors.Is(err, store.ErrDuplicate):
		api.Error(w, http.StatusBadRequest, "Email already registered", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("update user")
		api.Error(w, http.StatusInternalServerError, "Error updating user", err)
	default:
		api.JSON(w, http.StatusOK, user)
	}
}

// Delete removes a user.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		api.Error(w, http.StatusBadRequest, "Invalid User ID format", nil)
	case errors.Is(err, store.ErrNotFound):
		api.Error(w, http.StatusNotFound, "User not found", nil)
	case err != nil:
		h.log.Error().Err(err).Msg("delete user")
		api.Error(w, http.StatusInternalServerError, "Error deleting user", err)
	default:
		api.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}

// GoogleLogin starts the OAuth handshake by redirecting the caller to
// the provider's consent screen.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := h.states.Issue(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("issue oauth state")
		api.Error(w, http.StatusInternalServerError, "Error starting Google login", err)
		return
	}
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback completes the handshake: it validates the state
// nonce, exchanges the code, resolves or creates the matching user,
// and issues the same bearer token format used by password login.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("error") != "" {
		api.Error(w, http.StatusUnauthorized, "Google authentication failed", errors.New(query.Get("error")))
		return
	}

	ok, err := h.states.Consume(r.Context(), query.Get("state"))
	if err != nil {
		h.log.Error().Err(err).Msg("consume oauth state")
		api.Error(w, http.StatusInternalServerError, "Error completing Google login", err)
		return
	}
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Google authentication failed", errors.New("unknown or expired state"))
		return
	}

	accessToken, err := h.oauth.Exchange(r.Context(), query.Get("code"))
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Google authentication failed", err)
		return
	}
	profile, err := h.oauth.FetchProfile(r.Context(), accessToken)
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Google authentication failed", err)
		return
	}

	user, err := h.users.GetByGoogleID(r.Context(), profile.ID)
	if errors.Is(err, store.ErrNotFound) {
		user, err = h.users.Create(r.Context(), &models.User{
			FullName: profile.Name,
			Email:    profile.Email,
			GoogleID: profile.ID,
		})
	}
	if err != nil {
		h.log.Error().Err(err).Msg("resolve google user")
		api.Error(w, http.StatusInternalServerError, "Error completing Google login", err)
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		h.log.Error().Err(err).Msg("issue token")
		api.Error(w, http.StatusInternalServerError, "Error completing Google login", err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"message": "Google login successful",
		"token":   token,
		"user":    user,
	})
}
