package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) Verify(token string) (string, error) {
	return s.userID, s.err
}

func callWithHeader(t *testing.T, verifier TokenVerifier, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var captured string
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, _ := callWithHeader(t, stubVerifier{}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No authorization header provided.")
}

func TestRequireAuthBadFormat(t *testing.T) {
	for _, header := range []string{"token-only", "Basic abc", "Bearer a b"} {
		rec, _ := callWithHeader(t, stubVerifier{}, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "Invalid authorization format.")
	}
}

func TestRequireAuthEmptyToken(t *testing.T) {
	rec, _ := callWithHeader(t, stubVerifier{}, "Bearer ")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided.")
}

func TestRequireAuthVerifierFailure(t *testing.T) {
	rec, _ := callWithHeader(t, stubVerifier{err: errors.New("token is expired")}, "Bearer abc")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token.")
	assert.Contains(t, rec.Body.String(), "token is expired")
}

func TestRequireAuthInjectsUserID(t *testing.T) {
	rec, userID := callWithHeader(t, stubVerifier{userID: "user-42"}, "Bearer good-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", userID)
}

func TestUserIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", UserID(req.Context()))
}
