package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitework-backend/internal/api"
	"sitework-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testTokenManager(t *testing.T) security.TokenManager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("test-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return security.NewTokenManager(testSecret, string(hash), 60)
}

func TestRequestIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Context().Value(api.CtxRequestID))
		w.WriteHeader(http.StatusOK)
	})

	handler := api.RequestIDMiddleware(next)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRequestIDMiddleware_KeepsCallerID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	handler := api.RequestIDMiddleware(next)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

func TestCORSMiddleware_Options(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	handler := api.CORSMiddleware(next)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestRecoveryMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := api.RecoveryMiddleware(next)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := testTokenManager(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "site-ui", r.Context().Value(api.CtxClient))
		w.WriteHeader(http.StatusOK)
	})
	handler := api.AuthMiddleware(tokens)(next)

	t.Run("MissingHeader", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/tools", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.ExchangeAPIKey("test-key", "site-ui")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("TokenQueryParamOnEventStream", func(t *testing.T) {
		token, err := tokens.ExchangeAPIKey("test-key", "site-ui")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/events?token="+token, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
