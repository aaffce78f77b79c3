package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/linkshort/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func setupAuthAPI(t *testing.T, secret string) *chi.Mux {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	huma.Register(api, huma.Operation{
		OperationID: "protected",
		Method:      http.MethodGet,
		Path:        "/protected",
		Middlewares: huma.Middlewares{middleware.AuthGate(api, secret)},
	}, func(_ context.Context, _ *struct{}) (*testOutput, error) {
		return &testOutput{Body: "ok"}, nil
	})

	return router
}

func TestAuthGate(t *testing.T) {
	t.Run("allows request with matching secret", func(t *testing.T) {
		router := setupAuthAPI(t, "s3cret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "s3cret")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects request with wrong secret", func(t *testing.T) {
		router := setupAuthAPI(t, "s3cret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "wrong")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with no authorization header", func(t *testing.T) {
		router := setupAuthAPI(t, "s3cret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("allows everything when no secret is configured", func(t *testing.T) {
		router := setupAuthAPI(t, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
