package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations. The redis checker is nil when the
// analytics stream runs in-process.
type Handler struct {
	store Checker
	redis Checker
}

// NewHandler creates a health handler. redis may be nil.
func NewHandler(store, redis Checker) *Handler {
	return &Handler{store: store, redis: redis}
}

// Response is the health check response.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Store  string `json:"store"`
		Redis  string `json:"redis,omitempty"`
	}
}

// Check reports the health of the embedded store and, when configured, the
// analytics stream's Redis.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Store = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Store = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			resp.Body.Redis = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Redis = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health check route.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
