package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/linkshort/internal/analytics"
	"github.com/serroba/linkshort/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	assert.NotNil(t, noop)
}

func TestNoop_SaveLinkCreated(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkCreatedEvent{
		ID:          "abc123",
		OriginalURL: "https://example.com",
		ShortURL:    "http://localhost:8888/abc123",
		CreatedAt:   time.Now(),
	}

	require.NoError(t, noop.SaveLinkCreated(context.Background(), event))
}

func TestNoop_SaveLinkVisited(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkVisitedEvent{
		ID:        "abc123",
		VisitedAt: time.Now(),
		ClientIP:  "127.0.0.1",
		UserAgent: "TestAgent/1.0",
		Referrer:  "https://referrer.com",
	}

	require.NoError(t, noop.SaveLinkVisited(context.Background(), event))
}

func TestNoop_SaveLinkDeleted(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkDeletedEvent{
		ID:        "abc123",
		RefID:     "user_1",
		DeletedAt: time.Now(),
	}

	require.NoError(t, noop.SaveLinkDeleted(context.Background(), event))
}
