package store

import (
	"context"

	"github.com/serroba/linkshort/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. It is the sink used when
// no database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a logging-only analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created event received",
		zap.String("id", event.ID),
		zap.String("originalUrl", event.OriginalURL),
		zap.String("refId", event.RefID),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	n.logger.Info("link visited event received",
		zap.String("id", event.ID),
		zap.Time("visitedAt", event.VisitedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (n *Noop) SaveLinkDeleted(_ context.Context, event *analytics.LinkDeletedEvent) error {
	n.logger.Info("link deleted event received",
		zap.String("id", event.ID),
		zap.String("refId", event.RefID),
		zap.Time("deletedAt", event.DeletedAt),
	)

	return nil
}
