package analytics

import "context"

// Store persists link lifecycle events.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveLinkVisited(ctx context.Context, event *LinkVisitedEvent) error
	SaveLinkDeleted(ctx context.Context, event *LinkDeletedEvent) error
}
