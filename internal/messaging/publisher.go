package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish publishes a typed event. Implementations must be safe for
// concurrent use.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a publisher and topic into a typed publish function.
// Events are JSON-encoded into a single watermill message.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event for %s: %w", topic, err)
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// PublisherGroup owns the underlying publisher's lifecycle so typed publish
// functions stay plain values.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a message publisher.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the underlying publisher for NewPublishFunc.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
