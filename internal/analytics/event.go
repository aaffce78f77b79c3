package analytics

import "time"

// Topics for link lifecycle events.
const (
	TopicLinkCreated = "link.created"
	TopicLinkVisited = "link.visited"
	TopicLinkDeleted = "link.deleted"
)

// LinkCreatedEvent is emitted when a short link is created.
type LinkCreatedEvent struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	RefID       string    `json:"refId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// LinkVisitedEvent is emitted when a short link is resolved to its original
// URL. The stored record is not touched: the click counter stays at zero and
// visit history lives entirely in this stream.
type LinkVisitedEvent struct {
	ID        string    `json:"id"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
}

// LinkDeletedEvent is emitted when a short link is deleted.
type LinkDeletedEvent struct {
	ID        string    `json:"id"`
	RefID     string    `json:"refId,omitempty"`
	DeletedAt time.Time `json:"deletedAt"`
}
