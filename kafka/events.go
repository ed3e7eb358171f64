package kafka

import "time"

// Topic for consumer lifecycle events
const TopicFavoriteEvents = "consumer-favorites.events"

// Event types
const (
	EventTypeConsumerCreated = "consumer.created"
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
)

// FavoriteEvent is the payload published for every lifecycle event
type FavoriteEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ConsumerID string    `json:"consumer_id"`
	ProductID  string    `json:"product_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
