package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchesGenerated EventType = "matches-generated"
	EventPlayerUpdated    EventType = "player-updated"
	EventNotifyNewMatches EventType = "notify-new-matches"
)

// MatchesGeneratedEvent is published after a generation run.
type MatchesGeneratedEvent struct {
	BusinessPublicID string   `msgpack:"business_public_id"`
	Date             string   `msgpack:"date"`
	MatchPublicIDs   []string `msgpack:"match_public_ids"`
}

// PlayerUpdatedEvent is published after a lifecycle update.
type PlayerUpdatedEvent struct {
	MatchPublicID string `msgpack:"match_public_id"`
	UserPublicID  string `msgpack:"user_public_id"`
	Reserve       string `msgpack:"reserve"`
}

// NotifyNewMatchesEvent asks the push consumer to notify freshly assigned
// players.
type NotifyNewMatchesEvent struct {
	UserPublicIDs []string `msgpack:"user_public_ids"`
}
