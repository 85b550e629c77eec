package tagbar

import "github.com/dshills/filterbar/internal/event/topic"

// The fixed event vocabulary shared by all filter widgets.
const (
	// TopicChanged is published by a filter input when its selection changes.
	TopicChanged topic.Topic = "filter.changed"

	// TopicApplied is published when a selection is committed (e.g., the
	// host applies a pending filter set).
	TopicApplied topic.Topic = "filter.applied"

	// TopicRemoved is published by the tag bar when one chip is removed.
	TopicRemoved topic.Topic = "filter.removed"

	// TopicCleared is published by the tag bar when all chips are cleared.
	TopicCleared topic.Topic = "filter.cleared"
)

// Source is the source identifier stamped on events the bar publishes.
// Subscribing widgets use it to tell the bar's events from their own.
const Source = "tagbar"

// ChangedPayload announces a full or partial selection update.
// If Key is set, only that filter key's values changed; otherwise
// Filters carries the complete selection.
type ChangedPayload struct {
	Source  string
	Key     string
	Values  []string
	Filters map[string][]string
}

// RemovedPayload announces the removal of one filter value.
type RemovedPayload struct {
	Source string
	Key    string
	Value  string
}

// ClearedPayload announces the removal of every filter value.
type ClearedPayload struct {
	Source string
}
