package event

import (
	"strings"

	"github.com/dshills/filterbar/internal/event/topic"
)

// Common delivery predicates for event subscription.
//
// The tag bar and its sibling filter inputs all publish and subscribe on
// the same topics, so source-based predicates are how a widget ignores
// its own echoes.

// FilterBySource creates a filter that only allows events from the specified source.
func FilterBySource(source string) FilterFunc {
	return func(event any) bool {
		return extractSource(event) == source
	}
}

// FilterBySourcePrefix creates a filter that only allows events from sources
// starting with prefix (e.g., "input." for all filter-input widgets).
func FilterBySourcePrefix(prefix string) FilterFunc {
	return func(event any) bool {
		source := extractSource(event)
		return source != "" && strings.HasPrefix(source, prefix)
	}
}

// FilterBySources creates a filter that only allows events from one of the
// specified sources.
func FilterBySources(sources ...string) FilterFunc {
	sourceSet := make(map[string]bool, len(sources))
	for _, s := range sources {
		sourceSet[s] = true
	}
	return func(event any) bool {
		return sourceSet[extractSource(event)]
	}
}

// FilterExcludeSource creates a filter that excludes events from the
// specified source. A widget subscribes with its own source excluded so
// that republishing a change does not feed back into itself.
func FilterExcludeSource(source string) FilterFunc {
	return func(event any) bool {
		return extractSource(event) != source
	}
}

// FilterByTopicPrefix creates a filter that only allows events whose topic
// starts with the given prefix, matching complete segments.
func FilterByTopicPrefix(prefix topic.Topic) FilterFunc {
	return func(event any) bool {
		if tp, ok := event.(TopicProvider); ok {
			return tp.EventTopic().HasPrefix(prefix)
		}
		return false
	}
}

// FilterAll combines filters so an event is delivered only if every
// filter allows it.
func FilterAll(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if !f(event) {
				return false
			}
		}
		return true
	}
}

// FilterAny combines filters so an event is delivered if at least one
// filter allows it.
func FilterAny(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if f(event) {
				return true
			}
		}
		return false
	}
}
