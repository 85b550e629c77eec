package event

import (
	"sort"
	"sync"

	"github.com/dshills/filterbar/internal/event/topic"
)

// Registry manages subscriptions organized by topic pattern, with a
// token index for O(1) cancellation. It is thread-safe for concurrent
// access, and every lookup returns a snapshot copy so dispatch can run
// outside the lock.
type Registry struct {
	mu      sync.RWMutex
	subs    map[topic.Topic][]*subscription
	byID    map[string]*subscription
	matcher *topic.Matcher
}

// NewRegistry creates a new subscription registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:    make(map[topic.Topic][]*subscription),
		byID:    make(map[string]*subscription),
		matcher: topic.NewMatcher(),
	}
}

// Add adds a subscription for a topic pattern, creating the topic's
// collection lazily if this is its first subscriber.
// The subscription is inserted in priority order (lower priority values
// first); equal priorities keep registration order.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topicPattern := sub.Topic()

	subs := r.subs[topicPattern]
	subs = append(subs, sub)

	// Stable: equal-priority subscriptions stay in registration order.
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Config().Priority < subs[j].Config().Priority
	})

	r.subs[topicPattern] = subs
	r.byID[sub.ID()] = sub
	r.matcher.Add(topicPattern)
}

// Remove removes a subscription by token.
// Returns false if the token is unknown or already removed.
func (r *Registry) Remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	r.removeLocked(subID, sub.Topic())
	return true
}

// removeLocked removes one subscription. Caller holds r.mu.
func (r *Registry) removeLocked(subID string, topicPattern topic.Topic) {
	subs := r.subs[topicPattern]
	for i, s := range subs {
		if s.ID() == subID {
			r.subs[topicPattern] = append(subs[:i], subs[i+1:]...)
			break
		}
	}

	// Clean up empty topic entries
	if len(r.subs[topicPattern]) == 0 {
		delete(r.subs, topicPattern)
		r.matcher.Remove(topicPattern)
	}

	delete(r.byID, subID)
}

// RemoveTopic removes every subscription registered under the given
// topic pattern. Returns the number of subscriptions removed.
func (r *Registry) RemoveTopic(topicPattern topic.Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[topicPattern]
	for _, s := range subs {
		s.Cancel()
		delete(r.byID, s.ID())
	}
	removed := len(subs)

	delete(r.subs, topicPattern)
	r.matcher.Remove(topicPattern)

	return removed
}

// Get returns a subscription by token.
func (r *Registry) Get(subID string) (*subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.byID[subID]
	return sub, exists
}

// GetByTopic returns all subscriptions for a specific topic pattern.
// Returns a copy to prevent modification during iteration.
func (r *Registry) GetByTopic(topicPattern topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[topicPattern]
	if len(subs) == 0 {
		return nil
	}

	result := make([]*subscription, len(subs))
	copy(result, subs)
	return result
}

// Match returns all subscriptions whose pattern matches the given event
// topic, in priority order (registration order within equal priority).
// The returned slice is a snapshot: handlers invoked while iterating it
// may freely subscribe or unsubscribe without corrupting iteration.
func (r *Registry) Match(eventTopic topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patterns := r.matcher.Match(eventTopic)
	if len(patterns) == 0 {
		return nil
	}

	var all []*subscription
	for _, pattern := range patterns {
		all = append(all, r.subs[pattern]...)
	}

	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Config().Priority < all[j].Config().Priority
	})

	return all
}

// MatchActive returns all active subscriptions that match the given event topic.
// Cancelled subscriptions are filtered out.
func (r *Registry) MatchActive(eventTopic topic.Topic) []*subscription {
	all := r.Match(eventTopic)
	if len(all) == 0 {
		return nil
	}

	result := make([]*subscription, 0, len(all))
	for _, sub := range all {
		if sub.IsActive() {
			result = append(result, sub)
		}
	}
	return result
}

// Count returns the total number of subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// CountByTopic returns the number of subscriptions for a specific topic pattern.
func (r *Registry) CountByTopic(topicPattern topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[topicPattern])
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// Topics returns all topic patterns with live subscriptions.
func (r *Registry) Topics() []topic.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subs) == 0 {
		return nil
	}

	topics := make([]topic.Topic, 0, len(r.subs))
	for t := range r.subs {
		topics = append(topics, t)
	}
	return topics
}

// Clear removes all subscriptions for all topics.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.Cancel()
	}

	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
	r.matcher.Clear()
}
