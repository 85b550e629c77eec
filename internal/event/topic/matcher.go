package topic

import (
	"sort"
	"sync"
)

// Matcher tracks a set of subscription patterns and resolves which of them
// match a concrete event topic. It is safe for concurrent use.
//
// The registered pattern set is expected to stay small (a fixed vocabulary
// plus the occasional wildcard), so matching is a direct walk over the set
// rather than anything fancier.
type Matcher struct {
	mu       sync.RWMutex
	exact    map[Topic]struct{}
	patterns map[Topic]struct{}
}

// NewMatcher creates a new topic matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		exact:    make(map[Topic]struct{}),
		patterns: make(map[Topic]struct{}),
	}
}

// Add adds a pattern to the matcher.
// The pattern may contain wildcards (* and **). Adding the same pattern
// twice is a no-op.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern.IsPattern() {
		m.patterns[pattern] = struct{}{}
	} else {
		m.exact[pattern] = struct{}{}
	}
}

// Remove removes a pattern from the matcher.
// Removing an unknown pattern is a no-op.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.exact, pattern)
	delete(m.patterns, pattern)
}

// Has returns true if the pattern is registered.
func (m *Matcher) Has(pattern Topic) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.exact[pattern]; ok {
		return true
	}
	_, ok := m.patterns[pattern]
	return ok
}

// Match returns all registered patterns that match the given topic.
// The topic should be a concrete event name, not a pattern.
// The exact name comes first, then matching wildcard patterns in
// lexical order, so callers see a deterministic order regardless of
// map iteration.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Topic
	if _, ok := m.exact[eventTopic]; ok {
		matches = append(matches, eventTopic)
	}

	n := len(matches)
	for pattern := range m.patterns {
		if eventTopic.Matches(pattern) {
			matches = append(matches, pattern)
		}
	}
	wild := matches[n:]
	sort.Slice(wild, func(i, j int) bool { return wild[i] < wild[j] })

	return matches
}

// Len returns the number of registered patterns.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.exact) + len(m.patterns)
}

// Clear removes all registered patterns.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exact = make(map[Topic]struct{})
	m.patterns = make(map[Topic]struct{})
}
