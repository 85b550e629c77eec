package tagbar

import "sync"

// Filter is one active filter key with its selected values.
type Filter struct {
	Key    string
	Values []string
}

// State holds the active filter selections in first-seen key order.
// It is safe for concurrent access: bus handlers may update it while
// the render loop reads it.
type State struct {
	mu     sync.RWMutex
	order  []string
	values map[string][]string
}

// NewState creates an empty filter state.
func NewState() *State {
	return &State{
		values: make(map[string][]string),
	}
}

// Set replaces the values for one filter key. Setting an empty value
// list removes the key. New keys append to the display order.
func (s *State) Set(key string, values []string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(values) == 0 {
		s.removeKeyLocked(key)
		return
	}

	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = append([]string(nil), values...)
}

// Replace swaps the entire selection, keeping the iteration order of
// the keys slice.
func (s *State) Replace(filters map[string][]string, keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.values = make(map[string][]string, len(filters))

	appendKey := func(key string) {
		values := filters[key]
		if len(values) == 0 {
			return
		}
		if _, exists := s.values[key]; exists {
			return
		}
		s.order = append(s.order, key)
		s.values[key] = append([]string(nil), values...)
	}

	for _, key := range keys {
		appendKey(key)
	}
	// Any keys not named in the order slice still land, after the
	// ordered ones.
	for key := range filters {
		appendKey(key)
	}
}

// Remove deletes one value from one key, dropping the key when its last
// value goes. Returns false if the pair was not present.
func (s *State) Remove(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, exists := s.values[key]
	if !exists {
		return false
	}

	for i, v := range values {
		if v == value {
			values = append(values[:i], values[i+1:]...)
			if len(values) == 0 {
				s.removeKeyLocked(key)
			} else {
				s.values[key] = values
			}
			return true
		}
	}
	return false
}

// removeKeyLocked drops a key and its order entry. Caller holds s.mu.
func (s *State) removeKeyLocked(key string) {
	if _, exists := s.values[key]; !exists {
		return
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes every selection and returns how many values were dropped.
func (s *State) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, values := range s.values {
		n += len(values)
	}
	s.order = s.order[:0]
	s.values = make(map[string][]string)
	return n
}

// Count returns the total number of selected values across all keys.
func (s *State) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, values := range s.values {
		n += len(values)
	}
	return n
}

// Len returns the number of active filter keys.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// IsEmpty returns true when no filter is active.
func (s *State) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the values for one key.
func (s *State) Get(key string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, exists := s.values[key]
	if !exists {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// Filters returns a snapshot of the active filters in display order.
func (s *State) Filters() []Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Filter, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, Filter{
			Key:    key,
			Values: append([]string(nil), s.values[key]...),
		})
	}
	return out
}
