package topic

import (
	"reflect"
	"testing"
)

func TestMatcher_ExactMatch(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.cleared"))

	matches := m.Match(Topic("filter.removed"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0] != Topic("filter.removed") {
		t.Errorf("expected filter.removed, got %q", matches[0])
	}

	if got := m.Match(Topic("filter.applied")); got != nil {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestMatcher_WildcardMatch(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.*"))
	m.Add(Topic("**"))

	matches := m.Match(Topic("filter.removed"))
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %v", len(matches), matches)
	}

	matches = m.Match(Topic("input.changed"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(matches), matches)
	}
	if matches[0] != Topic("**") {
		t.Errorf("expected **, got %q", matches[0])
	}
}

func TestMatcher_AddDuplicate(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.removed"))

	if m.Len() != 1 {
		t.Errorf("expected Len 1, got %d", m.Len())
	}
	if got := m.Match(Topic("filter.removed")); len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}
}

func TestMatcher_Remove(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.*"))

	m.Remove(Topic("filter.*"))
	if matches := m.Match(Topic("filter.removed")); len(matches) != 1 {
		t.Fatalf("expected 1 match after remove, got %d", len(matches))
	}

	// Removing an unknown pattern is a no-op
	m.Remove(Topic("never.added"))
	if m.Len() != 1 {
		t.Errorf("expected Len 1, got %d", m.Len())
	}
}

func TestMatcher_Has(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.*"))

	if !m.Has(Topic("filter.removed")) {
		t.Error("expected Has(filter.removed)")
	}
	if !m.Has(Topic("filter.*")) {
		t.Error("expected Has(filter.*)")
	}
	if m.Has(Topic("filter.cleared")) {
		t.Error("did not expect Has(filter.cleared)")
	}
}

func TestMatcher_Clear(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.removed"))
	m.Add(Topic("filter.*"))

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected Len 0 after Clear, got %d", m.Len())
	}
	if got := m.Match(Topic("filter.removed")); got != nil {
		t.Errorf("expected no matches after Clear, got %v", got)
	}
}

func TestMatcher_EmptyTopic(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic(""))
	if m.Len() != 0 {
		t.Errorf("empty pattern should not register, Len = %d", m.Len())
	}
	if got := m.Match(Topic("")); got != nil {
		t.Errorf("expected no matches for empty topic, got %v", got)
	}
}

func TestMatcher_MatchOrderIsDeterministic(t *testing.T) {
	m := NewMatcher()
	m.Add(Topic("filter.changed"))
	m.Add(Topic("filter.*"))
	m.Add(Topic("**"))

	want := []Topic{"filter.changed", "**", "filter.*"}
	for i := 0; i < 50; i++ {
		got := m.Match(Topic("filter.changed"))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Match order varied on run %d: got %v, want %v", i, got, want)
		}
	}
}
