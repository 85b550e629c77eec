// Package topic provides dot-notation event names and pattern matching
// for the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	filter.removed
//	filter.cleared
//	input.category.changed
//
// The bus itself treats topics as opaque keys; the fixed vocabulary a
// deployment actually uses is documented by the consuming packages (see
// the tagbar package for the filter widget vocabulary).
//
// # Wildcards
//
// Subscription patterns may contain wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	filter.*       matches filter.removed, filter.cleared
//	filter.**      matches filter.removed, filter.a.b.c
//	*.changed      matches input.changed, config.changed
//
// A pattern without wildcards matches only itself, so purely exact-name
// vocabularies behave as a plain map lookup.
package topic
