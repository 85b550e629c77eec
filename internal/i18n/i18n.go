// Package i18n provides message lookup for user-visible widget strings.
//
// Messages are keyed tables per locale. A Printer is obtained for a
// requested locale (a BCP 47 tag like "de" or "en-US"); negotiation
// falls back through the registered locales to English, and an unknown
// message key falls back to the key itself so a missing translation is
// visible rather than fatal.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog holds the per-locale message tables and negotiates locales.
type Catalog struct {
	tags     []language.Tag
	matcher  language.Matcher
	messages map[language.Tag]map[string]string
}

// NewCatalog creates a catalog preloaded with the built-in tables.
// The first registered locale (English) is the negotiation fallback.
func NewCatalog() *Catalog {
	c := &Catalog{
		messages: make(map[language.Tag]map[string]string),
	}
	c.Add(language.English, messagesEN)
	c.Add(language.German, messagesDE)
	c.Add(language.French, messagesFR)
	return c
}

// Add registers (or replaces) the message table for a locale.
func (c *Catalog) Add(tag language.Tag, table map[string]string) {
	if _, exists := c.messages[tag]; !exists {
		c.tags = append(c.tags, tag)
	}
	c.messages[tag] = table
	c.matcher = language.NewMatcher(c.tags)
}

// Locales returns the registered locales in registration order.
func (c *Catalog) Locales() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Printer returns a message printer for the requested locale.
// Malformed and unsupported locales negotiate down to the fallback.
func (c *Catalog) Printer(locale string) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = c.tags[0]
	}

	_, index, _ := c.matcher.Match(tag)
	matched := c.tags[index]

	return &Printer{
		tag:      matched,
		table:    c.messages[matched],
		fallback: c.messages[c.tags[0]],
		num:      message.NewPrinter(matched),
	}
}

// Printer resolves message keys for one negotiated locale.
type Printer struct {
	tag      language.Tag
	table    map[string]string
	fallback map[string]string
	num      *message.Printer
}

// Locale returns the negotiated locale.
func (p *Printer) Locale() language.Tag {
	return p.tag
}

// Get returns the message for a key, falling back to the default locale's
// table and finally to the key itself.
func (p *Printer) Get(key string) string {
	if msg, ok := p.table[key]; ok {
		return msg
	}
	if msg, ok := p.fallback[key]; ok {
		return msg
	}
	return key
}

// Format returns the message for a key with {name} placeholders replaced
// from args. Placeholders with no matching arg are left intact.
func (p *Printer) Format(key string, args map[string]string) string {
	msg := p.Get(key)
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// FormatCount behaves like Format with a {count} placeholder rendered as
// a locale-formatted integer.
func (p *Printer) FormatCount(key string, count int) string {
	return p.Format(key, map[string]string{
		"count": p.num.Sprintf("%d", count),
	})
}
