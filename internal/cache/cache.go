// Package cache stores fetched link lists between searches and between runs.
//
// Entries are keyed by locale, relation and title. They are immutable: the
// first Put for a key wins and later writes are ignored. Nothing expires.
//
// Stores follow a load-at-startup, save-at-shutdown lifecycle. Load and
// Save are no-ops for stores that persist on every write.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Relations a link list can describe
const (
	RelationLinks     = "links"
	RelationLinksHere = "linkshere"
)

// Key identifies one cached link list
type Key struct {
	Locale   string
	Relation string
	Title    string
}

// Links is the key for outbound links of title
func Links(locale, title string) Key {
	return Key{Locale: locale, Relation: RelationLinks, Title: title}
}

// LinksHere is the key for inbound links of title
func LinksHere(locale, title string) Key {
	return Key{Locale: locale, Relation: RelationLinksHere, Title: title}
}

// String encodes the key. Titles may contain ':' so they go last.
func (k Key) String() string {
	return k.Locale + ":" + k.Relation + ":" + k.Title
}

// ParseKey decodes a key produced by Key.String
func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Key{}, fmt.Errorf("malformed cache key %q", s)
	}
	return Key{Locale: parts[0], Relation: parts[1], Title: parts[2]}, nil
}

// Store is a concurrent-safe link cache
type Store interface {
	// Get returns the cached links for key
	Get(ctx context.Context, key Key) ([]string, bool)
	// Put stores links for key unless an entry already exists
	Put(ctx context.Context, key Key, links []string) error
	// Len returns the number of entries
	Len(ctx context.Context) (int, error)
	// Load reads persisted state. Missing state is not an error.
	Load(ctx context.Context) error
	// Save persists state. Callers treat failures as best effort.
	Save(ctx context.Context) error
	Close() error
}
