// Package food holds the static food catalog and the free-text resolver on top of it.
package food

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, ordered set of foods keyed by canonical name.
// It is built once at startup and is safe for concurrent readers.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog validates entries and builds a catalog preserving their order
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFood, e.Name)
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e.clone())
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid input
func MustNewCatalog(entries []Entry) *Catalog {
	c, err := NewCatalog(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the entry for an exact, case-insensitive name
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i].clone(), true
}

// Names returns the canonical names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of every entry in catalog order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of foods in the catalog
func (c *Catalog) Len() int {
	return len(c.entries)
}
