package fm

import (
	"context"
	"fmt"
)

// FontEntry is one row of the catalog. Two entries are the same font when
// they share an ID; Name is descriptive.
type FontEntry struct {
	ID   FaceID
	Name string
}

// Equal reports whether e and other refer to the same face.
func (e FontEntry) Equal(other FontEntry) bool {
	return e.ID == other.ID
}

func (e FontEntry) String() string {
	return e.Name
}

// Catalog is an ordered list of font families with duplicate names removed.
// A face exposing several distinct family names may appear more than once.
type Catalog struct {
	source  FontSource
	entries []FontEntry
}

// NewCatalog creates an empty catalog reading from source
func NewCatalog(source FontSource) *Catalog {
	return &Catalog{source: source}
}

// Rebuild replaces the catalog contents with the families currently in the
// source. Names keep the order in which they were first seen; a name seen
// under an earlier face is not added again for a later one. On error the
// previous contents are left untouched.
func (c *Catalog) Rebuild(ctx context.Context) error {
	if c.source == nil {
		return fmt.Errorf("%w: no font source configured", ErrCatalogUnavailable)
	}

	entries := make([]FontEntry, 0, len(c.entries))
	seen := make(map[string]struct{})

	err := c.source.ForEachFace(ctx, func(face Face) error {
		for _, family := range face.Families {
			if _, exists := seen[family.Name]; exists {
				continue
			}
			seen[family.Name] = struct{}{}
			entries = append(entries, FontEntry{ID: face.ID, Name: family.Name})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rebuilding catalog: %w", err)
	}

	c.entries = entries
	return nil
}

// Entries returns a copy of the current catalog
func (c *Catalog) Entries() []FontEntry {
	out := make([]FontEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}
