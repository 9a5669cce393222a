package fm

import (
	"context"
	"errors"
	"fmt"
)

// ErrCatalogUnavailable is returned when the font database cannot be read.
var ErrCatalogUnavailable = errors.New("font catalog unavailable")

// FaceID is an opaque handle for a single face, assigned by the database
// that produced it. IDs are stable for the lifetime of a database load.
type FaceID uint32

func (id FaceID) String() string {
	return fmt.Sprintf("face#%d", uint32(id))
}

// FamilyName is one family name exposed by a face along with a qualifier
// describing where it came from (for sfnt data, the name table entry).
type FamilyName struct {
	Name      string
	Qualifier string
}

// Face represents one font face known to a FontSource
type Face struct {
	ID       FaceID
	Path     string // File the face was read from, if any
	Index    int    // Index within a font collection
	Families []FamilyName
}

// FontSource defines how the catalog reads faces
type FontSource interface {
	// ForEachFace calls fn for every face in the source's native order.
	// The source is held exclusively until ForEachFace returns. Failure to
	// access the source is reported as an error wrapping
	// ErrCatalogUnavailable; an error from fn stops iteration and is
	// returned as is.
	ForEachFace(ctx context.Context, fn func(Face) error) error
}
