package fm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/sync/errgroup"
)

// Name qualifiers reported in FamilyName.Qualifier.
const (
	QualifierTypographic = "typographic"
	QualifierFamily      = "family"
)

// Database is a FontSource backed by font files on disk. It is loaded
// lazily on first access and holds a single lock for every read, so an
// enumeration never observes a concurrent reload.
type Database struct {
	dirs        []string
	concurrency int
	log         zerolog.Logger
	parse       func(path string) []Face

	mu     sync.Mutex
	loaded bool
	faces  []Face
	poison error
}

// DatabaseOption configures a Database
type DatabaseOption func(*Database)

// WithLogger sets the logger used for scan diagnostics
func WithLogger(log zerolog.Logger) DatabaseOption {
	return func(db *Database) {
		db.log = log
	}
}

// WithConcurrency bounds the number of files parsed at once. Values below
// one mean runtime.NumCPU().
func WithConcurrency(n int) DatabaseOption {
	return func(db *Database) {
		db.concurrency = n
	}
}

// NewDatabase creates a database over the given font directories. Nothing
// is read until the first call to ForEachFace.
func NewDatabase(dirs []string, opts ...DatabaseOption) *Database {
	db := &Database{
		dirs: append([]string(nil), dirs...),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.concurrency < 1 {
		db.concurrency = runtime.NumCPU()
	}
	db.parse = db.parseFile
	return db
}

// ForEachFace implements FontSource.
func (db *Database) ForEachFace(ctx context.Context, fn func(Face) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	for _, face := range db.faces {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		if err := fn(face); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate drops the loaded faces, and any failure from a previous load,
// so that the next access rescans the directories.
func (db *Database) Invalidate() {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.loaded = false
	db.faces = nil
	db.poison = nil
}

// Len returns the number of faces currently loaded
func (db *Database) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.faces)
}

// Dirs returns the directories the database scans
func (db *Database) Dirs() []string {
	return append([]string(nil), db.dirs...)
}

func (db *Database) ensureLoadedLocked(ctx context.Context) error {
	if db.poison != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, db.poison)
	}
	if db.loaded {
		return nil
	}

	faces, err := db.scan(ctx)
	if err != nil {
		var pe *poisonError
		if errors.As(err, &pe) {
			db.poison = err
		}
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	db.faces = faces
	db.loaded = true
	db.log.Debug().Int("faces", len(faces)).Strs("dirs", db.dirs).Msg("font database loaded")
	return nil
}

// poisonError marks a load that panicked. The database refuses further
// reads until it is invalidated.
type poisonError struct {
	value any
}

func (e *poisonError) Error() string {
	return fmt.Sprintf("font database poisoned: %v", e.value)
}

func (db *Database) scan(ctx context.Context) (faces []Face, err error) {
	defer func() {
		if r := recover(); r != nil {
			faces, err = nil, &poisonError{value: r}
		}
	}()

	paths, err := db.collectFiles()
	if err != nil {
		return nil, err
	}

	parsed := make([][]Face, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(db.concurrency)

	for i, path := range paths {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &poisonError{value: r}
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed[i] = db.parse(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var next FaceID
	for _, fileFaces := range parsed {
		for _, face := range fileFaces {
			next++
			face.ID = next
			faces = append(faces, face)
		}
	}
	return faces, nil
}

// collectFiles walks every directory and returns the sorted, deduplicated
// list of font files. Missing or unreadable directories are skipped.
func (db *Database) collectFiles() ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, dir := range db.dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			db.log.Debug().Str("dir", dir).Msg("skipping missing font directory")
			continue
		}

		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// We intentionally ignore permission errors inside system directories
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isFontFile(d.Name()) {
				return nil
			}
			if _, exists := seen[path]; exists {
				return nil
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking directory %s: %w", dir, err)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// parseFile returns the faces in a font file. Files that cannot be read or
// parsed yield no faces.
func (db *Database) parseFile(path string) []Face {
	data, err := os.ReadFile(path)
	if err != nil {
		db.log.Debug().Err(err).Str("path", path).Msg("reading font file")
		return nil
	}

	collection, err := sfnt.ParseCollection(data)
	if err != nil {
		db.log.Debug().Err(err).Str("path", path).Msg("parsing font file")
		return nil
	}

	var faces []Face
	var buf sfnt.Buffer
	for i := 0; i < collection.NumFonts(); i++ {
		f, err := collection.Font(i)
		if err != nil {
			db.log.Debug().Err(err).Str("path", path).Int("index", i).Msg("parsing font in collection")
			continue
		}

		families := familyNames(f, &buf)
		if len(families) == 0 {
			continue
		}
		faces = append(faces, Face{Path: path, Index: i, Families: families})
	}
	return faces
}

func familyNames(f *sfnt.Font, buf *sfnt.Buffer) []FamilyName {
	var names []FamilyName
	add := func(id sfnt.NameID, qualifier string) {
		name, err := f.Name(buf, id)
		if err != nil {
			return
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		for _, existing := range names {
			if existing.Name == name {
				return
			}
		}
		names = append(names, FamilyName{Name: name, Qualifier: qualifier})
	}

	add(sfnt.NameIDTypographicFamily, QualifierTypographic)
	add(sfnt.NameIDFamily, QualifierFamily)
	return names
}

// Helper functions

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}
