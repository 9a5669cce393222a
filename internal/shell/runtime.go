package shell

import (
	"context"
	"sync"

	"github.com/logandonley/fontlist/internal/geometry"
	"github.com/logandonley/fontlist/pkg/fm"
	"github.com/rs/zerolog"
)

// GeometryWriter persists the serialized placement.
type GeometryWriter func(text string) error

// FileGeometryWriter writes the placement to path, creating directories as
// needed.
func FileGeometryWriter(path string) GeometryWriter {
	return func(text string) error {
		return geometry.WriteFile(path, text)
	}
}

// Runtime owns the state and runs commands synchronously on the caller's
// goroutine. It is not safe for concurrent use; front-ends dispatch from
// their UI thread.
type Runtime struct {
	state   State
	catalog *fm.Catalog
	save    GeometryWriter
	log     zerolog.Logger

	// OnChange is called after every dispatch with the new state.
	OnChange func(State)
	// OnClose completes a close once geometry has been saved.
	OnClose func()
}

// NewRuntime creates a runtime starting from NewState(placement)
func NewRuntime(placement geometry.Placement, catalog *fm.Catalog, save GeometryWriter, log zerolog.Logger) *Runtime {
	return &Runtime{
		state:   NewState(placement),
		catalog: catalog,
		save:    save,
		log:     log,
	}
}

// State returns the current state
func (r *Runtime) State() State {
	return r.state
}

// Dispatch feeds ev through Update and executes the resulting commands.
func (r *Runtime) Dispatch(ctx context.Context, ev Event) {
	r.apply(ctx, ev)
	if r.OnChange != nil {
		r.OnChange(r.state)
	}
}

func (r *Runtime) apply(ctx context.Context, ev Event) {
	var cmds []Command
	r.state, cmds = Update(r.state, ev)

	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case RebuildCatalog:
			r.apply(ctx, r.rebuild(ctx))
		case SaveGeometry:
			if r.save == nil {
				continue
			}
			// Write failures are dropped; the close still completes.
			if err := r.save(cmd.Text); err != nil {
				r.log.Debug().Err(err).Msg("saving window geometry")
			}
		case CloseWindow:
			if r.OnClose != nil {
				r.OnClose()
			}
		}
	}
}

func (r *Runtime) rebuild(ctx context.Context) CatalogRebuilt {
	if err := r.catalog.Rebuild(ctx); err != nil {
		r.log.Warn().Err(err).Msg("font catalog rebuild failed")
		return CatalogRebuilt{Err: err}
	}
	entries := r.catalog.Entries()
	r.log.Info().Int("entries", len(entries)).Msg("font catalog rebuilt")
	return CatalogRebuilt{Entries: entries}
}

// CloseOnDone calls closeFn once ctx is cancelled, unless the returned stop
// function runs first. Front-ends whose event loop ignores the context use
// it to turn an interrupt into a normal close.
func CloseOnDone(ctx context.Context, closeFn func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			closeFn()
		case <-done:
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
