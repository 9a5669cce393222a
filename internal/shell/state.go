// Package shell holds the application state machine shared by the GUI and
// terminal front-ends. Update is a pure reducer; Runtime executes the
// commands it returns.
package shell

import (
	"fmt"
	"math"

	"github.com/logandonley/fontlist/internal/geometry"
	"github.com/logandonley/fontlist/pkg/fm"
)

// NoHover marks that no catalog row is hovered.
const NoHover = -1

// State is everything a front-end needs to render.
type State struct {
	Placement geometry.Placement
	Fonts     []fm.FontEntry
	Hovered   int
	Stale     bool  // font directories changed since the last rebuild
	Err       error // last rebuild failure, cleared by a successful rebuild
}

// NewState returns the startup state: the given placement and an empty
// catalog.
func NewState(placement geometry.Placement) State {
	return State{Placement: placement, Hovered: NoHover}
}

// HoveredEntry returns the hovered entry, if any.
func (s State) HoveredEntry() (fm.FontEntry, bool) {
	if s.Hovered < 0 || s.Hovered >= len(s.Fonts) {
		return fm.FontEntry{}, false
	}
	return s.Fonts[s.Hovered], true
}

// Status describes the state in short phrases for a status line.
func (s State) Status() []string {
	parts := []string{fmt.Sprintf("%d families", len(s.Fonts))}
	if entry, ok := s.HoveredEntry(); ok {
		parts = append(parts, fmt.Sprintf("%s (%s)", entry.Name, entry.ID))
	}
	if s.Stale {
		parts = append(parts, "fonts changed on disk, rebuild to refresh")
	}
	if s.Err != nil {
		parts = append(parts, s.Err.Error())
	}
	return parts
}

// Event is an input to Update.
type Event interface {
	event()
}

type (
	// WindowResized reports the new window size.
	WindowResized struct{ Width, Height float64 }
	// WindowMoved reports the window's new top-left corner.
	WindowMoved struct{ X, Y float64 }
	// CloseRequested asks to persist geometry and close the window.
	CloseRequested struct{}
	// RebuildRequested is the user asking for a fresh catalog.
	RebuildRequested struct{}
	// CatalogRebuilt carries the result of a RebuildCatalog command.
	CatalogRebuilt struct {
		Entries []fm.FontEntry
		Err     error
	}
	// Hovered marks a catalog row as hovered.
	Hovered struct{ Index int }
	// FontsChanged reports that the font directories changed on disk.
	FontsChanged struct{}
)

func (WindowResized) event()    {}
func (WindowMoved) event()      {}
func (CloseRequested) event()   {}
func (RebuildRequested) event() {}
func (CatalogRebuilt) event()   {}
func (Hovered) event()          {}
func (FontsChanged) event()     {}

// Command is a side effect requested by Update.
type Command interface {
	command()
}

type (
	// RebuildCatalog asks the runtime to rebuild the font catalog.
	RebuildCatalog struct{}
	// SaveGeometry asks the runtime to persist the serialized placement.
	SaveGeometry struct{ Text string }
	// CloseWindow asks the front-end to finish closing.
	CloseWindow struct{}
)

func (RebuildCatalog) command() {}
func (SaveGeometry) command()   {}
func (CloseWindow) command()    {}

// Update applies ev to s. It performs no I/O.
func Update(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case WindowResized:
		size := geometry.Size{Width: ev.Width, Height: ev.Height}
		if size.Valid() {
			s.Placement.Size = size
		}
	case WindowMoved:
		if finite(ev.X) && finite(ev.Y) {
			s.Placement.Position = geometry.Specific(ev.X, ev.Y)
		}
	case CloseRequested:
		return s, []Command{
			SaveGeometry{Text: geometry.Serialize(s.Placement)},
			CloseWindow{},
		}
	case RebuildRequested:
		s.Hovered = NoHover
		return s, []Command{RebuildCatalog{}}
	case CatalogRebuilt:
		if ev.Err != nil {
			s.Err = ev.Err
			return s, nil
		}
		s.Fonts = ev.Entries
		s.Hovered = NoHover
		s.Stale = false
		s.Err = nil
	case Hovered:
		if ev.Index >= 0 && ev.Index < len(s.Fonts) {
			s.Hovered = ev.Index
		}
	case FontsChanged:
		s.Stale = true
	}
	return s, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
