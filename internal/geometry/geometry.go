// Package geometry persists a window's placement between runs as a two-line
// text blob:
//
//	default | centered | <x>, <y>
//	<width>, <height>
//
// Decoding is best-effort and never fails; anything it cannot read falls back
// to the default placement.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PositionKind selects how a window is positioned on screen.
type PositionKind int

const (
	PositionDefault PositionKind = iota
	PositionCentered
	PositionSpecific
)

func (k PositionKind) String() string {
	switch k {
	case PositionDefault:
		return "default"
	case PositionCentered:
		return "centered"
	case PositionSpecific:
		return "specific"
	}
	return fmt.Sprintf("PositionKind(%d)", int(k))
}

// Position is a window position. X and Y are only meaningful for
// PositionSpecific.
type Position struct {
	Kind PositionKind
	X, Y float64
}

// Default is the position chosen by the windowing system.
func Default() Position { return Position{Kind: PositionDefault} }

// Centered centers the window on screen.
func Centered() Position { return Position{Kind: PositionCentered} }

// Specific places the window's top-left corner at (x, y).
func Specific(x, y float64) Position {
	return Position{Kind: PositionSpecific, X: x, Y: y}
}

// Size is a window size in pixels.
type Size struct {
	Width, Height float64
}

// Valid reports whether both components are positive finite numbers.
func (s Size) Valid() bool {
	return validDimension(s.Width) && validDimension(s.Height)
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Placement is a window position plus its size.
type Placement struct {
	Position Position
	Size     Size
}

// DefaultSize is used whenever no usable size is known.
var DefaultSize = Size{Width: 800, Height: 600}

// DefaultPlacement returns a centered 800x600 window.
func DefaultPlacement() Placement {
	return Placement{Position: Centered(), Size: DefaultSize}
}

func (p Placement) String() string {
	if p.Position.Kind == PositionSpecific {
		return fmt.Sprintf("%vx%v at (%v, %v)", p.Size.Width, p.Size.Height, p.Position.X, p.Position.Y)
	}
	return fmt.Sprintf("%vx%v %s", p.Size.Width, p.Size.Height, p.Position.Kind)
}

const (
	labelDefault  = "default"
	labelCentered = "centered"
	separator     = ", "
)

// Serialize encodes p. Coordinates and dimensions are truncated toward zero.
func Serialize(p Placement) string {
	var first string
	switch p.Position.Kind {
	case PositionDefault:
		first = labelDefault
	case PositionCentered:
		first = labelCentered
	default:
		first = pair(p.Position.X, p.Position.Y)
	}
	return first + "\n" + pair(p.Size.Width, p.Size.Height)
}

func pair(a, b float64) string {
	return strconv.FormatInt(int64(toInt32(a)), 10) + separator + strconv.FormatInt(int64(toInt32(b)), 10)
}

// toInt32 truncates toward zero and saturates at the int32 bounds, so every
// written pair parses back. NaN becomes zero.
func toInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// Deserialize decodes text written by Serialize.
//
// The position labels are read back swapped: "default" decodes to Centered
// and "centered" decodes to Default. Files written by earlier releases
// depend on this, so a round trip only preserves Specific positions.
func Deserialize(text string) Placement {
	lines := splitLines(text)
	if len(lines) == 0 {
		return DefaultPlacement()
	}

	placement := Placement{Position: parsePosition(lines[0]), Size: DefaultSize}
	if len(lines) < 2 {
		return placement
	}

	if w, h, ok := parsePair(lines[1]); ok {
		size := Size{Width: float64(w), Height: float64(h)}
		if size.Valid() {
			placement.Size = size
		}
	}
	return placement
}

func parsePosition(line string) Position {
	switch {
	case strings.EqualFold(line, labelDefault):
		return Centered()
	case strings.EqualFold(line, labelCentered):
		return Default()
	}
	x, y, ok := parsePair(line)
	if !ok {
		return Centered()
	}
	return Specific(float64(x), float64(y))
}

// parsePair reads the first two integers from a ", "-separated line. Pieces
// that are not integers are skipped.
func parsePair(line string) (int32, int32, bool) {
	var values []int32
	for _, piece := range strings.Split(strings.TrimSuffix(line, separator), separator) {
		v, err := strconv.ParseInt(piece, 10, 32)
		if err != nil {
			continue
		}
		values = append(values, int32(v))
		if len(values) == 2 {
			return values[0], values[1], true
		}
	}
	return 0, 0, false
}

// splitLines splits on '\n', drops a trailing '\r' from each line and
// ignores a final empty line, the way most line readers do.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
