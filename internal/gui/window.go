// Package gui is the desktop front-end, built on fyne.
package gui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/logandonley/fontlist/internal/geometry"
	"github.com/logandonley/fontlist/internal/shell"
	"github.com/logandonley/fontlist/pkg/fm"
)

const (
	AppID       = "io.github.logandonley.fontlist"
	WindowTitle = "Font thingy"
	Placeholder = "Blocking waiting for file lock on build directory"
)

// Window is the main application window
type Window struct {
	ctx     context.Context
	app     fyne.App
	window  fyne.Window
	runtime *shell.Runtime
	log     zerolog.Logger

	fonts  []fm.FontEntry
	list   *widget.List
	status *widget.Label
}

// New creates the window and wires it to runtime. The runtime's OnChange
// and OnClose hooks are taken over by the window.
func New(ctx context.Context, runtime *shell.Runtime, log zerolog.Logger) *Window {
	fyneApp := app.NewWithID(AppID)
	w := &Window{
		ctx:     ctx,
		app:     fyneApp,
		window:  fyneApp.NewWindow(WindowTitle),
		runtime: runtime,
		log:     log,
	}

	runtime.OnChange = w.render
	runtime.OnClose = w.finishClose

	w.window.SetContent(w.build())
	w.applyPlacement(runtime.State().Placement)
	w.window.SetCloseIntercept(w.requestClose)
	w.window.SetMaster()
	w.render(runtime.State())
	return w
}

// ShowAndRun shows the window and blocks until the application quits.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

// Notify dispatches ev on the UI goroutine. It is safe to call from any
// goroutine.
func (w *Window) Notify(ev shell.Event) {
	fyne.Do(func() {
		w.runtime.Dispatch(w.ctx, ev)
	})
}

// Close closes the window the way its close button does, so the geometry
// is saved first. It is safe to call from any goroutine.
func (w *Window) Close() {
	fyne.Do(w.requestClose)
}

func (w *Window) build() fyne.CanvasObject {
	sample := canvas.NewText(Placeholder, theme.Color(theme.ColorNameForeground))
	sample.TextSize = 32
	sample.Alignment = fyne.TextAlignCenter

	rebuild := widget.NewButton("click me", func() {
		w.runtime.Dispatch(w.ctx, shell.RebuildRequested{})
	})

	w.list = widget.NewList(
		func() int { return len(w.fonts) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Alignment = fyne.TextAlignCenter
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(w.fonts[id].Name)
		},
	)
	w.list.OnSelected = func(id widget.ListItemID) {
		w.runtime.Dispatch(w.ctx, shell.Hovered{Index: id})
	}

	w.status = widget.NewLabel("")

	header := container.NewVBox(
		container.NewPadded(container.NewCenter(sample)),
		container.NewCenter(rebuild),
	)
	return container.NewBorder(header, w.status, nil, nil, w.list)
}

func (w *Window) applyPlacement(p geometry.Placement) {
	w.window.Resize(fyne.NewSize(float32(p.Size.Width), float32(p.Size.Height)))

	switch p.Position.Kind {
	case geometry.PositionCentered:
		w.window.CenterOnScreen()
	case geometry.PositionSpecific:
		// fyne cannot place windows at absolute coordinates.
		w.log.Debug().Float64("x", p.Position.X).Float64("y", p.Position.Y).Msg("ignoring saved window position")
	}
}

func (w *Window) render(state shell.State) {
	if !sameEntries(w.fonts, state.Fonts) {
		w.fonts = state.Fonts
		w.list.UnselectAll()
		w.list.Refresh()
	}
	w.status.SetText(strings.Join(state.Status(), " · "))
}

func (w *Window) requestClose() {
	size := w.window.Canvas().Size()
	w.runtime.Dispatch(w.ctx, shell.WindowResized{Width: float64(size.Width), Height: float64(size.Height)})
	w.runtime.Dispatch(w.ctx, shell.CloseRequested{})
}

func (w *Window) finishClose() {
	w.window.SetCloseIntercept(nil)
	w.window.Close()
}

func sameEntries(a, b []fm.FontEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
