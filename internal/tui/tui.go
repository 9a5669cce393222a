// Package tui is a terminal front-end for the font catalog.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/logandonley/fontlist/internal/shell"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	rowStyle    = lipgloss.NewStyle().PaddingLeft(2)
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// headerLines is the space taken by the title, status and help lines.
const headerLines = 5

// Model is the bubbletea model. It forwards user input to a shell.Runtime
// and renders its state.
type Model struct {
	ctx     context.Context
	runtime *shell.Runtime
	state   shell.State
	cursor  int
	offset  int
	height  int
}

// New creates a model over runtime
func New(ctx context.Context, runtime *shell.Runtime) Model {
	return Model{
		ctx:     ctx,
		runtime: runtime,
		state:   runtime.State(),
		height:  24,
	}
}

// NewProgram wraps a new model in a full-screen bubbletea program.
func NewProgram(ctx context.Context, runtime *shell.Runtime) *tea.Program {
	return tea.NewProgram(New(ctx, runtime), tea.WithAltScreen(), tea.WithContext(ctx))
}

// Notify forwards an event produced outside the UI, such as a font
// directory change, into a running program.
func Notify(program *tea.Program, ev shell.Event) {
	program.Send(EventMsg(ev))
}

// EventMsg wraps ev as a message the model dispatches to its runtime.
func EventMsg(ev shell.Event) tea.Msg {
	return eventMsg{ev}
}

type eventMsg struct {
	ev shell.Event
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clamp()
	case eventMsg:
		m.dispatch(msg.ev)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "enter":
			m.dispatch(shell.RebuildRequested{})
			m.cursor, m.offset = 0, 0
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.visibleRows())
		case "pgdown":
			m.move(m.visibleRows())
		case "home", "g":
			m.move(-len(m.state.Fonts))
		case "end", "G":
			m.move(len(m.state.Fonts))
		}
	}
	return m, nil
}

func (m *Model) dispatch(ev shell.Event) {
	m.runtime.Dispatch(m.ctx, ev)
	m.state = m.runtime.State()
	m.clamp()
}

func (m *Model) move(delta int) {
	if len(m.state.Fonts) == 0 {
		return
	}
	// Nothing hovered yet: the first step down lands on row 0.
	if m.state.Hovered == shell.NoHover {
		m.cursor = -1
	}
	m.cursor += delta
	m.clamp()
	m.dispatch(shell.Hovered{Index: m.cursor})
}

func (m *Model) clamp() {
	if m.cursor >= len(m.state.Fonts) {
		m.cursor = len(m.state.Fonts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) visibleRows() int {
	if rows := m.height - headerLines; rows > 0 {
		return rows
	}
	return 1
}

// Cursor returns the index of the highlighted row, or shell.NoHover when
// no row is highlighted.
func (m Model) Cursor() int {
	if m.state.Hovered == shell.NoHover {
		return shell.NoHover
	}
	return m.cursor
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Font thingy"))
	b.WriteString("\n")

	fonts := m.state.Fonts
	if len(fonts) == 0 {
		b.WriteString(rowStyle.Render("No fonts loaded. Press r to build the list."))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleRows(), len(fonts))
	for i := m.offset; i < end; i++ {
		if i == m.state.Hovered {
			b.WriteString(cursorStyle.Render("> " + fonts[i].Name))
		} else {
			b.WriteString(rowStyle.Render(fonts[i].Name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r rebuild • ↑/↓ move • q quit"))
	return b.String()
}

func (m Model) status() string {
	parts := []string{fmt.Sprintf("%d families", len(m.state.Fonts))}
	if m.state.Stale {
		parts = append(parts, staleStyle.Render("fonts changed on disk, press r"))
	}
	if m.state.Err != nil {
		parts = append(parts, errorStyle.Render(m.state.Err.Error()))
	}
	return strings.Join(parts, " • ")
}
