package tui_test

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/logandonley/fontlist/internal/geometry"
	"github.com/logandonley/fontlist/internal/shell"
	"github.com/logandonley/fontlist/internal/tui"
	"github.com/logandonley/fontlist/pkg/fm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

type staticSource []fm.Face

func (s staticSource) ForEachFace(_ context.Context, fn func(fm.Face) error) error {
	for _, face := range s {
		if err := fn(face); err != nil {
			return err
		}
	}
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var _ = Describe("Model", func() {
	var (
		runtime *shell.Runtime
		model   tea.Model
		saved   []string
	)

	press := func(s string) tea.Cmd {
		var cmd tea.Cmd
		model, cmd = model.Update(key(s))
		return cmd
	}

	BeforeEach(func() {
		source := staticSource{
			{ID: 1, Families: []fm.FamilyName{{Name: "Arial"}}},
			{ID: 2, Families: []fm.FamilyName{{Name: "Arial"}, {Name: "Arial Bold"}}},
			{ID: 3, Families: []fm.FamilyName{{Name: "Menlo"}}},
		}
		saved = nil
		runtime = shell.NewRuntime(geometry.DefaultPlacement(), fm.NewCatalog(source),
			func(text string) error { saved = append(saved, text); return nil }, zerolog.Nop())
		model = tui.New(context.Background(), runtime)
	})

	It("should prompt for a rebuild while empty", func() {
		Expect(model.View()).To(ContainSubstring("Press r"))
		Expect(model.View()).To(ContainSubstring("0 families"))
	})

	It("should rebuild the catalog on r", func() {
		Expect(press("r")).To(BeNil())

		view := model.View()
		Expect(view).To(ContainSubstring("Arial Bold"))
		Expect(view).To(ContainSubstring("Menlo"))
		Expect(view).To(ContainSubstring("3 families"))
		Expect(runtime.State().Fonts).To(HaveLen(3))
	})

	It("should move the cursor and report the hovered row", func() {
		press("r")
		press("down")
		press("j")
		press("down")

		Expect(model.(tui.Model).Cursor()).To(Equal(2))
		entry, ok := runtime.State().HoveredEntry()
		Expect(ok).To(BeTrue())
		Expect(entry.Name).To(Equal("Menlo"))

		press("up")
		Expect(model.(tui.Model).Cursor()).To(Equal(1))
	})

	It("should not highlight a row until one is hovered", func() {
		press("down")
		press("r")

		Expect(runtime.State().Hovered).To(Equal(shell.NoHover))
		Expect(model.(tui.Model).Cursor()).To(Equal(shell.NoHover))
		Expect(model.View()).NotTo(ContainSubstring("> "))

		press("down")
		Expect(runtime.State().Hovered).To(Equal(0))
		Expect(model.(tui.Model).Cursor()).To(Equal(0))
		Expect(model.View()).To(ContainSubstring("> Arial"))
	})

	It("should drop the highlight when the list is rebuilt", func() {
		press("r")
		press("down")
		press("down")
		Expect(model.View()).To(ContainSubstring("> Arial Bold"))

		press("r")
		Expect(runtime.State().Hovered).To(Equal(shell.NoHover))
		Expect(model.View()).NotTo(ContainSubstring("> "))
	})

	It("should show a stale marker when fonts change", func() {
		press("r")
		model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

		model, _ = model.Update(tui.EventMsg(shell.FontsChanged{}))
		Expect(model.View()).To(ContainSubstring("fonts changed on disk"))

		press("r")
		Expect(model.View()).NotTo(ContainSubstring("fonts changed on disk"))
	})

	It("should quit without saving geometry", func() {
		cmd := press("q")
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
		Expect(saved).To(BeEmpty())
	})
})
