package console

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/listview"
)

type deletedMsg struct {
	screen *confirmScreen
	err    error
}

func (m deletedMsg) target() screen { return m.screen }

// confirmScreen asks before deleting one row of a list.
type confirmScreen struct {
	env       *env
	list      resources.List
	singular  string
	row       resources.Row
	confirmed bool
	deleting  bool
	huh       *huh.Form
}

func newConfirmScreen(e *env, list resources.List, singular string, row resources.Row) *confirmScreen {
	s := &confirmScreen{env: e, list: list, singular: singular, row: row}
	s.huh = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Delete " + row.Label + "?").
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&s.confirmed),
	))
	return s
}

func (s *confirmScreen) Title() string {
	return "Delete " + s.singular
}

func (s *confirmScreen) Init() tea.Cmd {
	return s.huh.Init()
}

func (s *confirmScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		return s, pop(false)
	case tea.KeyMsg:
		if msg.String() == "esc" && !s.deleting {
			return s, pop(false)
		}
	}
	if s.deleting {
		return s, nil
	}

	model, cmd := s.huh.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		s.huh = f
	}
	switch s.huh.State {
	case huh.StateCompleted:
		return s, s.decide()
	case huh.StateAborted:
		return s, pop(false)
	}
	return s, cmd
}

// decide deletes the row when the user confirmed and goes back otherwise.
// The list re-fetches its page itself after a delete.
func (s *confirmScreen) decide() tea.Cmd {
	if !s.confirmed {
		return pop(false)
	}
	s.deleting = true
	req := listview.DeleteRequest{ID: s.row.ID, Label: s.row.Label, Confirmed: true}
	return func() tea.Msg {
		return deletedMsg{screen: s, err: s.list.Delete(s.env.ctx, req)}
	}
}

func (s *confirmScreen) View() string {
	if s.deleting {
		return helpStyle.Render("deleting " + s.row.Label + "…")
	}
	return s.huh.View()
}
