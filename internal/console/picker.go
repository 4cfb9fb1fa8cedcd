package console

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frenchcert/frenchcert/internal/resources"
)

type picker struct {
	env    *env
	items  []resources.Resource
	cursor int
}

func newPicker(e *env) *picker {
	return &picker{env: e, items: e.catalog.All()}
}

func (p *picker) Title() string {
	return "French Cert"
}

func (p *picker) Init() tea.Cmd {
	return nil
}

func (p *picker) Update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up", "k":
		p.cursor = max(p.cursor-1, 0)
	case "down", "j":
		p.cursor = min(p.cursor+1, len(p.items)-1)
	case "enter":
		res := p.items[p.cursor]
		return p, push(newListScreen(p.env, res, "", nestedOf(res)))
	case "q", "esc":
		return p, pop(false)
	}
	return p, nil
}

func (p *picker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Resources"))
	b.WriteString("\n\n")
	for i, res := range p.items {
		line := "  " + res.Info().Title
		if i == p.cursor {
			line = selectedStyle.Render("› " + res.Info().Title)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • q quit"))
	return b.String()
}
