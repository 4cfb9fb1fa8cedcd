package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/lookup"
)

const columnWidth = 22

// listChangedMsg reports new list state. Messages from the change watcher
// re-arm it; the one returned by the mount does not.
type listChangedMsg struct {
	screen  *listScreen
	watcher bool
}

func (m listChangedMsg) target() screen { return m.screen }

type listScreen struct {
	env    *env
	res    resources.Resource
	info   resources.Info
	owner  string
	nested []string

	list    resources.List
	changes chan struct{}
	done    chan struct{}

	view   resources.ListView
	table  table.Model
	search textinput.Model
	// searching routes keys to the search input.
	searching bool
	// filter is the index of the focused filter.
	filter int
}

func newListScreen(e *env, res resources.Resource, owner string, nested []string) *listScreen {
	s := &listScreen{
		env:     e,
		res:     res,
		info:    res.Info(),
		owner:   owner,
		nested:  nested,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	s.list = res.NewList(resources.ListOptions{
		Notifier: e.notifier,
		Logger:   e.logger,
		OnChange: func(resources.ListView) {
			select {
			case s.changes <- struct{}{}:
			default:
			}
		},
	})

	columns := make([]table.Column, 0, len(s.info.Columns))
	for _, c := range s.info.Columns {
		columns = append(columns, table.Column{Title: c.Label, Width: columnWidth})
	}
	s.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s.search = textinput.New()
	s.search.Placeholder = "search"
	s.search.Prompt = "/ "
	return s
}

func (s *listScreen) Title() string {
	if s.owner != "" {
		return s.owner + " › " + s.info.Title
	}
	return s.info.Title
}

func (s *listScreen) Init() tea.Cmd {
	return tea.Batch(s.mount, s.watch)
}

func (s *listScreen) mount() tea.Msg {
	// Failures are reported through the notifier and the view's error.
	_ = s.list.Mount(s.env.ctx)
	return listChangedMsg{screen: s}
}

// watch waits for the next state change of the controller.
func (s *listScreen) watch() tea.Msg {
	select {
	case <-s.changes:
		return listChangedMsg{screen: s, watcher: true}
	case <-s.done:
		return nil
	}
}

// Refresh re-fetches the current page.
func (s *listScreen) Refresh() {
	s.list.Refresh()
}

// Close stops the controller and the change watcher.
func (s *listScreen) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
		s.list.Close()
	}
}

func (s *listScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listChangedMsg:
		s.sync()
		if msg.watcher {
			return s, s.watch
		}
		return s, nil

	case tea.KeyMsg:
		if s.searching {
			return s, s.updateSearch(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *listScreen) updateSearch(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc", "enter":
		s.searching = false
		s.search.Blur()
		return nil
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(key)
	if v := s.search.Value(); v != before {
		s.list.SetSearch(v)
	}
	return cmd
}

func (s *listScreen) handleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "/":
		s.searching = true
		return s.search.Focus()
	case "tab":
		if len(s.info.Filters) > 0 {
			s.filter = (s.filter + 1) % len(s.info.Filters)
		}
	case "]":
		s.cycleFilter(1)
	case "[":
		s.cycleFilter(-1)
	case "right", "n":
		s.list.SetPage(s.view.Page + 1)
	case "left", "p":
		s.list.SetPage(s.view.Page - 1)
	case "x":
		s.search.SetValue("")
		s.list.Reset()
	case "R", "ctrl+r":
		s.list.Refresh()
	case "a":
		return push(newFormScreen(s.env, s.res, "", s.Title()))
	case "enter", "e":
		if row, ok := s.selected(); ok {
			return push(newFormScreen(s.env, s.res, row.ID, s.Title()))
		}
	case "d":
		if row, ok := s.selected(); ok {
			return push(newConfirmScreen(s.env, s.list, s.info.Singular, row))
		}
	case "c", "t":
		return s.openNested(key.String())
	case "esc", "backspace":
		return pop(false)
	case "q":
		return tea.Quit
	default:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(key)
		return cmd
	}
	return nil
}

// cycleFilter moves the focused filter to the next or previous option,
// passing through "all" between the last and the first.
func (s *listScreen) cycleFilter(step int) {
	if len(s.info.Filters) == 0 {
		return
	}
	f := s.info.Filters[s.filter]
	values := []string{""}
	for _, o := range s.view.Options[f.Name] {
		values = append(values, o.Value)
	}

	current := 0
	for i, v := range values {
		if v == s.view.Filters[f.Name] {
			current = i
			break
		}
	}
	next := (current + step + len(values)) % len(values)

	if s.view.Filters == nil {
		s.view.Filters = make(map[string]string)
	}
	s.view.Filters[f.Name] = values[next]
	s.list.SetFilter(f.Name, values[next])
}

func (s *listScreen) openNested(key string) tea.Cmd {
	row, ok := s.selected()
	if !ok {
		return nil
	}
	for _, name := range s.nested {
		if !strings.HasPrefix(name, key) {
			continue
		}
		res, ok := s.env.catalog.Nested(row.ID, name)
		if !ok {
			return nil
		}
		return push(newListScreen(s.env, res, row.Label, nil))
	}
	return nil
}

func (s *listScreen) selected() (resources.Row, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.view.Rows) {
		return resources.Row{}, false
	}
	return s.view.Rows[i], true
}

func (s *listScreen) sync() {
	s.view = s.list.View()
	rows := make([]table.Row, 0, len(s.view.Rows))
	for _, r := range s.view.Rows {
		rows = append(rows, table.Row(r.Cells))
	}
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) {
		s.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (s *listScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.info.Title))
	if s.view.Loading {
		b.WriteString(helpStyle.Render("  loading…"))
	}
	b.WriteString("\n")
	b.WriteString(s.search.View())
	b.WriteString("\n")

	if len(s.info.Filters) > 0 {
		parts := make([]string, 0, len(s.info.Filters))
		for i, f := range s.info.Filters {
			value := "All"
			if v := s.view.Filters[f.Name]; v != "" {
				value = lookup.Label(s.view.Options[f.Name], v)
			}
			part := f.Label + ": " + value
			if i == s.filter {
				part = focusStyle.Render(part)
			}
			parts = append(parts, part)
		}
		b.WriteString(strings.Join(parts, "   "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.view.Empty() && !s.view.Loading {
		b.WriteString(helpStyle.Render("No " + strings.ToLower(s.info.Title) + " found."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.table.View())
		b.WriteString("\n")
	}
	if s.view.Error != "" {
		b.WriteString(errorStyle.Render(s.view.Error))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Page %d of %d\n", max(s.view.Page, 1), max(s.view.TotalPages, 1)))

	help := "/ search • tab filter • [ ] cycle • ←/→ page • x reset • a new • enter edit • d delete • esc back"
	if len(s.nested) > 0 {
		help += " • c certifications • t trainings"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
