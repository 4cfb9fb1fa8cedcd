// Package console is the terminal back-office. It runs the same list and
// form controllers as the web admin inside a bubbletea program.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/notify"
)

// Options configures a Model.
type Options struct {
	// Notifications receives every user notification. A queue holding
	// five notifications for five seconds is created when nil.
	Notifications *notify.Queue
	Logger        *slog.Logger
}

// screen is one view on the navigation stack.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Title() string
}

// closer is implemented by screens owning a controller.
type closer interface {
	Close()
}

// refresher is implemented by screens that re-fetch when uncovered.
type refresher interface {
	Refresh()
}

// targeted messages belong to one screen, which may not be on top.
type targeted interface {
	target() screen
}

type pushMsg struct{ screen screen }

type popMsg struct{ refresh bool }

type notifiedMsg struct{}

type tickMsg struct{}

func push(s screen) tea.Cmd {
	return func() tea.Msg { return pushMsg{screen: s} }
}

func pop(refresh bool) tea.Cmd {
	return func() tea.Msg { return popMsg{refresh: refresh} }
}

// env is shared by every screen of one program.
type env struct {
	ctx      context.Context
	catalog  *resources.Catalog
	notifier notify.Notifier
	logger   *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	env      *env
	queue    *notify.Queue
	stack    []screen
	width    int
	quitting bool
}

// New creates a Model showing the resource picker.
func New(ctx context.Context, catalog *resources.Catalog, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("module", "console")

	queue := opts.Notifications
	if queue == nil {
		queue = notify.NewQueue(5, 5*time.Second)
	}

	e := &env{
		ctx:      ctx,
		catalog:  catalog,
		notifier: notify.Logged(queue, logger),
		logger:   logger,
	}
	return &Model{
		env:   e,
		queue: queue,
		stack: []screen{newPicker(e)},
	}
}

// Browse opens the list of the named resource above the picker.
func (m *Model) Browse(name string) error {
	res, ok := m.env.catalog.Get(name)
	if !ok {
		return fmt.Errorf("unknown resource %q (known: %s)", name, strings.Join(m.env.catalog.Names(), ", "))
	}
	m.stack = append(m.stack, newListScreen(m.env, res, "", nestedOf(res)))
	return nil
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.closeAll()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.top().Init(), m.waitNotification(), tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case pushMsg:
		m.stack = append(m.stack, msg.screen)
		return m, msg.screen.Init()

	case popMsg:
		if c, ok := m.top().(closer); ok {
			c.Close()
		}
		m.stack = m.stack[:len(m.stack)-1]
		if len(m.stack) == 0 {
			return m.quit()
		}
		if r, ok := m.top().(refresher); ok && msg.refresh {
			r.Refresh()
		}
		return m, nil

	case notifiedMsg:
		return m, m.waitNotification()

	case tickMsg:
		return m, tick()

	case targeted:
		for i, s := range m.stack {
			if s == msg.target() {
				var cmd tea.Cmd
				m.stack[i], cmd = s.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.stack[len(m.stack)-1], cmd = m.top().Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	titles := make([]string, 0, len(m.stack))
	for _, s := range m.stack {
		titles = append(titles, s.Title())
	}

	var b strings.Builder
	b.WriteString(crumbStyle.Render(strings.Join(titles, " › ")))
	b.WriteString("\n\n")
	b.WriteString(m.top().View())
	b.WriteString("\n")
	b.WriteString(m.notifications())
	return b.String()
}

func (m *Model) notifications() string {
	active := m.queue.Active(time.Now())
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, n := range active {
		lines = append(lines, noticeStyles[string(n.Kind)].Render("● "+n.Message))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m *Model) top() screen {
	return m.stack[len(m.stack)-1]
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeAll()
	return m, tea.Quit
}

func (m *Model) closeAll() {
	for _, s := range m.stack {
		if c, ok := s.(closer); ok {
			c.Close()
		}
	}
}

func (m *Model) waitNotification() tea.Cmd {
	signal := m.queue.Signal()
	ctx := m.env.ctx
	return func() tea.Msg {
		select {
		case <-signal:
			return notifiedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// tick re-renders once a second so expired notifications disappear.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

func nestedOf(res resources.Resource) []string {
	if res.Info().Name == "companies" {
		return []string{"certifications", "trainings"}
	}
	return nil
}
