package console

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/form"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
)

type formOpenedMsg struct{ screen *formScreen }

func (m formOpenedMsg) target() screen { return m.screen }

type formSubmittedMsg struct {
	screen *formScreen
	err    error
}

func (m formSubmittedMsg) target() screen { return m.screen }

// input holds the value a huh field edits.
type input struct {
	text    string
	multi   []string
	checked bool
}

type formScreen struct {
	env   *env
	info  resources.Info
	id    string
	owner string

	form   resources.Form
	inputs map[string]*input
	huh    *huh.Form
	// invalid holds values huh accepted but the field could not parse.
	invalid map[string]string
	opened  bool
}

func newFormScreen(e *env, res resources.Resource, id, owner string) *formScreen {
	s := &formScreen{
		env:    e,
		info:   res.Info(),
		id:     id,
		owner:  owner,
		inputs: make(map[string]*input),
	}
	s.form = res.NewForm(id, resources.FormOptions{
		Notifier: e.notifier,
		Logger:   e.logger,
		ReturnTo: res.Info().Path,
	})
	for _, f := range s.info.Fields {
		in := &input{}
		s.inputs[f.Name] = in
		if f.Rich() {
			s.form.Bind(f.Name, form.EditorFunc(func(content string) { in.text = content }))
		}
	}
	return s
}

func (s *formScreen) Title() string {
	if s.id == "" {
		return "New " + s.info.Singular
	}
	return "Edit " + s.info.Singular
}

func (s *formScreen) Init() tea.Cmd {
	return s.open
}

func (s *formScreen) open() tea.Msg {
	// The outcome is read from the snapshot.
	_ = s.form.Open(s.env.ctx)
	return formOpenedMsg{screen: s}
}

func (s *formScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case formOpenedMsg:
		return s, s.settle(false)

	case formSubmittedMsg:
		return s, s.settle(true)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, pop(false)
		case "r":
			if s.form.State() == form.StateUnavailable {
				s.opened = false
				return s, s.open
			}
		}
	}

	if s.huh == nil {
		return s, nil
	}

	model, cmd := s.huh.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		s.huh = f
	}
	switch s.huh.State {
	case huh.StateCompleted:
		return s, s.submit()
	case huh.StateAborted:
		return s, pop(false)
	}
	return s, cmd
}

// settle reacts to the form state after an open or a submit.
func (s *formScreen) settle(submitted bool) tea.Cmd {
	s.opened = true
	snap := s.form.Snapshot()

	switch snap.State {
	case form.StateNavigating:
		return pop(submitted)
	case form.StateUnavailable:
		s.huh = nil
		return nil
	}

	s.build(snap)
	return s.huh.Init()
}

// build creates the huh form from the snapshot. Values are copied in and
// errors are shown as field descriptions.
func (s *formScreen) build(snap form.Snapshot) {
	fields := make([]huh.Field, 0, len(s.info.Fields))
	for _, f := range s.info.Fields {
		in := s.inputs[f.Name]
		v := snap.Values[f.Name]

		desc := f.Help
		if msg := s.invalid[f.Name]; msg != "" {
			desc = msg
		} else if msg := snap.Errors[f.Name]; msg != "" {
			desc = msg
		}

		title := f.Label
		if f.Required {
			title += " *"
		}

		switch f.Kind {
		case resources.KindRichText:
			fields = append(fields, huh.NewText().
				Key(f.Name).
				Title(title).
				Description(desc).
				Lines(8).
				CharLimit(0).
				Value(&in.text))
		case resources.KindCheckbox:
			in.checked, _ = v.(bool)
			fields = append(fields, huh.NewConfirm().
				Key(f.Name).
				Title(title).
				Description(desc).
				Affirmative("Yes").
				Negative("No").
				Value(&in.checked))
		case resources.KindSelect:
			in.text = f.Format(v)
			fields = append(fields, huh.NewSelect[string]().
				Key(f.Name).
				Title(title).
				Description(desc).
				Options(options(f.Options(snap.Options), !f.Required || len(f.Options(snap.Options)) == 0)...).
				Value(&in.text))
		case resources.KindMulti:
			in.multi = f.Selected(v)
			fields = append(fields, huh.NewMultiSelect[string]().
				Key(f.Name).
				Title(title).
				Description(desc).
				Options(options(f.Options(snap.Options), false)...).
				Value(&in.multi))
		default:
			if _, ok := s.invalid[f.Name]; !ok {
				in.text = f.Format(v)
			}
			fields = append(fields, huh.NewInput().
				Key(f.Name).
				Title(title).
				Description(desc).
				Placeholder(placeholder(f.Kind)).
				Value(&in.text))
		}
	}

	s.huh = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

// submit copies the inputs into the controller and submits it.
func (s *formScreen) submit() tea.Cmd {
	raw := s.raw()
	return func() tea.Msg {
		return formSubmittedMsg{screen: s, err: s.apply(raw)}
	}
}

func (s *formScreen) raw() map[string][]string {
	raw := make(map[string][]string, len(s.inputs))
	for _, f := range s.info.Fields {
		in := s.inputs[f.Name]
		switch f.Kind {
		case resources.KindMulti:
			raw[f.Name] = append([]string(nil), in.multi...)
		case resources.KindCheckbox:
			raw[f.Name] = []string{strconv.FormatBool(in.checked)}
		default:
			raw[f.Name] = []string{in.text}
		}
	}
	return raw
}

func (s *formScreen) apply(raw map[string][]string) error {
	s.invalid = nil
	invalid := make(map[string]string)
	for _, f := range s.info.Fields {
		v, err := f.Parse(raw[f.Name])
		if err != nil {
			invalid[f.Name] = err.Error()
			continue
		}
		s.form.Set(f.Name, v)
	}
	if len(invalid) > 0 {
		s.invalid = invalid
		verr := &form.ValidationError{Fields: invalid}
		s.env.notifier.Enqueue(notify.Error, verr.First())
		return verr
	}
	return s.form.Submit(s.env.ctx)
}

func (s *formScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title()))
	if s.owner != "" {
		b.WriteString(crumbStyle.Render("  in " + s.owner))
	}
	b.WriteString("\n\n")

	switch {
	case !s.opened:
		b.WriteString(helpStyle.Render("loading…"))
	case s.form.State() == form.StateUnavailable:
		b.WriteString(errorStyle.Render(s.form.Snapshot().Error))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r retry • esc back"))
	case s.form.State() == form.StateSubmitting:
		b.WriteString(helpStyle.Render("saving…"))
	case s.huh != nil:
		if msg := s.form.Snapshot().Error; msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n\n")
		}
		b.WriteString(s.huh.View())
	}
	return b.String()
}

func options(opts []lookup.Option, optional bool) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts)+1)
	if optional {
		out = append(out, huh.NewOption("None", ""))
	}
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func placeholder(kind resources.Kind) string {
	switch kind {
	case resources.KindDate:
		return "YYYY-MM-DD"
	case resources.KindNumber, resources.KindDecimal:
		return "0"
	default:
		return ""
	}
}
