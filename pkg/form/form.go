// Package form implements the create/edit form controller.
//
// A Controller moves through idle, loading (edit only), ready, submitting
// and then navigating on success or failed (ready with an error) on
// failure. Field values are a map until submit, when they are decoded into
// the command type C and validated before any network call.
package form

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"

	"github.com/looplab/fsm"

	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/decode"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
)

// Values holds field values by field name.
type Values map[string]any

// LoadFunc fetches the entity being edited as field values.
type LoadFunc func(ctx context.Context, id string) (Values, error)

// SubmitFunc persists cmd. id is empty in create mode.
type SubmitFunc[C any] func(ctx context.Context, id string, cmd C) error

// Options configures a Controller.
type Options[C any] struct {
	// Noun names the entity in messages, e.g. "Certification".
	Noun string
	// ID selects edit mode when non-empty.
	ID       string
	Defaults Values
	Load     LoadFunc
	Submit   SubmitFunc[C]
	Lookups  []lookup.Source
	// RichText names the fields bound to a rich-text editor.
	RichText []string
	Labels   map[string]string
	// ReturnTo is the navigation target after success or not-found.
	ReturnTo string
	Notifier notify.Notifier
	Logger   *slog.Logger
	OnChange func(Snapshot)
}

// Snapshot is a copy of the form state.
type Snapshot struct {
	State   string
	Values  Values
	Options map[string][]lookup.Option
	Errors  map[string]string
	Error   string
	Target  string
}

// Submitting reports whether a submit is in flight.
func (s Snapshot) Submitting() bool {
	return s.State == StateSubmitting
}

// Controller drives one create or edit form for command type C.
type Controller[C any] struct {
	opts    Options[C]
	machine *fsm.FSM
	loader  *lookup.Loader
	logger  *slog.Logger

	mu      sync.Mutex
	values  Values
	options map[string][]lookup.Option
	errors  map[string]string
	err     string
	target  string
	rich    map[string]*RichText
}

// New creates a Controller in the idle state.
func New[C any](opts Options[C]) *Controller[C] {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Noun == "" {
		opts.Noun = "Item"
	}

	c := &Controller[C]{
		opts:    opts,
		machine: newMachine(),
		loader:  lookup.NewLoader(opts.Notifier, opts.Logger),
		logger:  opts.Logger.With("form", opts.Noun),
		values:  maps.Clone(opts.Defaults),
		options: make(map[string][]lookup.Option),
		errors:  make(map[string]string),
		rich:    make(map[string]*RichText, len(opts.RichText)),
	}
	if c.values == nil {
		c.values = make(Values)
	}
	for _, name := range opts.RichText {
		rt := &RichText{}
		if s, ok := c.values[name].(string); ok {
			rt.Edit(s)
		}
		c.rich[name] = rt
	}
	return c
}

// Editing reports whether the form edits an existing entity.
func (c *Controller[C]) Editing() bool {
	return c.opts.ID != ""
}

// State returns the current state name.
func (c *Controller[C]) State() string {
	return c.machine.Current()
}

// Snapshot returns a copy of the form state.
func (c *Controller[C]) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Open prepares the form. In create mode the fields keep their defaults and
// the form becomes ready while lookups load. In edit mode the entity and the
// lookups load concurrently and the fields are filled only once the entity
// arrives.
func (c *Controller[C]) Open(ctx context.Context) error {
	if !c.Editing() {
		if err := transition(ctx, c.machine, EventOpen); err != nil {
			return err
		}
		c.changed()
		c.loadLookups(ctx)
		return nil
	}

	if err := transition(ctx, c.machine, EventLoad); err != nil {
		return err
	}
	c.changed()

	var (
		wg     sync.WaitGroup
		loaded Values
		err    error
	)
	wg.Go(func() {
		loaded, err = c.opts.Load(ctx, c.opts.ID)
	})
	c.loadLookups(ctx)
	wg.Wait()

	if err != nil {
		return c.loadFailed(ctx, err)
	}

	c.mu.Lock()
	c.values = maps.Clone(c.opts.Defaults)
	if c.values == nil {
		c.values = make(Values)
	}
	maps.Copy(c.values, loaded)
	c.err = ""
	clear(c.errors)
	c.mu.Unlock()

	c.pushRichText()

	if err := transition(ctx, c.machine, EventLoaded); err != nil {
		return err
	}
	c.changed()
	return nil
}

// Set records a user edit of one field. Rich-text fields pull the new
// content up without writing back to their editor.
func (c *Controller[C]) Set(name string, value any) {
	c.mu.Lock()
	c.values[name] = value
	delete(c.errors, name)
	rt := c.rich[name]
	c.mu.Unlock()

	if rt != nil {
		if s, ok := value.(string); ok {
			rt.Edit(s)
		}
	}
	c.changed()
}

// Value returns the current value of one field.
func (c *Controller[C]) Value(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rt, ok := c.rich[name]; ok {
		return rt.Content()
	}
	return c.values[name]
}

// Bind attaches an editor to a rich-text field and shows the current
// content in it.
func (c *Controller[C]) Bind(name string, e Editor) {
	c.mu.Lock()
	rt := c.rich[name]
	c.mu.Unlock()

	if rt != nil {
		rt.Attach(e)
	}
}

// RichText returns the binding for a rich-text field, or nil.
func (c *Controller[C]) RichText(name string) *RichText {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rich[name]
}

// Submit validates the fields and, when they pass, persists them. A
// validation failure issues no network call. On success the form moves to
// navigating with ReturnTo as its target; on failure the fields are kept
// and the form may be submitted again.
func (c *Controller[C]) Submit(ctx context.Context) error {
	if !c.machine.Can(EventSubmit) {
		return ErrTransition
	}

	c.mu.Lock()
	values := maps.Clone(c.values)
	for name, rt := range c.rich {
		values[name] = rt.Content()
	}
	c.mu.Unlock()

	cmd, err := decode.FromMap[C](values)
	if err == nil {
		err = Validate(cmd, c.opts.Labels)
	}
	if err != nil {
		return c.rejected(ctx, err)
	}

	if err := transition(ctx, c.machine, EventSubmit); err != nil {
		return err
	}
	c.mu.Lock()
	c.err = ""
	clear(c.errors)
	c.mu.Unlock()
	c.changed()

	if err := c.opts.Submit(ctx, c.opts.ID, cmd); err != nil {
		return c.submitFailed(ctx, err)
	}

	c.mu.Lock()
	c.target = c.opts.ReturnTo
	c.mu.Unlock()

	verb := "created"
	if c.Editing() {
		verb = "updated"
	}
	c.opts.Notifier.Enqueue(notify.Success, c.opts.Noun+" "+verb)

	if err := transition(ctx, c.machine, EventSucceed); err != nil {
		return err
	}
	c.changed()
	return nil
}

func (c *Controller[C]) loadLookups(ctx context.Context) {
	if len(c.opts.Lookups) == 0 {
		return
	}
	c.loader.Load(ctx, c.opts.Lookups, func(res lookup.Result) {
		c.mu.Lock()
		c.options[res.Name] = res.Options
		c.mu.Unlock()
		c.changed()
	})
}

func (c *Controller[C]) pushRichText() {
	c.mu.Lock()
	pushes := make(map[*RichText]string, len(c.rich))
	for name, rt := range c.rich {
		s, _ := c.values[name].(string)
		pushes[rt] = s
	}
	c.mu.Unlock()

	for rt, s := range pushes {
		rt.Push(s)
	}
}

func (c *Controller[C]) loadFailed(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		msg := c.opts.Noun + " not found"
		c.mu.Lock()
		c.err = msg
		c.target = c.opts.ReturnTo
		c.mu.Unlock()

		c.opts.Notifier.Enqueue(notify.Error, msg)
		if terr := transition(ctx, c.machine, EventNotFound); terr != nil {
			return terr
		}
		c.changed()
		return err
	}

	msg := client.Message(err, "Failed to load "+c.opts.Noun)
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()

	c.logger.Warn("load failed", "id", c.opts.ID, "error", err)
	if ctx.Err() == nil {
		c.opts.Notifier.Enqueue(notify.Error, msg)
	}
	if terr := transition(ctx, c.machine, EventLoadFail); terr != nil {
		return terr
	}
	c.changed()
	return err
}

func (c *Controller[C]) rejected(ctx context.Context, err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = &ValidationError{Fields: map[string]string{"": "Invalid form values"}}
		c.logger.Debug("decode failed", "error", err)
	}
	msg := verr.First()

	c.mu.Lock()
	c.errors = maps.Clone(verr.Fields)
	c.err = msg
	c.mu.Unlock()

	c.opts.Notifier.Enqueue(notify.Error, msg)
	if terr := transition(ctx, c.machine, EventReject); terr != nil {
		return terr
	}
	c.changed()
	return verr
}

func (c *Controller[C]) submitFailed(ctx context.Context, err error) error {
	msg := client.Message(err, "Failed to save "+c.opts.Noun)

	c.mu.Lock()
	c.err = msg
	var cerr *client.Error
	if errors.As(err, &cerr) && len(cerr.Errors) > 0 {
		c.errors = maps.Clone(cerr.Errors)
	}
	c.mu.Unlock()

	c.logger.Warn("submit failed", "id", c.opts.ID, "error", err)
	c.opts.Notifier.Enqueue(notify.Error, msg)
	if terr := transition(ctx, c.machine, EventFail); terr != nil {
		return terr
	}
	c.changed()
	return err
}

func (c *Controller[C]) snapshot() Snapshot {
	values := maps.Clone(c.values)
	for name, rt := range c.rich {
		values[name] = rt.Content()
	}
	return Snapshot{
		State:   c.machine.Current(),
		Values:  values,
		Options: maps.Clone(c.options),
		Errors:  maps.Clone(c.errors),
		Error:   c.err,
		Target:  c.target,
	}
}

func (c *Controller[C]) changed() {
	if c.opts.OnChange == nil {
		return
	}
	c.mu.Lock()
	s := c.snapshot()
	c.mu.Unlock()
	c.opts.OnChange(s)
}
