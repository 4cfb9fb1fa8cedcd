// Package listview keeps a remote, filtered and paginated collection in
// sync with user-editable search, filter and page state.
//
// One Controller serves every list screen; screens differ only in the
// Options they pass. Search and filter edits are debounced into a single
// fetch of page 1. Page changes fetch immediately. Every fetch carries a
// sequence number and cancels its predecessor, so a late response can
// never overwrite newer state.
package listview

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/romdo/go-debounce"

	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
	"github.com/frenchcert/frenchcert/pkg/pagination"
	"github.com/frenchcert/frenchcert/pkg/query"
)

// ErrNotConfirmed is returned by Delete when the request was not confirmed.
var ErrNotConfirmed = errors.New("delete not confirmed")

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("list controller closed")

// FetchFunc fetches one page of items for the given query parameters.
type FetchFunc[T any] func(ctx context.Context, params url.Values) (pagination.PageResult[T], error)

// DeleteFunc removes one item by id.
type DeleteFunc func(ctx context.Context, id string) error

// Options configures a Controller.
type Options[T any] struct {
	// Noun names the listed items in messages, e.g. "certifications".
	Noun     string
	Fetch    FetchFunc[T]
	Delete   DeleteFunc
	PageSize int
	Sort     string
	Debounce time.Duration
	Notifier notify.Notifier
	Logger   *slog.Logger

	// OnChange receives a snapshot after every state change. It is called
	// without the controller lock held, possibly from a timer goroutine.
	OnChange func(State[T])
}

// State is a snapshot of the list view.
type State[T any] struct {
	Items      []T
	Loading    bool
	Search     string
	Page       int
	TotalPages int
	Filters    map[string]string
	Options    map[string][]lookup.Option
	Error      string
}

// DeleteRequest identifies the item to delete. Confirmed must be set by an
// explicit user confirmation step.
type DeleteRequest struct {
	ID        string
	Label     string
	Confirmed bool
}

// Controller is the list view state machine for items of type T.
type Controller[T any] struct {
	opts   Options[T]
	loader *lookup.Loader
	logger *slog.Logger

	root context.Context
	stop context.CancelFunc

	debounced      func()
	cancelDebounce func()

	mu      sync.Mutex
	state   State[T]
	seq     uint64
	cancel  context.CancelFunc
	pending bool
	closed  bool
}

// New creates a Controller. Fetch is required.
func New[T any](opts Options[T]) *Controller[T] {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Noun == "" {
		opts.Noun = "items"
	}

	root, stop := context.WithCancel(context.Background())

	c := &Controller[T]{
		opts:   opts,
		loader: lookup.NewLoader(opts.Notifier, opts.Logger),
		logger: opts.Logger.With("list", opts.Noun),
		root:   root,
		stop:   stop,
		state: State[T]{
			Items:      []T{},
			Page:       1,
			TotalPages: 1,
			Filters:    make(map[string]string),
			Options:    make(map[string][]lookup.Option),
		},
	}
	c.debounced, c.cancelDebounce = debounce.New(opts.Debounce, c.fire)
	return c
}

// State returns a snapshot of the current state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Restore sets search, filters and page without fetching. It is used to
// rebuild a view from its URL before the first Load.
func (c *Controller[T]) Restore(search string, filters map[string]string, page int) {
	c.mu.Lock()
	c.state.Search = search
	c.state.Filters = make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			c.state.Filters[k] = v
		}
	}
	c.state.Page = max(page, 1)
	c.mu.Unlock()
}

// Values returns the query parameters describing the current view
// (search, filters and page). Empty values are omitted.
func (c *Controller[T]) Values() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params(c.state.Page, false)
}

// Load fetches the current page synchronously.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()
	return c.fetch(ctx, page)
}

// SetSearch updates the search term and schedules a debounced fetch of page 1.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Search = term
	c.pending = true
	c.mu.Unlock()

	c.changed()
	c.debounced()
}

// SetFilter updates one filter and schedules a debounced fetch of page 1.
// An empty value clears the filter.
func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if value == "" {
		delete(c.state.Filters, name)
	} else {
		c.state.Filters[name] = value
	}
	c.pending = true
	c.mu.Unlock()

	c.changed()
	c.debounced()
}

// SetPage fetches page n immediately, clamped to the known page count.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	page := pagination.Clamp(n, c.state.TotalPages)
	c.mu.Unlock()

	go c.fetch(c.root, page)
}

// Refresh re-fetches the current page with the current filters.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()

	go c.fetch(c.root, page)
}

// Reset clears search and every filter, drops any pending debounced fetch
// and fetches page 1.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = false
	c.state.Search = ""
	clear(c.state.Filters)
	c.mu.Unlock()

	go c.fetch(c.root, 1)
}

// LoadOptions loads filter option lists concurrently. Each source fills its
// own slot as soon as it completes; a failed source leaves an empty slot.
func (c *Controller[T]) LoadOptions(ctx context.Context, sources ...lookup.Source) {
	c.loader.Load(ctx, sources, func(res lookup.Result) {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.state.Options[res.Name] = res.Options
		c.mu.Unlock()
		c.changed()
	})
}

// Delete removes one item after confirmation, then re-fetches the current
// page with the current filters. List state is left unchanged on failure.
func (c *Controller[T]) Delete(ctx context.Context, req DeleteRequest) error {
	if !req.Confirmed {
		return ErrNotConfirmed
	}
	if c.opts.Delete == nil {
		return errors.New("delete is not supported")
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	label := req.Label
	if label == "" {
		label = "item"
	}

	if err := c.opts.Delete(ctx, req.ID); err != nil {
		c.logger.Warn("delete failed", "id", req.ID, "error", err)
		c.opts.Notifier.Enqueue(notify.Error, client.Message(err, "Failed to delete "+label))
		return err
	}

	c.opts.Notifier.Enqueue(notify.Success, "Deleted "+label)

	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()

	// A failed re-fetch has already been reported; the delete itself stands.
	_ = c.fetch(ctx, page)
	return nil
}

// Close cancels the pending debounce and the in-flight request. Results
// arriving afterwards are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.pending = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.cancelDebounce()
	c.stop()
}

var errStale = errors.New("stale response")

func (c *Controller[T]) fire() {
	c.mu.Lock()
	if !c.pending || c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = false
	c.mu.Unlock()

	c.fetch(c.root, 1)
}

// fetch issues one request for page and applies its result if it is still
// the latest issued. An empty page past the reported end is followed by
// one fetch of the last valid page.
func (c *Controller[T]) fetch(parent context.Context, page int) error {
	ctx, seq, params, err := c.begin(parent, page)
	if err != nil {
		return err
	}

	res, err := c.opts.Fetch(ctx, params)

	if err == nil && res.Empty() && page > 1 && res.TotalPages < page {
		target := max(1, res.TotalPages)
		c.logger.Debug("page out of range", "page", page, "pages", res.TotalPages, "target", target)

		c.mu.Lock()
		current := seq == c.seq && !c.closed
		params = c.params(target, true)
		c.mu.Unlock()
		if !current {
			return errStale
		}

		page = target
		res, err = c.opts.Fetch(ctx, params)
	}

	return c.finish(ctx, seq, page, res, err)
}

func (c *Controller[T]) begin(parent context.Context, page int) (context.Context, uint64, url.Values, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, 0, nil, ErrClosed
	}

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(c.root, cancel)
	c.cancel = func() {
		stop()
		cancel()
	}

	c.seq++
	seq := c.seq
	params := c.params(page, true)
	c.state.Loading = true
	c.mu.Unlock()

	c.changed()
	return ctx, seq, params, nil
}

func (c *Controller[T]) finish(ctx context.Context, seq uint64, page int, res pagination.PageResult[T], err error) error {
	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return errStale
	}

	// Classify before releasing the request context; the release cancels it.
	canceled := err != nil && (ctx.Err() != nil || client.KindOf(err) == client.KindCanceled)

	c.state.Loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		if canceled {
			c.mu.Unlock()
			c.changed()
			return err
		}
		msg := client.Message(err, "Failed to load "+c.opts.Noun)
		c.state.Error = msg
		c.mu.Unlock()

		c.logger.Warn("fetch failed", "page", page, "error", err)
		c.opts.Notifier.Enqueue(notify.Error, msg)
		c.changed()
		return err
	}

	c.state.Items = res.Data
	c.state.Page = page
	c.state.TotalPages = max(res.TotalPages, 1)
	c.state.Error = ""
	c.mu.Unlock()

	c.changed()
	return nil
}

// params builds the outbound query for page. Callers hold c.mu.
func (c *Controller[T]) params(page int, withLimit bool) url.Values {
	limit := 0
	if withLimit {
		limit = c.opts.PageSize
	}

	b := query.NewBuilder(c.opts.Sort).
		Page(page, limit).
		Set("search", c.state.Search).
		WhereMap(c.state.Filters)

	values := b.Values()
	if !withLimit {
		values.Del("sort")
		if page <= 1 {
			values.Del("page")
		}
	}
	return values
}

func (c *Controller[T]) snapshot() State[T] {
	s := c.state
	s.Filters = maps.Clone(c.state.Filters)
	s.Options = maps.Clone(c.state.Options)
	return s
}

func (c *Controller[T]) changed() {
	if c.opts.OnChange == nil {
		return
	}
	c.mu.Lock()
	s := c.snapshot()
	c.mu.Unlock()
	c.opts.OnChange(s)
}

// PageLabel renders "page X of Y" for status lines.
func (s State[T]) PageLabel() string {
	return "page " + strconv.Itoa(s.Page) + " of " + strconv.Itoa(s.TotalPages)
}
