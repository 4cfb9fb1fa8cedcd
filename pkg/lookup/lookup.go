// Package lookup loads the finite value sets behind filter dropdowns and
// relational form fields.
package lookup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frenchcert/frenchcert/pkg/notify"
)

// Option is one selectable value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Label returns the label of the option with the given value, or value itself.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Source loads the options of one named slot.
type Source struct {
	Name  string
	Label string
	Load  func(ctx context.Context) ([]Option, error)
}

// Result is the outcome of loading one Source.
type Result struct {
	Name    string
	Options []Option
	Err     error
}

// Loader runs sources concurrently. A failing source yields an empty option
// list and a notification; it never blocks the others.
type Loader struct {
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(notifier notify.Notifier, logger *slog.Logger) *Loader {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{notifier: notifier, logger: logger}
}

// Load runs every source and calls onResult as each one completes. It
// returns once all sources are done with the collected options per name.
func (l *Loader) Load(ctx context.Context, sources []Source, onResult func(Result)) map[string][]Option {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string][]Option, len(sources))
	)

	for _, src := range sources {
		wg.Go(func() {
			res := l.run(ctx, src)

			mu.Lock()
			out[res.Name] = res.Options
			mu.Unlock()

			if onResult != nil {
				onResult(res)
			}
		})
	}

	wg.Wait()
	return out
}

func (l *Loader) run(ctx context.Context, src Source) Result {
	options, err := src.Load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			label := src.Label
			if label == "" {
				label = src.Name
			}
			l.logger.Warn("lookup failed", "lookup", src.Name, "error", err)
			notify.Errorf(l.notifier, "Failed to load %s", label)
		}
		return Result{Name: src.Name, Options: []Option{}, Err: err}
	}
	if options == nil {
		options = []Option{}
	}
	return Result{Name: src.Name, Options: options}
}
