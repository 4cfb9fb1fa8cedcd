package resources

import (
	"context"
	"net/url"
	"sync"

	"github.com/frenchcert/frenchcert/pkg/decode"
	"github.com/frenchcert/frenchcert/pkg/form"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// Definition declares a resource over item type T and command type C.
type Definition[T, C any] struct {
	Info     Info
	Sort     string
	Defaults form.Values
	Labels   map[string]string
	// Lookups feed the form's select fields.
	Lookups []lookup.Source
	Row     func(item T, options map[string][]lookup.Option) Row
	Fetch   listview.FetchFunc[T]
	Remove  listview.DeleteFunc
	Load    func(ctx context.Context, id string) (C, error)
	Save    form.SubmitFunc[C]
}

type resource[T, C any] struct {
	def      Definition[T, C]
	settings Settings
}

// Define turns a Definition into a Resource.
func Define[T, C any](def Definition[T, C], settings Settings) Resource {
	return &resource[T, C]{def: def, settings: settings}
}

func (r *resource[T, C]) Info() Info {
	return r.def.Info
}

func (r *resource[T, C]) NewList(opts ListOptions) List {
	l := &list[T]{row: r.def.Row, filters: r.def.Info.Filters}

	var onChange func(listview.State[T])
	if opts.OnChange != nil {
		onChange = func(s listview.State[T]) {
			opts.OnChange(l.render(s))
		}
	}

	l.Controller = listview.New(listview.Options[T]{
		Noun:     r.def.Info.Name,
		Fetch:    r.def.Fetch,
		Delete:   r.def.Remove,
		PageSize: r.settings.PageSize,
		Sort:     r.def.Sort,
		Debounce: r.settings.Debounce,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
		OnChange: onChange,
	})
	return l
}

func (r *resource[T, C]) NewForm(id string, opts FormOptions) Form {
	var rich []string
	for _, f := range r.def.Info.Fields {
		if f.Rich() {
			rich = append(rich, f.Name)
		}
	}

	return form.New(form.Options[C]{
		Noun:     r.def.Info.Singular,
		ID:       id,
		Defaults: r.def.Defaults,
		Load:     r.load,
		Submit:   r.def.Save,
		Lookups:  r.def.Lookups,
		RichText: rich,
		Labels:   r.def.Labels,
		ReturnTo: opts.ReturnTo,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
		OnChange: opts.OnChange,
	})
}

func (r *resource[T, C]) load(ctx context.Context, id string) (form.Values, error) {
	cmd, err := r.def.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := decode.ToMap(cmd)
	if err != nil {
		return nil, err
	}
	return form.Values(m), nil
}

type list[T any] struct {
	*listview.Controller[T]
	row     func(T, map[string][]lookup.Option) Row
	filters []Filter
}

func (l *list[T]) Mount(ctx context.Context) error {
	sources := make([]lookup.Source, 0, len(l.filters))
	for _, f := range l.filters {
		sources = append(sources, f.Source)
	}

	var wg sync.WaitGroup
	if len(sources) > 0 {
		wg.Go(func() {
			l.LoadOptions(ctx, sources...)
		})
	}
	err := l.Load(ctx)
	wg.Wait()
	return err
}

func (l *list[T]) View() ListView {
	return l.render(l.State())
}

func (l *list[T]) render(s listview.State[T]) ListView {
	rows := make([]Row, 0, len(s.Items))
	for _, item := range s.Items {
		rows = append(rows, l.row(item, s.Options))
	}
	return ListView{
		Rows:       rows,
		Loading:    s.Loading,
		Search:     s.Search,
		Page:       s.Page,
		TotalPages: s.TotalPages,
		Filters:    s.Filters,
		Options:    s.Options,
		Error:      s.Error,
	}
}

// FetchWith adapts a domain List method to the list controller's query
// parameters.
func FetchWith[T, F any](cfg pagination.Config, filters func(url.Values) F, fetch func(context.Context, pagination.PageRequest, F) (*pagination.PageResult[T], error)) listview.FetchFunc[T] {
	return func(ctx context.Context, params url.Values) (pagination.PageResult[T], error) {
		res, err := fetch(ctx, pagination.PageRequestFromQuery(params, cfg), filters(params))
		if err != nil {
			return pagination.PageResult[T]{}, err
		}
		return *res, nil
	}
}

// loadWith adapts a domain Find method to a command loader.
func loadWith[T, C any](find func(context.Context, string) (*T, error), of func(*T) C) func(context.Context, string) (C, error) {
	return func(ctx context.Context, id string) (C, error) {
		item, err := find(ctx, id)
		if err != nil {
			var zero C
			return zero, err
		}
		return of(item), nil
	}
}

// saveWith routes a submit to create or update.
func saveWith[T, C any](create func(context.Context, C) (*T, error), update func(context.Context, string, C) (*T, error)) form.SubmitFunc[C] {
	return func(ctx context.Context, id string, cmd C) error {
		var err error
		if id == "" {
			_, err = create(ctx, cmd)
		} else {
			_, err = update(ctx, id, cmd)
		}
		return err
	}
}
