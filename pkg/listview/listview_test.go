package listview_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/notify"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

const wait = 40 * time.Millisecond

type backend struct {
	mu      sync.Mutex
	calls   []url.Values
	deletes []string
	respond func(params url.Values) (pagination.PageResult[string], error)
	remove  func(id string) error
}

func (b *backend) fetch(ctx context.Context, params url.Values) (pagination.PageResult[string], error) {
	b.mu.Lock()
	b.calls = append(b.calls, params)
	respond := b.respond
	b.mu.Unlock()

	if respond == nil {
		return pagination.NewPageResult([]string{"a", "b"}, 1, 3), nil
	}
	return respond(params)
}

func (b *backend) delete(ctx context.Context, id string) error {
	b.mu.Lock()
	b.deletes = append(b.deletes, id)
	remove := b.remove
	b.mu.Unlock()

	if remove == nil {
		return nil
	}
	return remove(id)
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *backend) last() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

func newController(t *testing.T, b *backend, rec *notify.Recorder) *listview.Controller[string] {
	t.Helper()
	c := listview.New(listview.Options[string]{
		Noun:     "certifications",
		Fetch:    b.fetch,
		Delete:   b.delete,
		PageSize: 10,
		Debounce: wait,
		Notifier: rec,
	})
	t.Cleanup(c.Close)
	return c
}

func pageOf(params url.Values) string {
	return params.Get("page")
}

func TestSearch_DebouncesToOneFetch(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})

	for _, term := range []string{"I", "IS", "ISO"} {
		c.SetSearch(term)
		time.Sleep(wait / 4)
	}

	require.Eventually(t, func() bool { return b.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * wait)

	assert.Equal(t, 1, b.count())
	assert.Equal(t, "ISO", b.last().Get("search"))
	assert.Equal(t, "1", pageOf(b.last()))
}

func TestFilterAndSearch_FinalValues(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})

	c.SetFilter("type", "Initial")
	c.SetSearch("iso")
	c.SetFilter("type", "ISO 9001:2015")

	require.Eventually(t, func() bool { return b.count() == 1 }, time.Second, 5*time.Millisecond)

	params := b.last()
	assert.Equal(t, "ISO 9001:2015", params.Get("type"))
	assert.Equal(t, "iso", params.Get("search"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestEmptyFiltersAreOmitted(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})

	c.SetFilter("type", "")
	c.SetFilter("field", "   ")
	c.SetSearch("")

	require.Eventually(t, func() bool { return b.count() == 1 }, time.Second, 5*time.Millisecond)

	params := b.last()
	assert.NotContains(t, params, "type")
	assert.NotContains(t, params, "field")
	assert.NotContains(t, params, "search")
	assert.Equal(t, "1", params.Get("page"))
}

func TestSetPage_FetchesImmediately(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})
	require.NoError(t, c.Load(context.Background()))

	c.SetPage(2)

	require.Eventually(t, func() bool { return b.count() == 2 }, wait/2, time.Millisecond)
	assert.Equal(t, "2", pageOf(b.last()))
}

func TestReset_FetchesPageOneWithoutFilters(t *testing.T) {
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		return pagination.NewPageResult([]string{"x"}, 1, 5), nil
	}}
	c := newController(t, b, &notify.Recorder{})

	c.Restore("iso", map[string]string{"type": "Initial"}, 3)
	require.NoError(t, c.Load(context.Background()))
	c.SetSearch("pending")

	c.Reset()

	require.Eventually(t, func() bool { return b.count() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * wait)
	assert.Equal(t, 2, b.count(), "pending debounce must not fire after reset")

	params := b.last()
	assert.Equal(t, "1", params.Get("page"))
	assert.NotContains(t, params, "search")
	assert.NotContains(t, params, "type")

	s := c.State()
	assert.Empty(t, s.Search)
	assert.Empty(t, s.Filters)
	assert.Equal(t, 1, s.Page)
}

func TestFetchFailure_KeepsItems(t *testing.T) {
	fail := false
	var mu sync.Mutex
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return pagination.PageResult[string]{}, &client.Error{Kind: client.KindServer, Message: "backend down"}
		}
		return pagination.NewPageResult([]string{"a", "b"}, 1, 2), nil
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	require.NoError(t, c.Load(context.Background()))

	mu.Lock()
	fail = true
	mu.Unlock()

	err := c.Load(context.Background())
	require.Error(t, err)

	s := c.State()
	assert.Equal(t, []string{"a", "b"}, s.Items)
	assert.Equal(t, "backend down", s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, 1, rec.Count(notify.Error))
}

func TestFetchFailure_GenericMessage(t *testing.T) {
	b := &backend{respond: func(url.Values) (pagination.PageResult[string], error) {
		return pagination.PageResult[string]{}, errors.New("dial tcp: refused")
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	require.Error(t, c.Load(context.Background()))
	s := c.State()
	assert.Equal(t, "Failed to load certifications", s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, 1, rec.Count(notify.Error))
}

func TestFetchFailure_AsyncRefreshNotifiesOnce(t *testing.T) {
	b := &backend{respond: func(url.Values) (pagination.PageResult[string], error) {
		return pagination.PageResult[string]{}, &client.Error{Kind: client.KindServer, Status: 503, Message: "maintenance"}
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	c.Refresh()

	require.Eventually(t, func() bool {
		return rec.Count(notify.Error) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "maintenance", c.State().Error)
	assert.False(t, c.State().Loading)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		if params.Get("page") == "2" {
			<-release
			return pagination.NewPageResult([]string{"stale"}, 2, 3), nil
		}
		return pagination.NewPageResult([]string{"fresh"}, 3, 3), nil
	}}
	c := newController(t, b, &notify.Recorder{})
	require.NoError(t, c.Load(context.Background()))

	c.SetPage(2)
	require.Eventually(t, func() bool { return b.count() == 2 }, time.Second, time.Millisecond)

	c.SetPage(3)
	require.Eventually(t, func() bool { return c.State().Page == 3 }, time.Second, time.Millisecond)

	close(release)
	time.Sleep(wait)

	s := c.State()
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, []string{"fresh"}, s.Items)
}

func TestCanceledFetch_NoNotification(t *testing.T) {
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		return pagination.PageResult[string]{}, &client.Error{Kind: client.KindCanceled, Err: context.Canceled}
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	_ = c.Load(context.Background())
	assert.Zero(t, rec.Count(notify.Error))
}

func TestClose_DropsLateResults(t *testing.T) {
	started := make(chan struct{})
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		close(started)
		time.Sleep(wait)
		return pagination.NewPageResult([]string{"late"}, 1, 1), nil
	}}
	c := newController(t, b, &notify.Recorder{})

	c.Refresh()
	<-started
	c.Close()
	time.Sleep(2 * wait)

	assert.Empty(t, c.State().Items)

	c.SetSearch("after close")
	time.Sleep(2 * wait)
	assert.Equal(t, 1, b.count())
}

func TestClose_CancelsPendingDebounce(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})

	c.SetSearch("iso")
	c.Close()
	time.Sleep(2 * wait)

	assert.Zero(t, b.count())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	b := &backend{}
	c := newController(t, b, &notify.Recorder{})

	err := c.Delete(context.Background(), listview.DeleteRequest{ID: "c1"})
	assert.ErrorIs(t, err, listview.ErrNotConfirmed)
	assert.Empty(t, b.deletes)
	assert.Zero(t, b.count())
}

func TestDelete_RefetchesCurrentPageWithFilters(t *testing.T) {
	b := &backend{respond: func(params url.Values) (pagination.PageResult[string], error) {
		return pagination.NewPageResult([]string{"x", "y"}, 2, 4), nil
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	c.Restore("", map[string]string{"type": "ISO 9001:2015"}, 2)
	require.NoError(t, c.Load(context.Background()))

	err := c.Delete(context.Background(), listview.DeleteRequest{ID: "c1", Label: "ISO 9001", Confirmed: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, b.deletes)
	require.Equal(t, 2, b.count())
	params := b.last()
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "ISO 9001:2015", params.Get("type"))
	assert.Equal(t, 1, rec.Count(notify.Success))
	assert.Equal(t, "ISO 9001:2015", c.State().Filters["type"])
}

func TestDelete_ClampsEmptiedLastPage(t *testing.T) {
	b := &backend{}
	b.respond = func(params url.Values) (pagination.PageResult[string], error) {
		b.mu.Lock()
		deleted := len(b.deletes) > 0
		b.mu.Unlock()

		switch {
		case !deleted:
			return pagination.NewPageResult([]string{"only"}, 3, 3), nil
		case params.Get("page") == "3":
			return pagination.NewPageResult([]string{}, 3, 2), nil
		default:
			return pagination.NewPageResult([]string{"p2"}, 2, 2), nil
		}
	}
	c := newController(t, b, &notify.Recorder{})

	c.Restore("", nil, 3)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.Delete(context.Background(), listview.DeleteRequest{ID: "x", Confirmed: true}))

	s := c.State()
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 2, s.TotalPages)
	assert.Equal(t, []string{"p2"}, s.Items)
	assert.Equal(t, "2", pageOf(b.last()))
}

func TestDelete_ReferenceConflict(t *testing.T) {
	b := &backend{remove: func(string) error {
		return &client.Error{
			Kind:       client.KindConflict,
			Status:     400,
			References: &client.References{Certifications: 3, Trainings: 1},
		}
	}}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)
	require.NoError(t, c.Load(context.Background()))
	before := c.State()

	err := c.Delete(context.Background(), listview.DeleteRequest{ID: "f1", Label: "Quality", Confirmed: true})
	require.ErrorIs(t, err, client.ErrConflict)

	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, notify.Error, all[0].Kind)
	assert.Equal(t, "Cannot delete: referenced by 3 certifications, 1 training", all[0].Message)

	assert.Equal(t, 1, b.count(), "no re-fetch after a failed delete")
	assert.Equal(t, before.Items, c.State().Items)
}

func TestLoadOptions_FailureLeavesEmptySlot(t *testing.T) {
	b := &backend{}
	rec := &notify.Recorder{}
	c := newController(t, b, rec)

	c.LoadOptions(context.Background(),
		lookup.Source{
			Name:  "type",
			Label: "certification types",
			Load: func(context.Context) ([]lookup.Option, error) {
				return nil, errors.New("boom")
			},
		},
		lookup.Source{
			Name: "field",
			Load: func(context.Context) ([]lookup.Option, error) {
				return []lookup.Option{{Value: "f1", Label: "Quality"}}, nil
			},
		},
	)
	require.NoError(t, c.Load(context.Background()))

	s := c.State()
	assert.NotNil(t, s.Options["type"])
	assert.Empty(t, s.Options["type"])
	assert.Len(t, s.Options["field"], 1)
	assert.Equal(t, []string{"a", "b"}, s.Items)
	assert.Equal(t, 1, rec.Count(notify.Error))
}

func TestValues_DescribesView(t *testing.T) {
	c := newController(t, &backend{}, &notify.Recorder{})
	c.Restore("iso", map[string]string{"type": "Initial", "field": ""}, 1)

	v := c.Values()
	assert.Equal(t, "iso", v.Get("search"))
	assert.Equal(t, "Initial", v.Get("type"))
	assert.NotContains(t, v, "page")
	assert.NotContains(t, v, "field")
	assert.NotContains(t, v, "limit")
}

func TestOnChange_ReportsLoading(t *testing.T) {
	var (
		mu     sync.Mutex
		states []listview.State[string]
	)
	b := &backend{}
	c := listview.New(listview.Options[string]{
		Fetch: b.fetch,
		OnChange: func(s listview.State[string]) {
			mu.Lock()
			states = append(states, s)
			mu.Unlock()
		},
	})
	defer c.Close()

	require.NoError(t, c.Load(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(states), 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[len(states)-1].Loading)
	assert.Equal(t, 3, states[len(states)-1].TotalPages)
}
