// Package main provides the seed command for populating the REST backend
// with catalog data. Seeders save by natural key, so a second run updates
// the records the first one created.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/lookup"
)

// Seeder populates one resource from the fixtures.
type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, run *Run) error
}

// seeders run in this order; later ones reference earlier ones by name.
var seeders = []Seeder{
	fieldSeeder{},
	certificationSeeder{},
	trainingSeeder{},
	companySeeder{},
	pageSeeder{},
}

func getSeeder(name string) (Seeder, bool) {
	for _, s := range seeders {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

func listSeeders() []Seeder {
	return seeders
}

// Run is the state shared by the seeders of one invocation.
type Run struct {
	domain   *resources.Domain
	fixtures *Fixtures
	logger   *slog.Logger

	// ids maps a kind, then a name, to a backend id.
	ids map[string]map[string]string

	Created int
	Updated int
}

func newRun(domain *resources.Domain, fixtures *Fixtures, logger *slog.Logger) *Run {
	return &Run{
		domain:   domain,
		fixtures: fixtures,
		logger:   logger,
		ids:      make(map[string]map[string]string),
	}
}

// known loads the existing records of kind once and returns them by name.
func (r *Run) known(ctx context.Context, kind string, load func(context.Context) ([]lookup.Option, error)) (map[string]string, error) {
	if ids, ok := r.ids[kind]; ok {
		return ids, nil
	}
	opts, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	ids := make(map[string]string, len(opts))
	for _, o := range opts {
		ids[o.Label] = o.Value
	}
	r.ids[kind] = ids
	return ids, nil
}

// resolve maps names of kind to ids. Unknown names are an error.
func (r *Run) resolve(ctx context.Context, kind string, load func(context.Context) ([]lookup.Option, error), names []string) ([]string, error) {
	ids, err := r.known(ctx, kind, load)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, name)
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *Run) saved(kind, name, id string, created bool) {
	if r.ids[kind] == nil {
		r.ids[kind] = make(map[string]string)
	}
	r.ids[kind][name] = id

	action := "updated"
	if created {
		r.Created++
		action = "created"
	} else {
		r.Updated++
	}
	r.logger.Info("seeded", "kind", kind, "name", name, "id", id, "action", action)
}

// runSeeders runs the named seeders in registry order, or all of them when
// names is empty. Seeding stops at the first failure.
func runSeeders(ctx context.Context, run *Run, names []string) error {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := getSeeder(name); !ok {
			return fmt.Errorf("seeder not found: %s", name)
		}
		selected[name] = true
	}

	for _, s := range seeders {
		if len(selected) > 0 && !selected[s.Name()] {
			continue
		}
		if err := s.Seed(ctx, run); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
