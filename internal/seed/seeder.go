package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"billbook/internal/log"
	"billbook/internal/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// seedTimeout bounds one dataset load, independent of any request.
const seedTimeout = 2 * time.Minute

// Seeder performs the lazy one-time load of each dataset.
//
// A dataset is loaded at most once per database: the store only inserts
// into an unmarked, empty table and records a marker in the same
// transaction. Within a process, concurrent first callers share one load
// and later calls return without touching the store.
type Seeder struct {
	store  ports.DatasetStore
	source Source
	newID  func() string
	hooks  []func(ds ports.Dataset, rows int)

	group singleflight.Group
	mu    sync.RWMutex
	done  map[ports.Dataset]bool
}

// SeederOption configures a Seeder.
type SeederOption func(*Seeder)

// WithIDGenerator replaces the UUID generator used for seeded bills.
func WithIDGenerator(fn func() string) SeederOption {
	return func(s *Seeder) { s.newID = fn }
}

// OnSeeded registers fn to run after a load inserted rows.
func OnSeeded(fn func(ds ports.Dataset, rows int)) SeederOption {
	return func(s *Seeder) { s.hooks = append(s.hooks, fn) }
}

// NewSeeder returns a Seeder reading from source. A nil source disables
// seeding.
func NewSeeder(store ports.DatasetStore, source Source, opts ...SeederOption) *Seeder {
	s := &Seeder{
		store:  store,
		source: source,
		newID:  uuid.NewString,
		done:   map[ports.Dataset]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureBills seeds the bills dataset if it never was.
func (s *Seeder) EnsureBills(ctx context.Context) error {
	return s.ensure(ctx, ports.DatasetBills)
}

// EnsureCategories seeds the categories dataset if it never was.
func (s *Seeder) EnsureCategories(ctx context.Context) error {
	return s.ensure(ctx, ports.DatasetCategories)
}

func (s *Seeder) isDone(ds ports.Dataset) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done[ds]
}

func (s *Seeder) ensure(ctx context.Context, ds ports.Dataset) error {
	if s == nil || s.source == nil || s.isDone(ds) {
		return nil
	}
	// The load is shared by every concurrent caller, so it must not die
	// with the first caller's request.
	ch := s.group.DoChan(string(ds), func() (any, error) {
		if s.isDone(ds) {
			return nil, nil
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), seedTimeout)
		defer cancel()

		seeded, err := s.store.Seeded(ctx, ds)
		if err != nil {
			return nil, fmt.Errorf("check dataset %s: %w", ds, err)
		}
		if !seeded {
			if err := s.load(ctx, ds); err != nil {
				return nil, err
			}
		}
		s.mu.Lock()
		s.done[ds] = true
		s.mu.Unlock()
		return nil, nil
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Seeder) load(ctx context.Context, ds ports.Dataset) error {
	table, err := s.source.Load(ctx, ds)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", ds, err)
	}

	var rows int
	switch ds {
	case ports.DatasetBills:
		bills, err := ParseBills(table, s.newID)
		if err != nil {
			return fmt.Errorf("parse dataset %s: %w", ds, err)
		}
		rows, err = s.store.SeedBills(ctx, bills)
		if err != nil {
			return fmt.Errorf("seed dataset %s: %w", ds, err)
		}
	case ports.DatasetCategories:
		cats, err := ParseCategories(table)
		if err != nil {
			return fmt.Errorf("parse dataset %s: %w", ds, err)
		}
		rows, err = s.store.SeedCategories(ctx, cats)
		if err != nil {
			return fmt.Errorf("seed dataset %s: %w", ds, err)
		}
	default:
		return fmt.Errorf("unknown dataset %q", ds)
	}

	slog.InfoContext(ctx, "Seed completed",
		log.FieldComponent, log.ComponentSeed,
		log.FieldDataset, string(ds),
		log.FieldRows, rows)

	if rows > 0 {
		for _, fn := range s.hooks {
			fn(ds, rows)
		}
	}
	return nil
}
