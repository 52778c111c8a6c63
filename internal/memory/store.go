// Package memory is an in-process bill and category store for development
// and tests. It honours the same contracts as the SQLite repository,
// including cent amounts, millisecond timestamps and seed markers.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"billbook/internal/core"
	"billbook/internal/ports"

	"github.com/shopspring/decimal"
)

type Store struct {
	mu     sync.RWMutex
	bills  []core.Bill
	cats   []core.Category
	marked map[ports.Dataset]int
}

func New() *Store {
	return &Store{marked: map[ports.Dataset]int{}}
}

func normalize(b core.Bill) core.Bill {
	b.Amount = core.RoundCents(b.Amount)
	b.Time = b.Time.UTC().Truncate(time.Millisecond)
	if b.CategoryID != nil {
		id := *b.CategoryID
		b.CategoryID = &id
	}
	return b
}

func (s *Store) matching(q core.BillQuery) []core.Bill {
	var out []core.Bill
	for _, b := range s.bills {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// ListBills implements ports.BillReader. Ties keep insertion order.
func (s *Store) ListBills(_ context.Context, q core.BillQuery, order []core.OrderTerm, offset, limit int) ([]core.Bill, error) {
	s.mu.RLock()
	rows := s.matching(q)
	s.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		for _, t := range order {
			c := compare(rows[i], rows[j], t.Field)
			if c == 0 {
				continue
			}
			if t.Direction == core.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	out := []core.Bill{}
	if limit <= 0 || offset < 0 || offset >= len(rows) {
		return out, nil
	}
	if limit > len(rows)-offset {
		limit = len(rows) - offset
	}
	return append(out, rows[offset:offset+limit]...), nil
}

func compare(a, b core.Bill, f core.SortField) int {
	switch f {
	case core.SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case core.SortByTime:
		return a.Time.Compare(b.Time)
	default:
		return 0
	}
}

// CountBills implements ports.BillReader
func (s *Store) CountBills(_ context.Context, q core.BillQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(q))), nil
}

// SumBills implements ports.BillReader
func (s *Store) SumBills(_ context.Context, q core.BillQuery) (decimal.NullDecimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.matching(q)
	if len(rows) == 0 {
		return decimal.NullDecimal{}, nil
	}
	sum := decimal.Zero
	for _, b := range rows {
		sum = sum.Add(b.Amount)
	}
	return decimal.NewNullDecimal(sum), nil
}

// GetBill implements ports.BillReader
func (s *Store) GetBill(_ context.Context, id string) (core.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.bills[i], nil
	}
	return core.Bill{}, core.ErrBillNotFound
}

func (s *Store) indexOf(id string) int {
	for i, b := range s.bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// CreateBill implements ports.BillWriter
func (s *Store) CreateBill(_ context.Context, b core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(b.ID) >= 0 {
		return fmt.Errorf("create bill: duplicate id %s", b.ID)
	}
	s.bills = append(s.bills, normalize(b))
	return nil
}

// UpdateBill implements ports.BillWriter
func (s *Store) UpdateBill(_ context.Context, b core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(b.ID)
	if i < 0 {
		return core.ErrBillNotFound
	}
	s.bills[i] = normalize(b)
	return nil
}

// DeleteBill implements ports.BillWriter
func (s *Store) DeleteBill(_ context.Context, id string) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Bill{}, core.ErrBillNotFound
	}
	b := s.bills[i]
	s.bills = append(s.bills[:i], s.bills[i+1:]...)
	return b, nil
}

// ListCategories implements ports.CategoryStore
func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.RLock()
	out := append([]core.Category{}, s.cats...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetCategory implements ports.CategoryStore
func (s *Store) GetCategory(_ context.Context, id string) (core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, core.ErrCategoryNotFound
}

// Seeded implements ports.DatasetStore
func (s *Store) Seeded(_ context.Context, ds ports.Dataset) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seededLocked(ds)
}

func (s *Store) seededLocked(ds ports.Dataset) (bool, error) {
	if _, ok := s.marked[ds]; ok {
		return true, nil
	}
	switch ds {
	case ports.DatasetBills:
		return len(s.bills) > 0, nil
	case ports.DatasetCategories:
		return len(s.cats) > 0, nil
	default:
		return false, fmt.Errorf("unknown dataset %q", ds)
	}
}

// SeedBills implements ports.DatasetStore
func (s *Store) SeedBills(_ context.Context, bills []core.Bill) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if done, err := s.seededLocked(ports.DatasetBills); err != nil || done {
		return 0, err
	}
	for _, b := range bills {
		s.bills = append(s.bills, normalize(b))
	}
	s.marked[ports.DatasetBills] = len(bills)
	return len(bills), nil
}

// SeedCategories implements ports.DatasetStore
func (s *Store) SeedCategories(_ context.Context, categories []core.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if done, err := s.seededLocked(ports.DatasetCategories); err != nil || done {
		return 0, err
	}
	s.cats = append(s.cats, categories...)
	s.marked[ports.DatasetCategories] = len(categories)
	return len(categories), nil
}

// Ping implements ports.Pinger
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
