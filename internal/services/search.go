package services

import (
	"context"
	"fmt"
	"time"

	"billbook/internal/core"
	"billbook/internal/log"
	"billbook/internal/ports"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Seeder is the lazy one-time dataset loader the services trigger before
// reading. A nil Seeder disables seeding.
type Seeder interface {
	EnsureBills(ctx context.Context) error
	EnsureCategories(ctx context.Context) error
}

// SearchService answers bill searches: one page plus the match count and
// the expenditure and revenue totals over the same predicate.
type SearchService struct {
	bills  ports.BillReader
	seeder Seeder
	logger *log.StructuredLogger
}

func NewSearchService(bills ports.BillReader, seeder Seeder) *SearchService {
	return &SearchService{
		bills:  bills,
		seeder: seeder,
		logger: log.NewStructuredLogger(log.FromContext(context.Background()).WithComponent(log.ComponentSearch)),
	}
}

// Search validates req, seeds the bill store on first use and runs the
// queries. Validation errors are returned unwrapped.
func (s *SearchService) Search(ctx context.Context, req core.SearchRequest) (core.SearchResult, error) {
	filter, err := req.Validate()
	if err != nil {
		return core.SearchResult{}, err
	}
	if s.seeder != nil {
		if err := s.seeder.EnsureBills(ctx); err != nil {
			return core.SearchResult{}, fmt.Errorf("seed bills: %w", err)
		}
	}
	return s.Run(ctx, filter)
}

// Run executes the page, count and both sum queries concurrently. The sums
// ignore the filter's type. Any failure fails the whole search.
func (s *SearchService) Run(ctx context.Context, f core.SearchFilter) (core.SearchResult, error) {
	start := time.Now()

	var (
		list          []core.Bill
		count         int64
		totalExpenses decimal.NullDecimal
		totalRevenue  decimal.NullDecimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.bills.ListBills(gctx, f.Query, f.OrderBy, f.Offset(), f.PageSize)
		if err != nil {
			return fmt.Errorf("list page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		count, err = s.bills.CountBills(gctx, f.Query)
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totalExpenses, err = s.bills.SumBills(gctx, f.Query.WithType(core.Expenditure))
		if err != nil {
			return fmt.Errorf("sum expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totalRevenue, err = s.bills.SumBills(gctx, f.Query.WithType(core.Revenue))
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.SearchResult{}, fmt.Errorf("search bills: %w", err)
	}

	if list == nil {
		list = []core.Bill{}
	}
	s.logger.LogSearch(ctx, f, count, time.Since(start).Milliseconds())

	return core.SearchResult{
		List:          list,
		PageCount:     f.PageCount(count),
		TotalExpenses: totalExpenses,
		TotalRevenue:  totalRevenue,
	}, nil
}
