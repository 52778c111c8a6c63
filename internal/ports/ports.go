package ports

import (
	"context"

	"billbook/internal/core"

	"github.com/shopspring/decimal"
)

// Dataset names a seedable table.
type Dataset string

const (
	DatasetBills      Dataset = "bills"
	DatasetCategories Dataset = "categories"
)

// Ports for outbound adapters.
//
//go:generate mockgen -destination=mocks/mock_ports.go billbook/internal/ports BillReader,BillWriter,CategoryStore,DatasetStore,EventPublisher
type (
	// BillReader answers the search queries. Every method applies the same
	// BillQuery predicate.
	BillReader interface {
		// ListBills returns one page ordered by the terms in order.
		ListBills(ctx context.Context, q core.BillQuery, order []core.OrderTerm, offset, limit int) ([]core.Bill, error)
		CountBills(ctx context.Context, q core.BillQuery) (int64, error)
		// SumBills returns an invalid NullDecimal when no row matches.
		SumBills(ctx context.Context, q core.BillQuery) (decimal.NullDecimal, error)
		// GetBill returns core.ErrBillNotFound for an unknown id.
		GetBill(ctx context.Context, id string) (core.Bill, error)
	}

	BillWriter interface {
		CreateBill(ctx context.Context, b core.Bill) error
		// UpdateBill replaces every field of an existing bill, or returns
		// core.ErrBillNotFound and changes nothing.
		UpdateBill(ctx context.Context, b core.Bill) error
		// DeleteBill removes a bill and returns what was stored.
		DeleteBill(ctx context.Context, id string) (core.Bill, error)
	}

	CategoryStore interface {
		// ListCategories is ordered by type, then name.
		ListCategories(ctx context.Context) ([]core.Category, error)
		// GetCategory returns core.ErrCategoryNotFound for an unknown id.
		GetCategory(ctx context.Context, id string) (core.Category, error)
	}

	// DatasetStore supports the one-time seed. SeedBills and SeedCategories
	// insert only when the dataset is unmarked and its table is empty, then
	// mark it, all in one transaction, and report how many rows they wrote.
	DatasetStore interface {
		Seeded(ctx context.Context, ds Dataset) (bool, error)
		SeedBills(ctx context.Context, bills []core.Bill) (int, error)
		SeedCategories(ctx context.Context, categories []core.Category) (int, error)
	}

	// EventPublisher delivers bill change notifications.
	EventPublisher interface {
		PublishBillEvent(ctx context.Context, ev core.BillEvent) error
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Store is everything a data backend provides.
	Store interface {
		BillReader
		BillWriter
		CategoryStore
		DatasetStore
		Pinger
		Close() error
	}
)
