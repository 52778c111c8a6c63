package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"billbook/internal/core"
	"billbook/internal/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "billbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func bill(id, amount string, typ core.BillType, category string, d int) core.Bill {
	b := core.Bill{ID: id, Amount: decimal.RequireFromString(amount), Type: typ, Time: day(d)}
	if category != "" {
		b.CategoryID = &category
	}
	return b
}

func seedFixture(t *testing.T, repo *SQLiteRepository) {
	t.Helper()
	_, err := repo.SeedCategories(context.Background(), []core.Category{
		{ID: "food", Name: "Food", Type: core.Expenditure},
		{ID: "rent", Name: "Rent", Type: core.Expenditure},
		{ID: "salary", Name: "Salary", Type: core.Revenue},
	})
	require.NoError(t, err)
	n, err := repo.SeedBills(context.Background(), []core.Bill{
		bill("b1", "10.50", core.Expenditure, "food", 1),
		bill("b2", "800", core.Expenditure, "rent", 2),
		bill("b3", "2500", core.Revenue, "salary", 3),
		bill("b4", "4.25", core.Expenditure, "food", 4),
		bill("b5", "99.99", core.Expenditure, "", 5),
	})
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func ids(bills []core.Bill) []string {
	out := make([]string, len(bills))
	for i, b := range bills {
		out[i] = b.ID
	}
	return out
}

func TestListBillsFilterAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	all, err := repo.ListBills(ctx, core.BillQuery{}, nil, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4", "b5"}, ids(all))
	assert.Equal(t, "food", *all[0].CategoryID)
	assert.Nil(t, all[4].CategoryID)
	assert.True(t, all[0].Amount.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, day(1), all[0].Time)

	byAmount, err := repo.ListBills(ctx, core.BillQuery{}, []core.OrderTerm{{Field: core.SortByAmount, Direction: core.Desc}}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b3", "b2"}, ids(byAmount))

	page2, err := repo.ListBills(ctx, core.BillQuery{}, []core.OrderTerm{{Field: core.SortByTime, Direction: core.Desc}}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b3", "b2"}, ids(page2))

	start, end := day(2), day(4)
	food := core.BillQuery{CategoryIDs: []string{"food", "rent"}, Start: &start, End: &end}
	filtered, err := repo.ListBills(ctx, food, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "b4"}, ids(filtered))

	none, err := repo.ListBills(ctx, core.BillQuery{}, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	negative, err := repo.ListBills(ctx, core.BillQuery{}, nil, -4611686018427387904, 6)
	require.NoError(t, err)
	assert.Empty(t, negative)
}

func TestCountAndSum(t *testing.T) {
	repo := newTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	n, err := repo.CountBills(ctx, core.BillQuery{CategoryIDs: []string{"food"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	sum, err := repo.SumBills(ctx, core.BillQuery{}.WithType(core.Expenditure))
	require.NoError(t, err)
	require.True(t, sum.Valid)
	assert.Equal(t, "914.74", sum.Decimal.StringFixed(2))

	empty, err := repo.SumBills(ctx, core.BillQuery{CategoryIDs: []string{"nothing"}})
	require.NoError(t, err)
	assert.False(t, empty.Valid)
}

func TestBillCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := bill("x1", "12.34", core.Expenditure, "food", 7)
	require.NoError(t, repo.CreateBill(ctx, b))

	got, err := repo.GetBill(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.True(t, got.Amount.Equal(b.Amount))

	b.Amount = decimal.RequireFromString("20")
	b.CategoryID = nil
	require.NoError(t, repo.UpdateBill(ctx, b))
	got, err = repo.GetBill(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, "20.00", got.Amount.StringFixed(2))
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, repo.UpdateBill(ctx, bill("missing", "1", core.Revenue, "", 1)), core.ErrBillNotFound)

	deleted, err := repo.DeleteBill(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, "x1", deleted.ID)

	_, err = repo.DeleteBill(ctx, "x1")
	assert.ErrorIs(t, err, core.ErrBillNotFound)
	_, err = repo.GetBill(ctx, "x1")
	assert.ErrorIs(t, err, core.ErrBillNotFound)
}

func TestCategories(t *testing.T) {
	repo := newTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	list, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "food", list[0].ID)
	assert.Equal(t, "rent", list[1].ID)
	assert.Equal(t, "salary", list[2].ID)

	c, err := repo.GetCategory(ctx, "salary")
	require.NoError(t, err)
	assert.Equal(t, core.Revenue, c.Type)

	_, err = repo.GetCategory(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrCategoryNotFound)
}

func TestSeedRunsOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	done, err := repo.Seeded(ctx, ports.DatasetBills)
	require.NoError(t, err)
	assert.False(t, done)

	seedFixture(t, repo)

	done, err = repo.Seeded(ctx, ports.DatasetBills)
	require.NoError(t, err)
	assert.True(t, done)

	n, err := repo.SeedBills(ctx, []core.Bill{bill("again", "1", core.Revenue, "", 1)})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Emptying the table keeps the marker.
	for _, id := range []string{"b1", "b2", "b3", "b4", "b5"} {
		_, err := repo.DeleteBill(ctx, id)
		require.NoError(t, err)
	}
	done, err = repo.Seeded(ctx, ports.DatasetBills)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSeedSkipsNonEmptyTable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBill(ctx, bill("manual", "5", core.Revenue, "", 1)))

	n, err := repo.SeedBills(ctx, []core.Bill{bill("seed", "1", core.Revenue, "", 1)})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := repo.CountBills(ctx, core.BillQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEmptySeedWritesMarker(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.SeedCategories(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	done, err := repo.Seeded(ctx, ports.DatasetCategories)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billbook.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.CreateBill(context.Background(), bill("keep", "1", core.Revenue, "", 1)))
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	_, err = repo.GetBill(context.Background(), "keep")
	assert.NoError(t, err)
	assert.NoError(t, repo.Ping(context.Background()))
}
