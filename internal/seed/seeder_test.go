package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"billbook/internal/core"
	"billbook/internal/memory"
	"billbook/internal/ports"
	mock_ports "billbook/internal/ports/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource wraps a Source and counts loads.
type countingSource struct {
	Source
	loads atomic.Int32
}

func (c *countingSource) Load(ctx context.Context, ds ports.Dataset) (Table, error) {
	c.loads.Add(1)
	return c.Source.Load(ctx, ds)
}

type staticSource map[ports.Dataset]Table

func (s staticSource) Load(_ context.Context, ds ports.Dataset) (Table, error) {
	return s[ds], nil
}

func billsTable() Table {
	return Table{
		Header: []string{"amount", "category", "time", "type"},
		Rows: [][]string{
			{"10", "food", "1700000000000", "0"},
			{"20", "salary", "1700000000000", "1"},
		},
	}
}

func TestSeederLoadsOnceUnderConcurrency(t *testing.T) {
	store := memory.New()
	src := &countingSource{Source: staticSource{ports.DatasetBills: billsTable()}}
	var hooked atomic.Int32
	s := NewSeeder(store, src, OnSeeded(func(ds ports.Dataset, rows int) {
		hooked.Add(int32(rows))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.EnsureBills(context.Background()))
		}()
	}
	wg.Wait()
	require.NoError(t, s.EnsureBills(context.Background()))

	n, _ := store.CountBills(context.Background(), core.BillQuery{})
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int32(1), src.loads.Load())
	assert.Equal(t, int32(2), hooked.Load())
}

// gatedSource blocks loads until release is closed.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedSource) Load(ctx context.Context, ds ports.Dataset) (Table, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	return billsTable(), nil
}

func TestSeederSurvivesFirstCallerCancel(t *testing.T) {
	store := memory.New()
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	s := NewSeeder(store, src)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- s.EnsureBills(firstCtx) }()
	<-src.started

	second := make(chan error, 1)
	go func() { second <- s.EnsureBills(context.Background()) }()

	cancelFirst()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(src.release)
	require.NoError(t, <-second)

	n, _ := store.CountBills(context.Background(), core.BillQuery{})
	assert.Equal(t, int64(2), n)
	require.NoError(t, s.EnsureBills(context.Background()))
}

func TestSeederSkipsWhenStoreAlreadySeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_ports.NewMockDatasetStore(ctrl)
	store.EXPECT().Seeded(gomock.Any(), ports.DatasetCategories).Return(true, nil).Times(1)

	s := NewSeeder(store, staticSource{})
	require.NoError(t, s.EnsureCategories(context.Background()))
	// The second call is answered from the process flag.
	require.NoError(t, s.EnsureCategories(context.Background()))
}

func TestSeederRetriesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("disk full")
	store := mock_ports.NewMockDatasetStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Seeded(gomock.Any(), ports.DatasetBills).Return(false, nil),
		store.EXPECT().SeedBills(gomock.Any(), gomock.Len(2)).Return(0, boom),
		store.EXPECT().Seeded(gomock.Any(), ports.DatasetBills).Return(false, nil),
		store.EXPECT().SeedBills(gomock.Any(), gomock.Len(2)).Return(2, nil),
	)

	s := NewSeeder(store, staticSource{ports.DatasetBills: billsTable()})
	err := s.EnsureBills(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, s.EnsureBills(context.Background()))
	assert.NoError(t, s.EnsureBills(context.Background()))
}

func TestSeederParseErrorWritesNothing(t *testing.T) {
	store := memory.New()
	bad := Table{Header: []string{"amount"}, Rows: [][]string{{"1"}}}
	s := NewSeeder(store, staticSource{ports.DatasetBills: bad})

	err := s.EnsureBills(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")

	done, _ := store.Seeded(context.Background(), ports.DatasetBills)
	assert.False(t, done)
}

func TestSeederNilSourceIsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: the store must not be touched.
	store := mock_ports.NewMockDatasetStore(ctrl)
	s := NewSeeder(store, nil)
	assert.NoError(t, s.EnsureBills(context.Background()))
	assert.NoError(t, s.EnsureCategories(context.Background()))
}

func TestSeederFromCSVDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.csv"),
		[]byte("id,name,type\nfood,Food,0\nsalary,Salary,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bill.csv"),
		[]byte("type,time,category,amount\n0,1561910400000,food,5400\n\n1,1561910400000,salary,3900\n"), 0o644))

	store := memory.New()
	s := NewSeeder(store, CSVSource{Dir: dir})
	ctx := context.Background()

	require.NoError(t, s.EnsureCategories(ctx))
	require.NoError(t, s.EnsureBills(ctx))

	cats, _ := store.ListCategories(ctx)
	assert.Len(t, cats, 2)
	sum, _ := store.SumBills(ctx, core.BillQuery{}.WithType(core.Expenditure))
	assert.Equal(t, "5400.00", sum.Decimal.StringFixed(2))
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := CSVSource{Dir: t.TempDir()}.Load(context.Background(), ports.DatasetBills)
	assert.Error(t, err)
}
