package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"billbook/internal/core"
	"billbook/internal/ports"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const billColumns = "id, amount_cents, category_id, type, time"

// datasetTables maps seedable datasets to their tables.
var datasetTables = map[ports.Dataset]string{
	ports.DatasetBills:      "bills",
	ports.DatasetCategories: "categories",
}

type SQLiteRepository struct {
	db *sql.DB
}

// DSN returns the connection string used for dbPath: WAL journal, a busy
// timeout for concurrent readers and immediate write transactions.
func DSN(dbPath string) string {
	return dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements ports.Pinger
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListBills implements ports.BillReader
func (r *SQLiteRepository) ListBills(ctx context.Context, q core.BillQuery, order []core.OrderTerm, offset, limit int) ([]core.Bill, error) {
	if limit <= 0 || offset < 0 {
		return []core.Bill{}, nil
	}
	where, args := whereClause(q)
	query := "SELECT " + billColumns + " FROM bills" + where + orderClause(order) + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]core.Bill, 0, limit)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// CountBills implements ports.BillReader
func (r *SQLiteRepository) CountBills(ctx context.Context, q core.BillQuery) (int64, error) {
	where, args := whereClause(q)
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bills"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return n, nil
}

// SumBills implements ports.BillReader
func (r *SQLiteRepository) SumBills(ctx context.Context, q core.BillQuery) (decimal.NullDecimal, error) {
	where, args := whereClause(q)
	var sum sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT SUM(amount_cents) FROM bills"+where, args...).Scan(&sum); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("sum bills: %w", err)
	}
	if !sum.Valid {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(core.FromCents(sum.Int64)), nil
}

// GetBill implements ports.BillReader
func (r *SQLiteRepository) GetBill(ctx context.Context, id string) (core.Bill, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?", id)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, core.ErrBillNotFound
	}
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill by id: %w", err)
	}
	return b, nil
}

// CreateBill implements ports.BillWriter
func (r *SQLiteRepository) CreateBill(ctx context.Context, b core.Bill) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO bills ("+billColumns+") VALUES (?, ?, ?, ?, ?)",
		billArgs(b)...)
	if err != nil {
		return fmt.Errorf("create bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved to SQLite",
		"id", b.ID,
		"type", b.Type,
		"amount_cents", core.ToCents(b.Amount))
	return nil
}

// UpdateBill implements ports.BillWriter
func (r *SQLiteRepository) UpdateBill(ctx context.Context, b core.Bill) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bills SET amount_cents = ?, category_id = ?, type = ?, time = ? WHERE id = ?",
		core.ToCents(b.Amount), nullString(b.CategoryID), string(b.Type), b.Time.UnixMilli(), b.ID)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if n == 0 {
		return core.ErrBillNotFound
	}
	return nil
}

// DeleteBill implements ports.BillWriter
func (r *SQLiteRepository) DeleteBill(ctx context.Context, id string) (core.Bill, error) {
	row := r.db.QueryRowContext(ctx, "DELETE FROM bills WHERE id = ? RETURNING "+billColumns, id)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, core.ErrBillNotFound
	}
	if err != nil {
		return core.Bill{}, fmt.Errorf("delete bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill deleted from SQLite", "id", id)
	return b, nil
}

// ListCategories implements ports.CategoryStore
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, type FROM categories ORDER BY type, name, id")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []core.Category{}
	for rows.Next() {
		var c core.Category
		var t string
		if err := rows.Scan(&c.ID, &c.Name, &t); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.BillType(t)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory implements ports.CategoryStore
func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	var c core.Category
	var t string
	err := r.db.QueryRowContext(ctx, "SELECT id, name, type FROM categories WHERE id = ?", id).Scan(&c.ID, &c.Name, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrCategoryNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category by id: %w", err)
	}
	c.Type = core.BillType(t)
	return c, nil
}

// Seeded implements ports.DatasetStore
func (r *SQLiteRepository) Seeded(ctx context.Context, ds ports.Dataset) (bool, error) {
	return seeded(ctx, r.db, ds)
}

// SeedBills implements ports.DatasetStore
func (r *SQLiteRepository) SeedBills(ctx context.Context, bills []core.Bill) (int, error) {
	return r.seed(ctx, ports.DatasetBills, len(bills), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO bills ("+billColumns+") VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, b := range bills {
			if _, err := stmt.ExecContext(ctx, billArgs(b)...); err != nil {
				return fmt.Errorf("insert bill %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

// SeedCategories implements ports.DatasetStore
func (r *SQLiteRepository) SeedCategories(ctx context.Context, categories []core.Category) (int, error) {
	return r.seed(ctx, ports.DatasetCategories, len(categories), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO categories (id, name, type) VALUES (?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range categories {
			if _, err := stmt.ExecContext(ctx, c.ID, c.Name, string(c.Type)); err != nil {
				return fmt.Errorf("insert category %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// seed runs insert inside a write transaction that first re-checks the
// dataset and finally records the marker row.
func (r *SQLiteRepository) seed(ctx context.Context, ds ports.Dataset, rows int, insert func(*sql.Tx) error) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed %s: %w", ds, err)
	}
	defer tx.Rollback()

	done, err := seeded(ctx, tx, ds)
	if err != nil {
		return 0, err
	}
	if done {
		return 0, nil
	}

	if err := insert(tx); err != nil {
		return 0, fmt.Errorf("seed %s: %w", ds, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO seed_runs (dataset, rows, seeded_at) VALUES (?, ?, ?)",
		string(ds), rows, time.Now().UnixMilli()); err != nil {
		return 0, fmt.Errorf("mark seed %s: %w", ds, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed %s: %w", ds, err)
	}

	slog.InfoContext(ctx, "Dataset seeded", "dataset", ds, "rows", rows)
	return rows, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// seeded reports whether ds has a marker row or a non-empty table.
func seeded(ctx context.Context, q queryer, ds ports.Dataset) (bool, error) {
	table, ok := datasetTables[ds]
	if !ok {
		return false, fmt.Errorf("unknown dataset %q", ds)
	}
	var done bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM seed_runs WHERE dataset = ?) OR EXISTS(SELECT 1 FROM "+table+")",
		string(ds)).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("check seed %s: %w", ds, err)
	}
	return done, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(s scanner) (core.Bill, error) {
	var (
		b        core.Bill
		cents    int64
		category sql.NullString
		t        string
		ms       int64
	)
	if err := s.Scan(&b.ID, &cents, &category, &t, &ms); err != nil {
		return core.Bill{}, err
	}
	b.Amount = core.FromCents(cents)
	if category.Valid {
		id := category.String
		b.CategoryID = &id
	}
	b.Type = core.BillType(t)
	b.Time = time.UnixMilli(ms).UTC()
	return b, nil
}

func billArgs(b core.Bill) []any {
	return []any{b.ID, core.ToCents(b.Amount), nullString(b.CategoryID), string(b.Type), b.Time.UnixMilli()}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
