package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"billbook/internal/amqp"
	"billbook/internal/cache"
	"billbook/internal/log"
	"billbook/internal/memory"
	"billbook/internal/ports"
	"billbook/internal/seed"
	"billbook/internal/services"
	"billbook/internal/storage"
)

const cacheCleanupInterval = time.Minute

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger.With(log.FieldComponent, log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := f.createStore(config)
	if err != nil {
		return nil, err
	}

	source, err := f.createSource(ctx, config)
	if err != nil {
		store.Close()
		return nil, err
	}

	res := &BackendResult{Store: store}

	// Initialize AMQP client (optional)
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without bill events", "error", err)
		} else {
			res.Events = amqpClient
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	ttl := config.CategoryCacheTTL
	if ttl <= 0 {
		ttl = defaultCategoryCacheTTL
	}
	var categories *services.CategoryService
	res.Seeder = seed.NewSeeder(store, source, seed.OnSeeded(func(ds ports.Dataset, rows int) {
		if ds == ports.DatasetCategories && categories != nil {
			categories.Invalidate()
		}
	}))
	categories = services.NewCategoryService(store, res.Seeder, ttl)

	res.Categories = categories
	res.Search = services.NewSearchService(store, res.Seeder)
	res.Bills = services.NewBillService(store, store, store, res.Seeder, res.Events)

	res.Caches = cache.NewManager()
	res.Caches.Register(categories.Cache())
	res.Caches.StartCleanup(cacheCleanupInterval)

	res.Cleanup = func() error {
		res.Caches.Stop()
		var errs []error
		if amqpClient != nil {
			errs = append(errs, amqpClient.Close())
		}
		errs = append(errs, store.Close())
		return errors.Join(errs...)
	}

	f.logger.Info("Initialized backend",
		"backend", config.Type.String(),
		"seed_source", string(config.SeedSource),
		"amqp_enabled", res.Events != nil)

	return res, nil
}

func (f *DefaultFactory) createStore(config Config) (ports.Store, error) {
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite store", "db_path", config.SQLiteDBPath)
		return repo, nil
	case MemoryBackend:
		f.logger.Info("Initialized memory store")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s (want one of %v)", config.Type, GetBackendTypeStrings())
	}
}

func (f *DefaultFactory) createSource(ctx context.Context, config Config) (seed.Source, error) {
	switch config.SeedSource {
	case CSVSeed:
		f.logger.Info("Seeding from CSV files", "dir", config.SeedDir)
		return seed.CSVSource{Dir: config.SeedDir}, nil
	case SheetsSeed:
		src, err := seed.NewSheetsSource(ctx, config.Sheets)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets seed source: %w", err)
		}
		f.logger.Info("Seeding from Google Sheets", "spreadsheet_id", config.Sheets.SpreadsheetID)
		return src, nil
	default:
		f.logger.Info("Seeding disabled")
		return nil, nil
	}
}
