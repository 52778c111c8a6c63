package backend

import (
	"context"
	"time"

	"billbook/internal/cache"
	"billbook/internal/ports"
	"billbook/internal/seed"
	"billbook/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult is everything the server needs, wired together.
type BackendResult struct {
	Store      ports.Store
	Seeder     *seed.Seeder
	Events     ports.EventPublisher // nil when AMQP is disabled
	Caches     *cache.Manager
	Search     *services.SearchService
	Bills      *services.BillService
	Categories *services.CategoryService
	Cleanup    CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Seeding
	SeedSource SeedSourceType
	SeedDir    string
	Sheets     seed.SheetsConfig

	// Optional bill events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	CategoryCacheTTL time.Duration
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// SeedSourceType selects where the one-time datasets come from.
type SeedSourceType string

const (
	CSVSeed    SeedSourceType = "csv"
	SheetsSeed SeedSourceType = "sheets"
	NoSeed     SeedSourceType = "none"
)

// IsValid returns true if the seed source is known
func (s SeedSourceType) IsValid() bool {
	switch s {
	case CSVSeed, SheetsSeed, NoSeed:
		return true
	default:
		return false
	}
}
