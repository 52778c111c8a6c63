package backend

import (
	"fmt"
	"time"

	"billbook/internal/config"
	"billbook/internal/seed"
)

const defaultCategoryCacheTTL = 5 * time.Minute

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	source := SeedSourceType(appConfig.SeedSource)
	if !source.IsValid() {
		return Config{}, fmt.Errorf("invalid seed source in config: %s", appConfig.SeedSource)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,

		SeedSource: source,
		SeedDir:    appConfig.SeedDir,
		Sheets: seed.SheetsConfig{
			SpreadsheetID:   appConfig.GoogleSpreadsheetID,
			BillsSheet:      appConfig.GoogleBillsSheet,
			CategoriesSheet: appConfig.GoogleCategoriesSheet,
			CredentialsJSON: appConfig.GoogleServiceAccountJSON,
			CredentialsFile: appConfig.GoogleServiceAccountFile,
		},

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		CategoryCacheTTL: appConfig.CategoryCacheTTL,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// nothing persists; seeding runs again on every start
	}

	switch c.SeedSource {
	case CSVSeed:
		if c.SeedDir == "" {
			return fmt.Errorf("seed directory is required for csv seed source")
		}
	case SheetsSeed:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets seed source")
		}
		if c.Sheets.CredentialsJSON == "" && c.Sheets.CredentialsFile == "" {
			return fmt.Errorf("either service account JSON or file must be provided for sheets seed source")
		}
	case NoSeed, "":
	default:
		return fmt.Errorf("invalid seed source: %s", c.SeedSource)
	}

	// AMQP is optional; the exchange and queue only matter once it is on
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		return fmt.Errorf("AMQP exchange and queue are required when AMQP URL is set")
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, MemoryBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
