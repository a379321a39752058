// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioconfig"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
)

// TestDatabaseName is the database name used for all integration tests,
// so tests never run against a production database.
const TestDatabaseName = "fixtures_test"

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file or defaults) and overrides the
// database name to TestDatabaseName.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	result, err := ioconfig.Load("")

	var cfg *config.Config
	if err != nil {
		cfg = config.Defaults()
	} else {
		cfg = result.Config
	}

	cfg.MergeWithDefaults()
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for
// tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
