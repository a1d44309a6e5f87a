package catalogcsv

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openExchangeTestDB(t *testing.T) *gorm.DB {
	return openNamedExchangeTestDB(t, "")
}

// openNamedExchangeTestDB opens a memory database keyed by test name plus
// suffix, for tests needing two independent databases.
func openNamedExchangeTestDB(t *testing.T, suffix string) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_") + suffix
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:csv_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	ddls := []string{`
CREATE TABLE IF NOT EXISTS devices (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  device_name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  base_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS attributes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  device_id INTEGER NOT NULL,
  attribute_name TEXT NOT NULL,
  discount_type TEXT NOT NULL DEFAULT 'fixed',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS attribute_options (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  attribute_id INTEGER NOT NULL,
  option_label TEXT NOT NULL,
  discount_value NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS evaluation_criteria (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  criteria_text TEXT NOT NULL,
  discount_value NUMERIC NOT NULL DEFAULT 0,
  applicable_brands TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, ddl := range ddls {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}
