package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	devices := `
CREATE TABLE IF NOT EXISTS devices (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  device_name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  base_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	attributes := `
CREATE TABLE IF NOT EXISTS attributes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  device_id INTEGER NOT NULL,
  attribute_name TEXT NOT NULL,
  discount_type TEXT NOT NULL DEFAULT 'fixed',
  created_at DATETIME,
  updated_at DATETIME
);`
	options := `
CREATE TABLE IF NOT EXISTS attribute_options (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  attribute_id INTEGER NOT NULL,
  option_label TEXT NOT NULL,
  discount_value NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`

	for _, ddl := range []string{devices, attributes, options} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}
