package criteria

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openCriteriaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS evaluation_criteria (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  criteria_text TEXT NOT NULL,
  discount_value NUMERIC NOT NULL DEFAULT 0,
  applicable_brands TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func seedCriterion(t *testing.T, repo *Repository, text, brands string, value int64, active bool) *models.EvaluationCriterion {
	t.Helper()
	row, err := repo.Create(context.Background(), &models.EvaluationCriterion{
		Text:             text,
		DiscountValue:    decimal.NewFromInt(value),
		ApplicableBrands: brands,
		Active:           active,
	})
	require.NoError(t, err)
	return row
}

func TestListForBrandMatching(t *testing.T) {
	repo := NewRepository(openCriteriaTestDB(t))
	ctx := context.Background()

	seedCriterion(t, repo, "Is the device water damaged?", "All", 50, true)
	seedCriterion(t, repo, "Was the battery replaced by a third party?", "Samsung,Apple", 30, true)
	seedCriterion(t, repo, "Is the IMEI blacklisted?", "Nokia", 80, true)
	seedCriterion(t, repo, "Retired question", "All", 10, false)

	samsung, err := repo.ListForBrand(ctx, "Samsung")
	require.NoError(t, err)
	require.Len(t, samsung, 2)
	assert.Equal(t, "Is the device water damaged?", samsung[0].Text)
	assert.Equal(t, "Was the battery replaced by a third party?", samsung[1].Text)

	// brand comparison is case-insensitive
	apple, err := repo.ListForBrand(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, apple, 2)

	google, err := repo.ListForBrand(ctx, "Google")
	require.NoError(t, err)
	require.Len(t, google, 1)
	assert.Equal(t, "All", google[0].ApplicableBrands)
}

func TestListForBrandExcludesInactive(t *testing.T) {
	repo := NewRepository(openCriteriaTestDB(t))

	seedCriterion(t, repo, "Retired question", "All", 10, false)

	rows, err := repo.ListForBrand(context.Background(), "Apple")
	require.NoError(t, err)
	assert.Empty(t, rows)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(openCriteriaTestDB(t))
	ctx := context.Background()

	row := seedCriterion(t, repo, "Is the device water damaged?", "All", 50, true)

	row.Text = "Does the device have water damage?"
	row.Active = false
	updated, err := repo.Update(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, "Does the device have water damage?", updated.Text)
	assert.False(t, updated.Active)

	require.NoError(t, repo.Delete(ctx, row.ID))
	assert.ErrorIs(t, repo.Delete(ctx, row.ID), gorm.ErrRecordNotFound)
}
