package expiration

import (
	"path/filepath"
	"testing"
	"time"

	"despensa-backend/internal/database"
	"despensa-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	database.DB = db
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAddBatch(t *testing.T) {
	setupDB(t)

	batch, err := AddBatch(1002, 3, date(2026, 9, 2))
	require.NoError(t, err)
	require.NotZero(t, batch.ID)

	_, err = AddBatch(1002, 0, nil)
	require.ErrorIs(t, err, ErrInvalidBatch)

	_, err = AddBatch(0, 1, nil)
	require.ErrorIs(t, err, ErrInvalidBatch)
}

func TestListBatchesOrderedByExpiry(t *testing.T) {
	setupDB(t)

	_, err := AddBatch(1004, 5, date(2026, 8, 30))
	require.NoError(t, err)
	_, err = AddBatch(1002, 3, date(2026, 8, 25))
	require.NoError(t, err)
	_, err = AddBatch(1006, 1, nil) // no date sorts last
	require.NoError(t, err)

	batches, err := ListBatches()
	require.NoError(t, err)
	require.Len(t, batches, 3)
	require.EqualValues(t, 1002, batches[0].ProductCode)
	require.EqualValues(t, 1004, batches[1].ProductCode)
	require.Nil(t, batches[2].ExpiresAt)
}

func TestPurgeExpiredStrictBoundary(t *testing.T) {
	setupDB(t)

	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	_, err := AddBatch(1001, 1, date(2026, 8, 27)) // strictly before: purged
	require.NoError(t, err)
	_, err = AddBatch(1002, 2, date(2026, 8, 28)) // equal: kept
	require.NoError(t, err)
	_, err = AddBatch(1003, 3, date(2026, 8, 29)) // after: kept
	require.NoError(t, err)
	_, err = AddBatch(1004, 4, nil) // no date: kept
	require.NoError(t, err)

	purged, err := PurgeExpired(asOf)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	var remaining []models.ExpirationBatch
	require.NoError(t, database.DB.Find(&remaining).Error)
	require.Len(t, remaining, 3)
	for _, b := range remaining {
		require.NotEqualValues(t, 1001, b.ProductCode)
	}
}

func TestPurgeExpiredDefaultCutoffKeepsToday(t *testing.T) {
	setupDB(t)

	today := Today()
	yesterday := today.AddDate(0, 0, -1)

	_, err := AddBatch(1002, 2, &today)
	require.NoError(t, err)
	_, err = AddBatch(1001, 1, &yesterday)
	require.NoError(t, err)

	purged, err := PurgeExpired(Today())
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	batches, err := ListBatches()
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.EqualValues(t, 1002, batches[0].ProductCode)
}

func TestDeleteBatch(t *testing.T) {
	setupDB(t)

	batch, err := AddBatch(1002, 3, date(2026, 9, 2))
	require.NoError(t, err)

	require.NoError(t, DeleteBatch(batch.ID))
	require.Error(t, DeleteBatch(batch.ID))
}
