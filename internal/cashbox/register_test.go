package cashbox

import (
	"path/filepath"
	"testing"

	"despensa-backend/internal/database"

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

func TestTotalStartsAtZero(t *testing.T) {
	setupDB(t)

	total, err := Total()
	require.NoError(t, err)
	require.InDelta(t, 0.0, total, 1e-9)
}

func TestAdjust(t *testing.T) {
	setupDB(t)

	total, err := Adjust(500)
	require.NoError(t, err)
	require.InDelta(t, 500.0, total, 1e-9)

	total, err = Adjust(-200)
	require.NoError(t, err)
	require.InDelta(t, 300.0, total, 1e-9)
}

func TestAdjustMayGoNegative(t *testing.T) {
	setupDB(t)

	total, err := Adjust(-75.5)
	require.NoError(t, err)
	require.InDelta(t, -75.5, total, 1e-9)
}

func TestSetTotal(t *testing.T) {
	setupDB(t)

	require.NoError(t, SetTotal(1234.56))
	total, err := Total()
	require.NoError(t, err)
	require.InDelta(t, 1234.56, total, 1e-9)
}
