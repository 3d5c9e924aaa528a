package checkout

import (
	"path/filepath"
	"testing"
	"time"

	"despensa-backend/internal/cashbox"
	"despensa-backend/internal/catalog"
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

func seedProduct(t *testing.T, p models.Product) {
	t.Helper()
	require.NoError(t, database.DB.Create(&p).Error)
}

func productQuantity(t *testing.T, code int64) int64 {
	t.Helper()
	var p models.Product
	require.NoError(t, database.DB.First(&p, "cdb = ?", code).Error)
	return p.Quantity
}

func cashTotal(t *testing.T) float64 {
	t.Helper()
	total, err := cashbox.Total()
	require.NoError(t, err)
	return total
}

func TestExecuteSale(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café Molido 250g", Price: 1200, Quantity: 10, Threshold: 2})

	id, err := ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: 3, UnitPrice: 1200}})
	require.NoError(t, err)
	require.NotZero(t, id)

	require.EqualValues(t, 7, productQuantity(t, 1001))
	require.InDelta(t, 3600.0, cashTotal(t), 1e-9)

	var lines []models.SaleLine
	require.NoError(t, database.DB.Where("venta = ?", id).Find(&lines).Error)
	require.Len(t, lines, 1)
	require.EqualValues(t, 1001, lines[0].ProductCode)
	require.EqualValues(t, 3, lines[0].Quantity)
	require.InDelta(t, 1200.0, lines[0].UnitPrice, 1e-9)
}

func TestExecuteSaleInsufficientStock(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café Molido 250g", Price: 1200, Quantity: 7, Threshold: 2})

	_, err := ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: 20, UnitPrice: 1200}})
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)

	// nothing changed anywhere
	require.EqualValues(t, 7, productQuantity(t, 1001))
	require.InDelta(t, 0.0, cashTotal(t), 1e-9)
	var saleCount, lineCount int64
	require.NoError(t, database.DB.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, database.DB.Model(&models.SaleLine{}).Count(&lineCount).Error)
	require.Zero(t, saleCount)
	require.Zero(t, lineCount)
}

func TestExecuteSaleMultiLineAtomicity(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café", Price: 1200, Quantity: 10})
	seedProduct(t, models.Product{Code: 1003, Name: "Arroz", Price: 320, Quantity: 3})

	// second line exceeds stock: first line's decrement must roll back
	_, err := ExecuteSale([]LineItem{
		{ProductCode: 1001, Quantity: 2, UnitPrice: 1200},
		{ProductCode: 1003, Quantity: 5, UnitPrice: 320},
	})
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)

	require.EqualValues(t, 10, productQuantity(t, 1001))
	require.EqualValues(t, 3, productQuantity(t, 1003))
	require.InDelta(t, 0.0, cashTotal(t), 1e-9)
}

func TestExecuteSaleUnknownProduct(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café", Price: 1200, Quantity: 10})

	_, err := ExecuteSale([]LineItem{
		{ProductCode: 1001, Quantity: 1, UnitPrice: 1200},
		{ProductCode: 9999, Quantity: 1, UnitPrice: 50},
	})
	require.ErrorIs(t, err, ErrUnknownProduct)
	require.EqualValues(t, 10, productQuantity(t, 1001))
}

func TestExecuteSaleInvalidLines(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café", Price: 1200, Quantity: 10})

	_, err := ExecuteSale(nil)
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: 0, UnitPrice: 1200}})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: -2, UnitPrice: 1200}})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: 1, UnitPrice: -5}})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	require.EqualValues(t, 10, productQuantity(t, 1001))
}

func TestExecuteSaleCatalogPriceFallback(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1002, Name: "Leche 1L", Price: 220, Quantity: 8})

	id, err := ExecuteSale([]LineItem{{ProductCode: 1002, Quantity: 2}})
	require.NoError(t, err)

	var line models.SaleLine
	require.NoError(t, database.DB.First(&line, "venta = ?", id).Error)
	require.InDelta(t, 220.0, line.UnitPrice, 1e-9)
	require.InDelta(t, 440.0, cashTotal(t), 1e-9)
}

func TestExecutePurchase(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1003, Name: "Arroz 1kg", Price: 320, Quantity: 3, Threshold: 5})

	id, err := ExecutePurchase([]LineItem{{ProductCode: 1003, Quantity: 5, UnitPrice: 300}})
	require.NoError(t, err)

	require.EqualValues(t, 8, productQuantity(t, 1003))
	require.InDelta(t, -1500.0, cashTotal(t), 1e-9)

	var lines []models.PurchaseLine
	require.NoError(t, database.DB.Where("compra = ?", id).Find(&lines).Error)
	require.Len(t, lines, 1)
	require.InDelta(t, 300.0, lines[0].UnitPrice, 1e-9)

	// product not perishable, no batch registered
	var batchCount int64
	require.NoError(t, database.DB.Model(&models.ExpirationBatch{}).Count(&batchCount).Error)
	require.Zero(t, batchCount)
}

func TestExecutePurchasePerishableRegistersBatch(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1002, Name: "Leche 1L", Price: 220, Quantity: 8, Perishable: true})

	expiry := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	_, err := ExecutePurchase([]LineItem{{ProductCode: 1002, Quantity: 6, UnitPrice: 180, ExpiresAt: &expiry}})
	require.NoError(t, err)

	var batches []models.ExpirationBatch
	require.NoError(t, database.DB.Find(&batches).Error)
	require.Len(t, batches, 1)
	require.EqualValues(t, 1002, batches[0].ProductCode)
	require.EqualValues(t, 6, batches[0].Quantity)
	require.NotNil(t, batches[0].ExpiresAt)
	require.True(t, batches[0].ExpiresAt.Equal(expiry))
}

func TestExecutePurchaseWithoutExpiryNoBatch(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1002, Name: "Leche 1L", Price: 220, Quantity: 8, Perishable: true})

	_, err := ExecutePurchase([]LineItem{{ProductCode: 1002, Quantity: 6, UnitPrice: 180}})
	require.NoError(t, err)

	var batchCount int64
	require.NoError(t, database.DB.Model(&models.ExpirationBatch{}).Count(&batchCount).Error)
	require.Zero(t, batchCount)
}

func TestExecutePurchaseKeepsCatalogPrice(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1003, Name: "Arroz 1kg", Price: 320, Quantity: 3})

	_, err := ExecutePurchase([]LineItem{{ProductCode: 1003, Quantity: 5, UnitPrice: 250}})
	require.NoError(t, err)

	var p models.Product
	require.NoError(t, database.DB.First(&p, "cdb = ?", 1003).Error)
	require.InDelta(t, 320.0, p.Price, 1e-9)
}

func TestExecuteRestock(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1004, Name: "Pan Familiar", Price: 150, Quantity: 20, Perishable: true})

	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	id, err := ExecuteRestock([]LineItem{{ProductCode: 1004, Quantity: 10, UnitPrice: 100, ExpiresAt: &expiry}})
	require.NoError(t, err)

	require.EqualValues(t, 30, productQuantity(t, 1004))
	require.InDelta(t, -1000.0, cashTotal(t), 1e-9)

	var lines []models.RestockLine
	require.NoError(t, database.DB.Where("reposicion = ?", id).Find(&lines).Error)
	require.Len(t, lines, 1)

	// restocks never register expiration batches
	var batchCount int64
	require.NoError(t, database.DB.Model(&models.ExpirationBatch{}).Count(&batchCount).Error)
	require.Zero(t, batchCount)
}

func TestSaleThenPurchaseCashConservation(t *testing.T) {
	setupDB(t)
	seedProduct(t, models.Product{Code: 1001, Name: "Café", Price: 1200, Quantity: 10})
	seedProduct(t, models.Product{Code: 1003, Name: "Arroz", Price: 320, Quantity: 3})

	_, err := ExecuteSale([]LineItem{{ProductCode: 1001, Quantity: 3, UnitPrice: 1200}})
	require.NoError(t, err)
	_, err = ExecutePurchase([]LineItem{{ProductCode: 1003, Quantity: 5, UnitPrice: 300}})
	require.NoError(t, err)

	require.InDelta(t, 3600.0-1500.0, cashTotal(t), 1e-9)
}
