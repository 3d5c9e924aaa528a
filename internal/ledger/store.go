package ledger

import (
	"time"

	"despensa-backend/internal/models"

	"gorm.io/gorm"
)

// Kind tags a ledger entry with its originating transaction type.
type Kind string

const (
	KindSale     Kind = "venta"
	KindPurchase Kind = "compra"
	KindRestock  Kind = "reposicion"
)

// Line is one product/quantity/price entry to be recorded.
type Line struct {
	ProductCode int64
	Quantity    int64
	UnitPrice   float64
}

// RecordSale appends a sale header plus its detail rows on the caller's
// transaction handle and returns the assigned id. There is no update or
// delete counterpart: the ledger is append-only.
func RecordSale(tx *gorm.DB, at time.Time, lines []Line) (uint, error) {
	sale := models.Sale{Date: at}
	if err := tx.Create(&sale).Error; err != nil {
		return 0, err
	}
	for _, ln := range lines {
		detail := models.SaleLine{
			SaleID:      sale.ID,
			ProductCode: ln.ProductCode,
			Quantity:    ln.Quantity,
			UnitPrice:   ln.UnitPrice,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return 0, err
		}
	}
	return sale.ID, nil
}

func RecordPurchase(tx *gorm.DB, at time.Time, lines []Line) (uint, error) {
	purchase := models.Purchase{Date: at}
	if err := tx.Create(&purchase).Error; err != nil {
		return 0, err
	}
	for _, ln := range lines {
		detail := models.PurchaseLine{
			PurchaseID:  purchase.ID,
			ProductCode: ln.ProductCode,
			Quantity:    ln.Quantity,
			UnitPrice:   ln.UnitPrice,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return 0, err
		}
	}
	return purchase.ID, nil
}

func RecordRestock(tx *gorm.DB, at time.Time, lines []Line) (uint, error) {
	restock := models.Restock{Date: at}
	if err := tx.Create(&restock).Error; err != nil {
		return 0, err
	}
	for _, ln := range lines {
		detail := models.RestockLine{
			RestockID:   restock.ID,
			ProductCode: ln.ProductCode,
			Quantity:    ln.Quantity,
			UnitPrice:   ln.UnitPrice,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return 0, err
		}
	}
	return restock.ID, nil
}
