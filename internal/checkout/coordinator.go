// Package checkout coordinates sales, purchases and manual restocks:
// stock movement, ledger rows and the cash register update commit as one
// database transaction or not at all.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"despensa-backend/internal/cashbox"
	"despensa-backend/internal/catalog"
	"despensa-backend/internal/database"
	"despensa-backend/internal/expiration"
	"despensa-backend/internal/ledger"
	"despensa-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidLineItem   = errors.New("invalid line item")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrTransactionFailed = errors.New("transaction failed")
)

// LineItem is one cart entry. A zero UnitPrice means "charge the current
// catalog price"; the resolved price is what lands in the ledger, so later
// catalog edits never change recorded history. ExpiresAt is only honored
// by purchases of perishable products.
type LineItem struct {
	ProductCode int64
	Quantity    int64
	UnitPrice   float64
	ExpiresAt   *time.Time
}

func validateLines(lines []LineItem) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: empty cart", ErrInvalidLineItem)
	}
	for _, ln := range lines {
		if ln.Quantity < 1 {
			return fmt.Errorf("%w: quantity %d for product %d", ErrInvalidLineItem, ln.Quantity, ln.ProductCode)
		}
		if ln.UnitPrice < 0 {
			return fmt.Errorf("%w: negative unit price for product %d", ErrInvalidLineItem, ln.ProductCode)
		}
	}
	return nil
}

func loadProduct(tx *gorm.DB, code int64) (*models.Product, error) {
	var p models.Product
	if err := tx.First(&p, "cdb = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, code)
		}
		return nil, err
	}
	return &p, nil
}

// Domain errors reach the caller as-is; anything else is a storage fault.
func wrapFailure(err error) error {
	if errors.Is(err, ErrInvalidLineItem) ||
		errors.Is(err, ErrUnknownProduct) ||
		errors.Is(err, catalog.ErrInsufficientStock) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}

// ExecuteSale decrements stock, records the sale with per-line prices and
// adds the sale total to the cash register, all in one transaction. If any
// line lacks stock the whole sale fails and nothing changes.
func ExecuteSale(lines []LineItem) (uint, error) {
	if err := validateLines(lines); err != nil {
		return 0, err
	}

	var saleID uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		recorded := make([]ledger.Line, 0, len(lines))

		for _, ln := range lines {
			p, err := loadProduct(tx, ln.ProductCode)
			if err != nil {
				return err
			}
			price := ln.UnitPrice
			if price == 0 {
				price = p.Price
			}
			if err := catalog.AdjustQuantity(tx, ln.ProductCode, -ln.Quantity); err != nil {
				return err
			}
			recorded = append(recorded, ledger.Line{ProductCode: ln.ProductCode, Quantity: ln.Quantity, UnitPrice: price})
			total += float64(ln.Quantity) * price
		}

		id, err := ledger.RecordSale(tx, time.Now(), recorded)
		if err != nil {
			return err
		}
		if err := cashbox.ApplyDelta(tx, total); err != nil {
			return err
		}

		saleID = id
		return nil
	})
	if err != nil {
		return 0, wrapFailure(err)
	}
	return saleID, nil
}

// ExecutePurchase increments stock, records the purchase and subtracts the
// purchase total from the cash register. Perishable lines carrying an
// expiry date also register an expiration batch. The catalog price is
// never overwritten by a purchase.
func ExecutePurchase(lines []LineItem) (uint, error) {
	return executeInbound(lines, true)
}

// ExecuteRestock is the manual restock flow: identical stock and cash
// effects to a purchase, recorded in its own ledger, never registering
// expiration batches.
func ExecuteRestock(lines []LineItem) (uint, error) {
	return executeInbound(lines, false)
}

func executeInbound(lines []LineItem, registerExpiry bool) (uint, error) {
	if err := validateLines(lines); err != nil {
		return 0, err
	}

	var txID uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		recorded := make([]ledger.Line, 0, len(lines))

		for _, ln := range lines {
			p, err := loadProduct(tx, ln.ProductCode)
			if err != nil {
				return err
			}
			price := ln.UnitPrice
			if price == 0 {
				price = p.Price
			}
			if err := catalog.AdjustQuantity(tx, ln.ProductCode, ln.Quantity); err != nil {
				return err
			}
			if registerExpiry && p.Perishable && ln.ExpiresAt != nil {
				if err := expiration.RegisterBatch(tx, ln.ProductCode, ln.Quantity, ln.ExpiresAt); err != nil {
					return err
				}
			}
			recorded = append(recorded, ledger.Line{ProductCode: ln.ProductCode, Quantity: ln.Quantity, UnitPrice: price})
			total += float64(ln.Quantity) * price
		}

		var id uint
		var err error
		if registerExpiry {
			id, err = ledger.RecordPurchase(tx, time.Now(), recorded)
		} else {
			id, err = ledger.RecordRestock(tx, time.Now(), recorded)
		}
		if err != nil {
			return err
		}
		if err := cashbox.ApplyDelta(tx, -total); err != nil {
			return err
		}

		txID = id
		return nil
	})
	if err != nil {
		return 0, wrapFailure(err)
	}
	return txID, nil
}
