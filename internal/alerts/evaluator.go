// Package alerts derives low-stock and near-expiry notifications. Every
// call recomputes from the current tables; nothing is cached or mutated.
package alerts

import (
	"time"

	"despensa-backend/internal/database"
	"despensa-backend/internal/models"
)

// LowStock returns products whose quantity is at or below their reorder
// threshold, ordered by name.
func LowStock() ([]models.Product, error) {
	var products []models.Product
	err := database.DB.
		Where("cantidad <= umbral").
		Order("nombre asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ExpiryAlert is a batch expiring soon, joined with the product name for
// display. Already-expired batches are included.
type ExpiryAlert struct {
	Batch       models.ExpirationBatch
	ProductName string
}

// NearExpiry returns batches whose expiry date falls within the next
// withinDays days (inclusive), ordered soonest first. Batches without a
// date are never reported.
func NearExpiry(withinDays int) ([]ExpiryAlert, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)

	var batches []models.ExpirationBatch
	err := database.DB.
		Where("fecha_vencimiento IS NOT NULL AND fecha_vencimiento <= ?", cutoff).
		Order("fecha_vencimiento asc").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, nil
	}

	codes := make([]int64, 0, len(batches))
	for _, b := range batches {
		codes = append(codes, b.ProductCode)
	}
	var products []models.Product
	if err := database.DB.Where("cdb IN ?", codes).Find(&products).Error; err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.Code] = p.Name
	}

	res := make([]ExpiryAlert, 0, len(batches))
	for _, b := range batches {
		res = append(res, ExpiryAlert{Batch: b, ProductName: names[b.ProductCode]})
	}
	return res, nil
}
