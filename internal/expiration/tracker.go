package expiration

import (
	"errors"
	"time"

	"despensa-backend/internal/database"
	"despensa-backend/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidBatch = errors.New("invalid expiration batch")

// RegisterBatch inserts a batch on the caller's transaction handle; the
// checkout purchase flow uses it for perishable lines.
func RegisterBatch(tx *gorm.DB, code int64, quantity int64, expiresAt *time.Time) error {
	if quantity < 1 {
		return ErrInvalidBatch
	}
	batch := models.ExpirationBatch{ProductCode: code, Quantity: quantity, ExpiresAt: expiresAt}
	return tx.Create(&batch).Error
}

// AddBatch registers a batch manually, outside any transaction flow.
func AddBatch(code int64, quantity int64, expiresAt *time.Time) (*models.ExpirationBatch, error) {
	if code <= 0 || quantity < 1 {
		return nil, ErrInvalidBatch
	}
	batch := models.ExpirationBatch{ProductCode: code, Quantity: quantity, ExpiresAt: expiresAt}
	if err := database.DB.Create(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListBatches returns all batches ordered by expiry ascending; batches
// without a date sort last.
func ListBatches() ([]models.ExpirationBatch, error) {
	var batches []models.ExpirationBatch
	err := database.DB.
		Order("fecha_vencimiento IS NULL, fecha_vencimiento asc").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

func DeleteBatch(id uint) error {
	res := database.DB.Delete(&models.ExpirationBatch{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Today is midnight of the current date, the default purge cutoff.
// Batches expiring today are not strictly before it and survive.
func Today() time.Time {
	t, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	return t
}

// PurgeExpired deletes every batch whose expiry date is strictly before
// asOf and reports how many were removed. Batches with no date stay.
func PurgeExpired(asOf time.Time) (int64, error) {
	res := database.DB.
		Where("fecha_vencimiento IS NOT NULL AND fecha_vencimiento < ?", asOf).
		Delete(&models.ExpirationBatch{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
