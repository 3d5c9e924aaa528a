package cashbox

import (
	"errors"

	"despensa-backend/internal/database"
	"despensa-backend/internal/models"

	"gorm.io/gorm"
)

var ErrRegisterMissing = errors.New("cash register row missing")

func Total() (float64, error) {
	var reg models.CashRegister
	if err := database.DB.First(&reg, models.CashRegisterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRegisterMissing
		}
		return 0, err
	}
	return reg.Total, nil
}

// ApplyDelta adds delta to the running total on the caller's transaction
// handle. The total is signed and may go negative.
func ApplyDelta(tx *gorm.DB, delta float64) error {
	res := tx.Model(&models.CashRegister{}).
		Where("id = ?", models.CashRegisterID).
		UpdateColumn("total", gorm.Expr("total + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRegisterMissing
	}
	return nil
}

// Adjust is the manual top-up/withdraw operation. It is intentionally not
// written to the ledger; only sales/purchases/restocks produce ledger rows.
func Adjust(delta float64) (float64, error) {
	if err := ApplyDelta(database.DB, delta); err != nil {
		return 0, err
	}
	return Total()
}

// SetTotal overwrites the running total (manual correction).
func SetTotal(value float64) error {
	res := database.DB.Model(&models.CashRegister{}).
		Where("id = ?", models.CashRegisterID).
		UpdateColumn("total", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRegisterMissing
	}
	return nil
}
