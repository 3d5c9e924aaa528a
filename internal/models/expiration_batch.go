package models

import "time"

// ExpirationBatch tracks a quantity of a perishable product with its
// expiry date. Batches are informational: they never change the catalog
// quantity themselves.
type ExpirationBatch struct {
	ID          uint       `gorm:"primaryKey"`
	ProductCode int64      `gorm:"column:cdb;index;not null"`
	Quantity    int64      `gorm:"column:cantidad;not null"`
	ExpiresAt   *time.Time `gorm:"column:fecha_vencimiento;index"`
}

func (ExpirationBatch) TableName() string { return "vencimientos" }
