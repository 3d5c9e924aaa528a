package models

import "time"

// Sale is a ledger header row. Sales are append-only: once created they
// are never updated or deleted.
type Sale struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"column:fecha;index;not null"`
}

func (Sale) TableName() string { return "venta" }

// SaleLine records one product at the unit price charged at sale time.
// Later catalog price edits never touch these rows.
type SaleLine struct {
	ID          uint    `gorm:"primaryKey"`
	SaleID      uint    `gorm:"column:venta;index;not null"`
	ProductCode int64   `gorm:"column:cdb;index;not null"`
	Quantity    int64   `gorm:"column:cantidad;not null"`
	UnitPrice   float64 `gorm:"column:precio_venta;not null"`
}

func (SaleLine) TableName() string { return "venta_detalle" }
