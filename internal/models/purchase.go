package models

import "time"

// Purchase is a ledger header row for goods bought into stock.
type Purchase struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"column:fecha;index;not null"`
}

func (Purchase) TableName() string { return "compra" }

type PurchaseLine struct {
	ID          uint    `gorm:"primaryKey"`
	PurchaseID  uint    `gorm:"column:compra;index;not null"`
	ProductCode int64   `gorm:"column:cdb;index;not null"`
	Quantity    int64   `gorm:"column:cantidad;not null"`
	UnitPrice   float64 `gorm:"column:precio_compra;not null"`
}

func (PurchaseLine) TableName() string { return "compra_detalle" }
