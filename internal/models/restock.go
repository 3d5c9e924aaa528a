package models

import "time"

// Restock is a manual restock ledger header. Same stock/cash effect as a
// purchase but never registers expiration batches.
type Restock struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"column:fecha;index;not null"`
}

func (Restock) TableName() string { return "reposicion" }

type RestockLine struct {
	ID          uint    `gorm:"primaryKey"`
	RestockID   uint    `gorm:"column:reposicion;index;not null"`
	ProductCode int64   `gorm:"column:cdb;index;not null"`
	Quantity    int64   `gorm:"column:cantidad;not null"`
	UnitPrice   float64 `gorm:"column:precio_compra;not null"`
}

func (RestockLine) TableName() string { return "reposicion_detalle" }
