package models

// Product is one catalog entry. Code is the barcode (cdb) and is assigned
// by the caller, never autoincremented. Quantity must never go negative;
// all stock mutations go through catalog.AdjustQuantity.
type Product struct {
	Code       int64   `gorm:"column:cdb;primaryKey;autoIncrement:false"`
	Name       string  `gorm:"column:nombre;size:120;not null"`
	Price      float64 `gorm:"column:precio;not null;default:0"`
	Quantity   int64   `gorm:"column:cantidad;not null;default:0"`
	Margin     float64 `gorm:"column:margen;not null;default:0.2"`
	Threshold  int64   `gorm:"column:umbral;not null;default:0"`
	Perishable bool    `gorm:"column:perecedero;not null;default:false"`
}

func (Product) TableName() string { return "producto" }
