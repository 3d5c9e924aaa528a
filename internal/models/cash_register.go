package models

// CashRegisterID is the fixed id of the single dinero row.
const CashRegisterID = 1

// CashRegister is the single running cash-on-hand total. Total is signed
// and may go negative (unexpected deficits are recorded, not prevented).
type CashRegister struct {
	ID    uint    `gorm:"primaryKey"`
	Total float64 `gorm:"column:total;not null;default:0"`
}

func (CashRegister) TableName() string { return "dinero" }
