package catalog

import (
	"errors"
	"fmt"
	"strconv"

	"despensa-backend/internal/database"
	"despensa-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrDuplicateCode     = errors.New("product code already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func CreateProduct(p *models.Product) error {
	var existing models.Product
	err := database.DB.First(&existing, "cdb = ?", p.Code).Error
	if err == nil {
		return ErrDuplicateCode
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return database.DB.Create(p).Error
}

func GetProduct(code int64) (*models.Product, error) {
	var p models.Product
	if err := database.DB.First(&p, "cdb = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ProductUpdate carries optional field edits. Quantity is deliberately
// absent: stock only moves through AdjustQuantity.
type ProductUpdate struct {
	Name       *string
	Price      *float64
	Margin     *float64
	Threshold  *int64
	Perishable *bool
}

// UpdateProduct writes only the provided columns. cantidad is never part
// of the statement, so a stock movement committed by a concurrent sale or
// purchase is preserved.
func UpdateProduct(code int64, upd ProductUpdate) (*models.Product, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["nombre"] = *upd.Name
	}
	if upd.Price != nil {
		fields["precio"] = *upd.Price
	}
	if upd.Margin != nil {
		fields["margen"] = *upd.Margin
	}
	if upd.Threshold != nil {
		fields["umbral"] = *upd.Threshold
	}
	if upd.Perishable != nil {
		fields["perecedero"] = *upd.Perishable
	}
	if len(fields) == 0 {
		return GetProduct(code)
	}

	res := database.DB.Model(&models.Product{}).Where("cdb = ?", code).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetProduct(code)
}

func DeleteProduct(code int64) error {
	res := database.DB.Delete(&models.Product{}, "cdb = ?", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProducts returns the catalog ordered by name. A non-empty search
// matches the name or the barcode as text.
func ListProducts(search string) ([]models.Product, error) {
	dbq := database.DB.Model(&models.Product{})
	if search != "" {
		like := "%" + search + "%"
		if code, err := strconv.ParseInt(search, 10, 64); err == nil {
			dbq = dbq.Where("nombre LIKE ? OR cdb = ?", like, code)
		} else {
			dbq = dbq.Where("nombre LIKE ?", like)
		}
	}

	var products []models.Product
	if err := dbq.Order("nombre asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// AdjustQuantity applies a stock delta as a single guarded UPDATE so the
// quantity can never pass below zero. It runs on the caller's transaction
// handle; only the checkout flows call it.
func AdjustQuantity(tx *gorm.DB, code int64, delta int64) error {
	res := tx.Model(&models.Product{}).
		Where("cdb = ? AND cantidad + ? >= 0", code, delta).
		UpdateColumn("cantidad", gorm.Expr("cantidad + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Product{}).Where("cdb = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return fmt.Errorf("%w: product %d", ErrInsufficientStock, code)
	}
	return nil
}
