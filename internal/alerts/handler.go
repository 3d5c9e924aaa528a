package alerts

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type LowStockItem struct {
	Code      int64  `json:"cdb"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Threshold int64  `json:"threshold"`
}

type NearExpiryItem struct {
	Code        int64   `json:"cdb"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	ExpiresAt   *string `json:"expires_at"`
}

// GET /api/alerts/low-stock
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := LowStock()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not evaluate low stock alerts")
		}

		res := make([]LowStockItem, 0, len(products))
		for _, p := range products {
			res = append(res, LowStockItem{Code: p.Code, Name: p.Name, Quantity: p.Quantity, Threshold: p.Threshold})
		}
		return c.JSON(res)
	}
}

// GET /api/alerts/near-expiry?days=7
func NearExpiryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := 7
		if v := c.Query("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "days must be a non-negative integer")
			}
			days = n
		}

		alerts, err := NearExpiry(days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not evaluate expiry alerts")
		}

		res := make([]NearExpiryItem, 0, len(alerts))
		for _, a := range alerts {
			item := NearExpiryItem{
				Code:        a.Batch.ProductCode,
				ProductName: a.ProductName,
				Quantity:    a.Batch.Quantity,
			}
			if a.Batch.ExpiresAt != nil {
				s := a.Batch.ExpiresAt.Format("2006-01-02")
				item.ExpiresAt = &s
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}
