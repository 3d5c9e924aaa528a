package checkout

import (
	"errors"
	"time"

	"despensa-backend/internal/catalog"

	"github.com/gofiber/fiber/v2"
)

type LineItemRequest struct {
	Code      int64   `json:"cdb"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // 0 = current catalog price
	ExpiresAt *string `json:"expires_at"` // purchases only, "2026-09-30"
}

type TransactionRequest struct {
	Lines []LineItemRequest `json:"lines"`
}

func (r TransactionRequest) toLines() ([]LineItem, error) {
	lines := make([]LineItem, 0, len(r.Lines))
	for _, ln := range r.Lines {
		item := LineItem{ProductCode: ln.Code, Quantity: ln.Quantity, UnitPrice: ln.UnitPrice}
		if ln.ExpiresAt != nil && *ln.ExpiresAt != "" {
			t, err := time.Parse("2006-01-02", *ln.ExpiresAt)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "invalid expiry date, expected YYYY-MM-DD")
			}
			item.ExpiresAt = &t
		}
		lines = append(lines, item)
	}
	return lines, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidLineItem):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownProduct):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "transaction failed")
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		lines, err := body.toLines()
		if err != nil {
			return err
		}

		id, err := ExecuteSale(lines)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}

// POST /api/purchases
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		lines, err := body.toLines()
		if err != nil {
			return err
		}

		id, err := ExecutePurchase(lines)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}

// POST /api/restocks
func CreateRestockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		lines, err := body.toLines()
		if err != nil {
			return err
		}

		id, err := ExecuteRestock(lines)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}
