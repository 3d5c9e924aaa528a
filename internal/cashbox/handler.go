package cashbox

import (
	"despensa-backend/internal/format"

	"github.com/gofiber/fiber/v2"
)

type AdjustRequest struct {
	Delta float64 `json:"delta"`
}

type SetTotalRequest struct {
	Total float64 `json:"total"`
}

type TotalResponse struct {
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

// GET /api/cash
func GetTotalHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := Total()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not read cash register")
		}
		return c.JSON(TotalResponse{Total: total, TotalDisplay: fmtr.Amount(total)})
	}
}

// POST /api/cash/adjust
func AdjustHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdjustRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "delta must not be zero")
		}

		total, err := Adjust(body.Delta)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not adjust cash register")
		}
		return c.JSON(TotalResponse{Total: total, TotalDisplay: fmtr.Amount(total)})
	}
}

// PUT /api/admin/cash (admin only, manual correction)
func SetTotalHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetTotalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := SetTotal(body.Total); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not set cash register total")
		}
		return c.JSON(TotalResponse{Total: body.Total, TotalDisplay: fmtr.Amount(body.Total)})
	}
}
