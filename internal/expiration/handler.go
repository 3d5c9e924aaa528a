package expiration

import (
	"errors"
	"strconv"
	"time"

	"despensa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddBatchRequest struct {
	Code      int64   `json:"cdb"`
	Quantity  int64   `json:"quantity"`
	ExpiresAt *string `json:"expires_at"` // "2026-09-30", optional
}

type BatchResponse struct {
	ID        uint    `json:"id"`
	Code      int64   `json:"cdb"`
	Quantity  int64   `json:"quantity"`
	ExpiresAt *string `json:"expires_at"`
}

func toResponse(b models.ExpirationBatch) BatchResponse {
	res := BatchResponse{ID: b.ID, Code: b.ProductCode, Quantity: b.Quantity}
	if b.ExpiresAt != nil {
		s := b.ExpiresAt.Format("2006-01-02")
		res.ExpiresAt = &s
	}
	return res
}

// GET /api/expirations
func ListBatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batches, err := ListBatches()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list expiration batches")
		}
		res := make([]BatchResponse, 0, len(batches))
		for _, b := range batches {
			res = append(res, toResponse(b))
		}
		return c.JSON(res)
	}
}

// POST /api/expirations
func AddBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddBatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var expiresAt *time.Time
		if body.ExpiresAt != nil && *body.ExpiresAt != "" {
			t, err := time.Parse("2006-01-02", *body.ExpiresAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid expiry date, expected YYYY-MM-DD")
			}
			expiresAt = &t
		}

		batch, err := AddBatch(body.Code, body.Quantity, expiresAt)
		if err != nil {
			if errors.Is(err, ErrInvalidBatch) {
				return fiber.NewError(fiber.StatusBadRequest, "cdb and a positive quantity are required")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not add expiration batch")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*batch))
	}
}

// DELETE /api/expirations/:id
func DeleteBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid batch id")
		}
		if err := DeleteBatch(uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "batch not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete batch")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/expirations/expired?as_of=2026-08-28 (defaults to today)
func PurgeExpiredHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		asOf := Today()
		if v := c.Query("as_of"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid as_of date, expected YYYY-MM-DD")
			}
			asOf = t
		}

		purged, err := PurgeExpired(asOf)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not purge expired batches")
		}
		return c.JSON(fiber.Map{"purged": purged})
	}
}
