package ledger

import (
	"strconv"
	"strings"
	"time"

	"despensa-backend/internal/format"

	"github.com/gofiber/fiber/v2"
)

type EntryResponse struct {
	Kind          Kind    `json:"kind"`
	TransactionID uint    `json:"transaction_id"`
	Date          string  `json:"date"`
	ProductCode   int64   `json:"cdb"`
	ProductName   string  `json:"product_name"`
	Quantity      int64   `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	LineTotal     float64 `json:"line_total"`
	TotalDisplay  string  `json:"total_display"`
}

// GET /api/reports/ledger?from=2026-01-01&to=2026-02-01&cdb=1001&q=cafe&kind=venta
func ReportHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter Filter

		if v := c.Query("from"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid 'from' date, expected YYYY-MM-DD")
			}
			filter.From = &t
		}
		if v := c.Query("to"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid 'to' date, expected YYYY-MM-DD")
			}
			filter.To = &t
		}
		if v := c.Query("cdb"); v != "" {
			code, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid product code")
			}
			filter.ProductCode = &code
		}
		filter.Search = strings.TrimSpace(c.Query("q"))
		switch kind := Kind(c.Query("kind")); kind {
		case "", KindSale, KindPurchase, KindRestock:
			filter.Kind = kind
		default:
			return fiber.NewError(fiber.StatusBadRequest, "kind must be venta, compra or reposicion")
		}

		it := Query(filter)
		defer it.Close()

		res := make([]EntryResponse, 0, 64)
		for it.Next() {
			e := it.Entry()
			res = append(res, EntryResponse{
				Kind:          e.Kind,
				TransactionID: e.TransactionID,
				Date:          fmtr.Date(e.Date),
				ProductCode:   e.ProductCode,
				ProductName:   e.ProductName,
				Quantity:      e.Quantity,
				UnitPrice:     e.UnitPrice,
				LineTotal:     e.LineTotal(),
				TotalDisplay:  fmtr.Amount(e.LineTotal()),
			})
		}
		if err := it.Err(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not query ledger")
		}

		return c.JSON(res)
	}
}
