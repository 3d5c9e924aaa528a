package catalog

import (
	"errors"
	"strconv"
	"strings"

	"despensa-backend/internal/format"
	"despensa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	Code         int64   `json:"cdb"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"` // tax included, formatted
	Quantity     int64   `json:"quantity"`
	Margin       float64 `json:"margin"`
	Threshold    int64   `json:"threshold"`
	Perishable   bool    `json:"perishable"`
}

type CreateProductRequest struct {
	Code       int64    `json:"cdb"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	Quantity   int64    `json:"quantity"`
	Margin     *float64 `json:"margin"`
	Threshold  int64    `json:"threshold"`
	Perishable bool     `json:"perishable"`
}

type UpdateProductRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price"`
	Margin     *float64 `json:"margin"`
	Threshold  *int64   `json:"threshold"`
	Perishable *bool    `json:"perishable"`
}

func toResponse(p models.Product, fmtr format.Formatter) ProductResponse {
	return ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: fmtr.Amount(fmtr.PriceWithTax(p.Price)),
		Quantity:     p.Quantity,
		Margin:       p.Margin,
		Threshold:    p.Threshold,
		Perishable:   p.Perishable,
	}
}

// GET /api/products?q=texto (any authenticated user)
func ListProductsHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := ListProducts(strings.TrimSpace(c.Query("q")))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toResponse(p, fmtr))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:cdb
func GetProductHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := parseCode(c)
		if err != nil {
			return err
		}
		p, err := GetProduct(code)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not load product")
		}
		return c.JSON(toResponse(*p, fmtr))
	}
}

// POST /api/admin/products (admin only)
func CreateProductHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Code <= 0 || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "cdb and name are required")
		}
		if body.Price < 0 || body.Quantity < 0 || body.Threshold < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price, quantity and threshold must not be negative")
		}

		margin := 0.2
		if body.Margin != nil {
			margin = *body.Margin
		}

		p := models.Product{
			Code:       body.Code,
			Name:       body.Name,
			Price:      body.Price,
			Quantity:   body.Quantity,
			Margin:     margin,
			Threshold:  body.Threshold,
			Perishable: body.Perishable,
		}

		if err := CreateProduct(&p); err != nil {
			if errors.Is(err, ErrDuplicateCode) {
				return fiber.NewError(fiber.StatusBadRequest, "this product code is already used")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(p, fmtr))
	}
}

// PUT /api/admin/products/:cdb
func UpdateProductHandler(fmtr format.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := parseCode(c)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name must not be empty")
		}
		if body.Price != nil && *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
		}

		p, err := UpdateProduct(code, ProductUpdate{
			Name:       body.Name,
			Price:      body.Price,
			Margin:     body.Margin,
			Threshold:  body.Threshold,
			Perishable: body.Perishable,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		return c.JSON(toResponse(*p, fmtr))
	}
}

// DELETE /api/admin/products/:cdb
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := parseCode(c)
		if err != nil {
			return err
		}
		if err := DeleteProduct(code); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseCode(c *fiber.Ctx) (int64, error) {
	code, err := strconv.ParseInt(c.Params("cdb"), 10, 64)
	if err != nil || code <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid product code")
	}
	return code, nil
}
