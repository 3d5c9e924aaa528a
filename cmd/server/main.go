package main

import (
	"log"
	"strings"

	"despensa-backend/internal/alerts"
	"despensa-backend/internal/auth"
	"despensa-backend/internal/cashbox"
	"despensa-backend/internal/catalog"
	"despensa-backend/internal/checkout"
	"despensa-backend/internal/config"
	"despensa-backend/internal/database"
	"despensa-backend/internal/expiration"
	"despensa-backend/internal/format"
	"despensa-backend/internal/ledger"
	"despensa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	database.Init(cfg)

	prefs, err := config.LoadPreferences(cfg.PreferencesPath)
	if err != nil {
		log.Fatalf("invalid preferences: %v", err)
	}
	fmtr := format.New(prefs)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", auth.RegisterUserHandler())

	// Catalog maintenance
	adminRoutes.Post("/products", catalog.CreateProductHandler(fmtr))
	adminRoutes.Put("/products/:cdb", catalog.UpdateProductHandler(fmtr))
	adminRoutes.Delete("/products/:cdb", catalog.DeleteProductHandler())

	// Manual cash correction
	adminRoutes.Put("/cash", cashbox.SetTotalHandler(fmtr))

	// Catalog
	protected.Get("/products", catalog.ListProductsHandler(fmtr))
	protected.Get("/products/:cdb", catalog.GetProductHandler(fmtr))

	// Sales / purchases / manual restocks
	protected.Post("/sales", checkout.CreateSaleHandler())
	protected.Post("/purchases", checkout.CreatePurchaseHandler())
	protected.Post("/restocks", checkout.CreateRestockHandler())

	// Cash register
	protected.Get("/cash", cashbox.GetTotalHandler(fmtr))
	protected.Post("/cash/adjust", cashbox.AdjustHandler(fmtr))

	// Expiration batches
	protected.Get("/expirations", expiration.ListBatchesHandler())
	protected.Post("/expirations", expiration.AddBatchHandler())
	protected.Delete("/expirations/expired", expiration.PurgeExpiredHandler())
	protected.Delete("/expirations/:id", expiration.DeleteBatchHandler())

	// Alerts
	protected.Get("/alerts/low-stock", alerts.LowStockHandler())
	protected.Get("/alerts/near-expiry", alerts.NearExpiryHandler())

	// Ledger report
	protected.Get("/reports/ledger", ledger.ReportHandler(fmtr))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
