package main

import (
	"log"
	"strings"

	"bascula-backend/internal/auth"
	"bascula-backend/internal/config"
	"bascula-backend/internal/database"
	"bascula-backend/internal/models"
	"bascula-backend/internal/product"
	"bascula-backend/internal/report"
	"bascula-backend/internal/supplier"
	"bascula-backend/internal/sysconfig"
	"bascula-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
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
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Weighing reports
	protected.Post("/reports", report.CreateReportHandler())
	protected.Get("/reports", report.ListReportsHandler())
	// Registered before /reports/:id so "export" is not taken as an id.
	protected.Get("/reports/export/excel", report.ExportReportsHandler())
	protected.Get("/reports/:id", report.GetReportHandler())
	protected.Post("/reports/:id/items", report.AddItemHandler())
	protected.Patch("/reports/:id/finish", report.FinishReportHandler())

	// Suppliers
	protected.Post("/suppliers", supplier.CreateSupplierHandler())
	protected.Get("/suppliers", supplier.ListSuppliersHandler())
	protected.Get("/suppliers/:id", supplier.GetSupplierHandler())
	protected.Put("/suppliers/:id", supplier.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", supplier.DeleteSupplierHandler())

	// Products (catalog reads are open to every authenticated user)
	protected.Get("/products", product.ListProductsHandler())
	protected.Get("/products/:id", product.GetProductHandler())

	// System configuration
	protected.Get("/config", sysconfig.GetConfigHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Patch("/reports/:id/cancel", report.CancelReportHandler())

	adminRoutes.Post("/products", product.CreateProductHandler())
	adminRoutes.Put("/products/:id", product.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", product.DeleteProductHandler())

	adminRoutes.Put("/config", sysconfig.UpdateConfigHandler())

	adminRoutes.Post("/users", user.CreateUserHandler())
	adminRoutes.Get("/users", user.ListUsersHandler())
	adminRoutes.Get("/users/:id", user.GetUserHandler())
	adminRoutes.Put("/users/:id", user.UpdateUserHandler())
	adminRoutes.Patch("/users/:id/role", user.ChangeRoleHandler())
	adminRoutes.Delete("/users/:id", user.DeleteUserHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
