package api

import (
	"corep-assist/docs"
	"corep-assist/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

func SetupRouter(
	healthHandler *handlers.HealthHandler,
	scenarioHandler *handlers.ScenarioHandler,
	auditHandler *handlers.AuditHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger spec through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", healthHandler.Health)

	v1 := app.Group("/api/v1")

	scenarios := v1.Group("/scenarios")
	scenarios.Post("/analyze", scenarioHandler.AnalyzeScenario)

	audits := v1.Group("/audits")
	audits.Get("", auditHandler.ListAudits)
	audits.Get("/:id", auditHandler.GetAudit)

	return app
}
