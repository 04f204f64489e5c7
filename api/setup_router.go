package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/SamuelLeutner/pre-enrollment/api/handlers"
	"github.com/SamuelLeutner/pre-enrollment/config"
)

func SetupRouter(svc handlers.EnrollmentService, appConfig *config.Config) *fiber.App {
	r := fiber.New()
	r.Use(recoverer.New())
	r.Use(logger.New())

	api := r.Group("/api/v1")

	api.Get("/ping", handlers.HandlePing)
	api.Get("/enrollments", handlers.CreateListEnrollmentsHandler(svc, appConfig))
	api.Get("/enrollments/:id", handlers.CreateGetEnrollmentHandler(svc, appConfig))
	api.Post("/enrollments/export", handlers.CreateExportEnrollmentsHandler(svc, appConfig))

	return r
}
