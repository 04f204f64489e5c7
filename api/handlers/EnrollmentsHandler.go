package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/SamuelLeutner/pre-enrollment/api/requests"
	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/enrollment"
	"github.com/SamuelLeutner/pre-enrollment/models"
	"github.com/SamuelLeutner/pre-enrollment/services"
)

// EnrollmentService is what the admin handlers need from the backend
// client. *services.Client implements it.
type EnrollmentService interface {
	FetchEnrollments(ctx context.Context) ([]models.EnrollmentRecord, error)
	ExportEnrollments(ctx context.Context, records []models.EnrollmentRecord) (int, error)
}

const fetchFailedMessage = "Não foi possível carregar as matrículas"

func fetchFailed(c fiber.Ctx, err error) error {
	log.Printf("Handler: Error during enrollment fetch: %v", err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"message": fetchFailedMessage,
		"details": err.Error(),
	})
}

func CreateListEnrollmentsHandler(svc EnrollmentService, appConfig *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		params := new(requests.ListEnrollmentsRequest)
		if err := c.Bind().Query(params); err != nil {
			log.Printf("Handler: Error parsing query params: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid query params",
				"details": err.Error(),
			})
		}
		if err := params.Validate(); err != nil {
			log.Printf("Handler: Rejected paging params: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid query params",
				"details": err.Error(),
			})
		}

		ctx, cancel := context.WithTimeout(c.Context(), appConfig.Timeout)
		defer cancel()

		records, err := svc.FetchEnrollments(ctx)
		if err != nil {
			return fetchFailed(c, err)
		}

		pageSize := params.PageSize
		if pageSize <= 0 {
			pageSize = appConfig.PageSize
		}
		matches := enrollment.Search(records, params.Filter())
		elements, page := models.Paginate(matches, params.CurrentPage, pageSize)

		return c.JSON(models.APIResponse[models.EnrollmentRecord]{
			Page:     page,
			Elements: elements,
		})
	}
}

func CreateGetEnrollmentHandler(svc EnrollmentService, appConfig *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid enrollment id",
				"details": err.Error(),
			})
		}

		ctx, cancel := context.WithTimeout(c.Context(), appConfig.Timeout)
		defer cancel()

		records, err := svc.FetchEnrollments(ctx)
		if err != nil {
			return fetchFailed(c, err)
		}

		record, ok := enrollment.Find(records, id)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Enrollment not found",
			})
		}
		return c.JSON(record)
	}
}

// CreateExportEnrollmentsHandler writes the full joined listing to the
// configured spreadsheet.
func CreateExportEnrollmentsHandler(svc EnrollmentService, appConfig *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Minute)
		defer cancel()

		records, err := svc.FetchEnrollments(ctx)
		if err != nil {
			return fetchFailed(c, err)
		}

		log.Printf("Handler: Exporting %d enrollments to sheet '%s'...", len(records), appConfig.SheetName)
		rows, err := svc.ExportEnrollments(ctx, records)
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, services.ErrNoWriter) {
				status = fiber.StatusServiceUnavailable
			}
			log.Printf("Handler: Error during enrollment export: %v", err)
			return c.Status(status).JSON(fiber.Map{
				"message": "Failed to export enrollments",
				"details": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Enrollments written to sheet successfully!",
			"sheet":   appConfig.SheetName,
			"rows":    rows,
		})
	}
}
