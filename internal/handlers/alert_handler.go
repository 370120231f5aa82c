package handlers

import (
	"strings"

	"labvend/internal/models"
	"labvend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AlertHandler handles HTTP requests for stock alerts.
type AlertHandler struct {
	service  *services.AlertService
	validate *validator.Validate
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(service *services.AlertService) *AlertHandler {
	return &AlertHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the alert routes. Reading and dismissing alerts is
// open to any authenticated user; manual notices and clear-all are admin ops.
func (h *AlertHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	alertRoutes := router.Group("/alerts")
	alertRoutes.Get("/", h.HandleGetAlerts)
	alertRoutes.Post("/", admin, h.HandleAddAlert)
	alertRoutes.Delete("/:id", h.HandleDismissAlert)
	alertRoutes.Delete("/", admin, h.HandleClearAllAlerts)
}

// HandleGetAlerts returns the active alert set.
func (h *AlertHandler) HandleGetAlerts(c *fiber.Ctx) error {
	return c.JSON(h.service.Alerts())
}

// AddAlertRequest is the body of a manual alert notice.
type AddAlertRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=info warning critical"`
	Message     string `json:"message" validate:"required,max=500"`
}

// HandleAddAlert records a manual notice alongside the derived alerts.
func (h *AlertHandler) HandleAddAlert(c *fiber.Ctx) error {
	var req AddAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	alert := h.service.AddAlert(req.ProductID, req.ProductName, models.AlertType(req.Type), req.Message)
	return c.Status(fiber.StatusCreated).JSON(alert)
}

// HandleDismissAlert removes one alert. Dismissal is not a suppression: if
// the breach persists, the engine raises a fresh alert on the next stock change.
func (h *AlertHandler) HandleDismissAlert(c *fiber.Ctx) error {
	alertID := c.Params("id")
	if err := h.service.Dismiss(alertID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Alert " + alertID + " not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not dismiss alert",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Alert " + alertID + " dismissed",
	})
}

// HandleClearAllAlerts empties the alert set.
func (h *AlertHandler) HandleClearAllAlerts(c *fiber.Ctx) error {
	h.service.ClearAll()
	return c.JSON(fiber.Map{
		"message": "All alerts cleared",
	})
}
