package handlers

import (
	"log"
	"strings"

	"labvend/internal/models"
	"labvend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RequisitionHandler handles HTTP requests for the requisition ledger.
type RequisitionHandler struct {
	service  *services.RequisitionService
	validate *validator.Validate
}

// NewRequisitionHandler creates a new RequisitionHandler.
func NewRequisitionHandler(service *services.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the requisition routes. Filing and cancelling
// requests is open to any authenticated user; status transitions (approve,
// reject, fulfill) are admin ops.
func (h *RequisitionHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	requisitionRoutes := router.Group("/requisitions")
	requisitionRoutes.Get("/", h.HandleGetRequisitions)
	requisitionRoutes.Get("/pending/count", h.HandlePendingCount)
	requisitionRoutes.Get("/:id", h.HandleGetRequisitionByID)
	requisitionRoutes.Post("/", h.HandleAddRequisition)
	requisitionRoutes.Post("/:id/cancel", h.HandleCancelRequisition)
	requisitionRoutes.Patch("/:id/status", admin, h.HandleUpdateStatus)
}

// HandleGetRequisitions lists the ledger. Optional query filters:
// ?status=pending and ?employee=<substring> (case-insensitive).
func (h *RequisitionHandler) HandleGetRequisitions(c *fiber.Ctx) error {
	var (
		requisitions []models.Requisition
		err          error
	)
	switch {
	case c.Query("status") != "":
		requisitions, err = h.service.ByStatus(models.RequisitionStatus(c.Query("status")))
	case c.Query("employee") != "":
		requisitions, err = h.service.ByEmployee(c.Query("employee"))
	default:
		requisitions, err = h.service.Requisitions()
	}
	if err != nil {
		log.Printf("Error getting requisitions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve requisitions",
			"error":   err.Error(),
		})
	}
	return c.JSON(requisitions)
}

// HandlePendingCount returns the number of requisitions awaiting review.
func (h *RequisitionHandler) HandlePendingCount(c *fiber.Ctx) error {
	count, err := h.service.PendingCount()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count pending requisitions",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetRequisitionByID retrieves a single requisition by its ID.
func (h *RequisitionHandler) HandleGetRequisitionByID(c *fiber.Ctx) error {
	requisitionID := c.Params("id")
	requisition, err := h.service.RequisitionByID(requisitionID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Requisition " + requisitionID + " not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve requisition",
			"error":   err.Error(),
		})
	}
	return c.JSON(requisition)
}

// HandleAddRequisition files a new requisition. The service forces the status
// to pending and stamps the timestamps regardless of the request body.
func (h *RequisitionHandler) HandleAddRequisition(c *fiber.Ctx) error {
	var requisition models.Requisition
	if err := c.BodyParser(&requisition); err != nil {
		log.Printf("Error parsing requisition request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if requisition.Priority == "" {
		requisition.Priority = models.PriorityNormal
	}

	if err := h.validate.Struct(requisition); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	created, err := h.service.AddRequisition(&requisition)
	if err != nil {
		log.Printf("Error creating requisition: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create requisition",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleCancelRequisition withdraws a pending requisition (the same
// transition as an admin rejection).
func (h *RequisitionHandler) HandleCancelRequisition(c *fiber.Ctx) error {
	requisitionID := c.Params("id")
	if err := h.service.Cancel(requisitionID); err != nil {
		return h.statusUpdateError(c, requisitionID, err)
	}
	return c.JSON(fiber.Map{
		"message": "Requisition " + requisitionID + " cancelled",
	})
}

// HandleUpdateStatus transitions a requisition through its state machine.
// Approving restocks every referenced product as part of the same operation.
func (h *RequisitionHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	requisitionID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for a requisition status update.",
		})
	}

	err := h.service.UpdateStatus(requisitionID, models.RequisitionStatus(updateData.Status))
	if err != nil {
		return h.statusUpdateError(c, requisitionID, err)
	}
	return c.JSON(fiber.Map{
		"message": "Requisition " + requisitionID + " status updated to " + updateData.Status,
	})
}

// statusUpdateError maps service errors from status transitions onto HTTP codes.
func (h *RequisitionHandler) statusUpdateError(c *fiber.Ctx, requisitionID string, err error) error {
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Requisition " + requisitionID + " not found",
		})
	}
	if strings.Contains(err.Error(), "cannot transition") || strings.Contains(err.Error(), "invalid requisition status") {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Requisition update failed",
			"error":   err.Error(),
		})
	}
	log.Printf("Error updating requisition %s: %v", requisitionID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not update requisition",
		"error":   err.Error(),
	})
}
