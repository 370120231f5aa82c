package handlers

import (
	"log"
	"strings"

	"labvend/internal/models"
	"labvend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog and vending.
type ProductHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.InventoryService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog and vending routes. Reads and
// dispensing are open to any authenticated user; catalog mutations take the
// admin middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", admin, h.HandleAddProduct)
	productRoutes.Delete("/:id", admin, h.HandleRemoveProduct)
	productRoutes.Patch("/:id/stock", admin, h.HandleUpdateStock)
	productRoutes.Patch("/:id/thresholds", admin, h.HandleUpdateThresholds)

	router.Post("/dispense", h.HandleDispense)
}

// HandleGetProducts retrieves the full catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.Products()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.ProductByID(productID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product " + productID + " not found",
			})
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleAddProduct appends a new product to the catalog.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.AddProduct(&product); err != nil {
		log.Printf("Error adding product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleRemoveProduct deletes a product by its ID. Requisitions that
// reference it keep their item lines; approval simply skips them.
func (h *ProductHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.RemoveProduct(productID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product " + productID + " not found",
			})
		}
		log.Printf("Error removing product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product " + productID + " deleted successfully",
	})
}

// HandleUpdateStock replaces the on-hand quantity of a product.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	var updateData struct {
		Stock *int `json:"stock"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for stock update",
			"error":   err.Error(),
		})
	}
	if updateData.Stock == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Stock is required for a stock update.",
		})
	}

	if err := h.service.UpdateStock(productID, *updateData.Stock); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product " + productID + " not found",
			})
		}
		log.Printf("Error updating stock for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update stock",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Stock for product " + productID + " updated successfully",
	})
}

// HandleUpdateThresholds overwrites a product's alert thresholds. Ordering
// (critical strictly below low) is checked by the service.
func (h *ProductHandler) HandleUpdateThresholds(c *fiber.Ctx) error {
	productID := c.Params("id")
	var updateData struct {
		LowStockThreshold      *int `json:"low_stock_threshold"`
		CriticalStockThreshold *int `json:"critical_stock_threshold"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for threshold update",
			"error":   err.Error(),
		})
	}
	if updateData.LowStockThreshold == nil || updateData.CriticalStockThreshold == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Both low_stock_threshold and critical_stock_threshold are required.",
		})
	}

	err := h.service.UpdateThresholds(productID, *updateData.LowStockThreshold, *updateData.CriticalStockThreshold)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product " + productID + " not found",
			})
		}
		if strings.Contains(err.Error(), "threshold") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Threshold update failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating thresholds for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update thresholds",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Thresholds for product " + productID + " updated successfully",
	})
}

// DispenseRequest is the body of a vending request.
type DispenseRequest struct {
	Items []services.DispenseItem `json:"items" validate:"required,min=1,dive"`
}

// HandleDispense takes the requested quantities out of stock, all or nothing.
func (h *ProductHandler) HandleDispense(c *fiber.Ctx) error {
	var req DispenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for dispense",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.Dispense(req.Items); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Dispense failed",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "insufficient stock") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Dispense failed due to insufficient stock",
				"error":   err.Error(),
			})
		}
		log.Printf("Error dispensing items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not dispense items",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Items successfully dispensed",
	})
}
