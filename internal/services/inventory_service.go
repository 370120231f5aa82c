package services

import (
	"fmt"
	"log"
	"sync"

	"labvend/internal/models"
	"labvend/internal/repositories"

	"labvend/pkg/rabbitmq"
)

// StockListener receives the full product list after every catalog mutation.
// Listeners are invoked synchronously, with the catalog lock held, so derived
// state (the alert engine) is up to date before the mutating call returns and
// notifications arrive in mutation order. Listeners must not call back into
// the inventory service.
type StockListener func(products []models.Product)

// DispenseItem is one line of a vending request: take Quantity units of the
// referenced product out of stock.
type DispenseItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// InventoryService owns the product catalog. All stock mutations flow through
// it, so it is the single place that notifies subscribers and publishes
// inventory events.
type InventoryService struct {
	repo      repositories.ProductRepository
	mqClient  *rabbitmq.Client
	mu        sync.Mutex // serializes read-modify-write sequences across the repo
	listeners []StockListener
}

// NewInventoryService creates a new InventoryService. mqClient may be nil, in
// which case event publication is skipped.
func NewInventoryService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *InventoryService {
	return &InventoryService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// Subscribe registers a listener that is called with the full product list
// after every catalog mutation.
func (s *InventoryService) Subscribe(listener StockListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Products retrieves the full catalog.
func (s *InventoryService) Products() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ProductByID retrieves a single product by its ID.
func (s *InventoryService) ProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Seed loads the initial catalog and notifies subscribers once, so the alert
// engine sees the opening stock levels.
func (s *InventoryService) Seed(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range products {
		if err := s.repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}
	s.notifyLocked()
	return nil
}

// AddProduct appends a new product to the catalog.
func (s *InventoryService) AddProduct(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.notifyLocked()
	s.publishEvent("product.added", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"stock":      product.Stock,
	})
	return nil
}

// RemoveProduct deletes a product by its ID. Requisitions and alerts that
// reference the product are not cascaded here; the alert engine drops
// orphaned alerts on its next pass.
func (s *InventoryService) RemoveProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.notifyLocked()
	s.publishEvent("product.removed", map[string]interface{}{"product_id": id})
	return nil
}

// UpdateStock replaces the on-hand quantity of a product. The new value is
// taken as-is; callers that need relative changes use AdjustStock or Dispense.
func (s *InventoryService) UpdateStock(id string, newStock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	product.Stock = newStock
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.notifyLocked()
	s.publishEvent("stock.updated", map[string]interface{}{
		"product_id": id,
		"stock":      newStock,
	})
	return nil
}

// AdjustStock applies a relative stock change and returns the updated product.
// Used by requisition approval (positive delta) and its rollback path.
func (s *InventoryService) AdjustStock(id string, delta int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Stock += delta
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.notifyLocked()
	s.publishEvent("stock.updated", map[string]interface{}{
		"product_id": id,
		"stock":      product.Stock,
	})
	return product, nil
}

// UpdateThresholds overwrites a product's alert thresholds. The critical
// threshold must be strictly below the low threshold; this ordering is
// enforced here rather than left to callers.
func (s *InventoryService) UpdateThresholds(id string, low, critical int) error {
	if low <= 0 {
		return fmt.Errorf("low threshold must be positive, got %d", low)
	}
	if critical < 0 {
		return fmt.Errorf("critical threshold must not be negative, got %d", critical)
	}
	if critical >= low {
		return fmt.Errorf("critical threshold (%d) must be below low threshold (%d)", critical, low)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	product.LowStockThreshold = &low
	product.CriticalStockThreshold = &critical
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// Dispense takes the requested quantities out of stock in one operation.
// Lines naming the same product are combined, and every product is validated
// against its total requested quantity before anything is decremented; if any
// line cannot be satisfied, nothing is dispensed.
func (s *InventoryService) Dispense(items []DispenseItem) error {
	if len(items) == 0 {
		return fmt.Errorf("at least one item is required to dispense")
	}

	totals := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("dispense quantity for product %s must be positive", item.ProductID)
		}
		if _, ok := totals[item.ProductID]; !ok {
			order = append(order, item.ProductID)
		}
		totals[item.ProductID] += item.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := make(map[string]*models.Product, len(order))
	for _, id := range order {
		product, err := s.repo.GetByID(id)
		if err != nil {
			return err
		}
		if product.Stock < totals[id] {
			return fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, totals[id], product.Stock)
		}
		products[id] = product
	}

	for _, id := range order {
		products[id].Stock -= totals[id]
		if err := s.repo.Update(products[id]); err != nil {
			return fmt.Errorf("failed to dispense product %s: %w", id, err)
		}
	}

	s.notifyLocked()
	for _, id := range order {
		s.publishEvent("stock.dispensed", map[string]interface{}{
			"product_id": id,
			"quantity":   totals[id],
			"stock":      products[id].Stock,
		})
	}
	return nil
}

// notifyLocked pushes the current product list to every subscriber. It runs
// with the mutation lock held so each snapshot reflects the mutation that
// triggered it and listeners see snapshots in mutation order.
func (s *InventoryService) notifyLocked() {
	products, err := s.repo.GetAll()
	if err != nil {
		log.Printf("Failed to load products for change notification: %v", err)
		return
	}
	for _, listener := range s.listeners {
		listener(products)
	}
}

// publishEvent sends an inventory event to RabbitMQ when a client is configured.
func (s *InventoryService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
