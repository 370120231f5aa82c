package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"labvend/internal/models"
	"labvend/pkg/rabbitmq"

	"github.com/google/uuid"
)

// AlertService maintains the set of active stock alerts. It owns no durable
// state: alerts are derived from the catalog on every change notification and
// only survive until dismissed, recovered or the process exits.
//
// Two behaviors are deliberate and load-bearing:
//
//   - A product that already carries an active warning or critical alert does
//     not get a second one, even if its stock degrades into a worse band while
//     the first alert is still active.
//   - Dismissal is not a suppression. Once an alert is dismissed, the next
//     recomputation no longer finds an active alert for the product, so a
//     fresh alert (new ID, new timestamp) is raised while the breach persists.
type AlertService struct {
	mqClient *rabbitmq.Client
	mu       sync.Mutex
	alerts   []models.Alert
}

// NewAlertService creates a new AlertService. mqClient may be nil, in which
// case event publication is skipped.
func NewAlertService(mqClient *rabbitmq.Client) *AlertService {
	return &AlertService{mqClient: mqClient}
}

// Recalculate derives the active alert set from the given product list. It is
// registered as a stock listener on the inventory service, so it runs
// synchronously after every catalog mutation.
func (s *AlertService) Recalculate(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raised []models.Alert
	for i := range products {
		product := &products[i]
		if s.hasActiveAlertLocked(product.ID) {
			continue
		}

		critical := product.CriticalThreshold()
		low := product.LowThreshold()

		switch {
		case product.Stock == 0:
			raised = append(raised, newAlert(product, models.AlertCritical,
				"Out of stock - immediate restocking required"))
		case product.Stock <= critical:
			raised = append(raised, newAlert(product, models.AlertCritical,
				fmt.Sprintf("Critical stock level: %d remaining (threshold: %d)", product.Stock, critical)))
		case product.Stock <= low:
			raised = append(raised, newAlert(product, models.AlertWarning,
				fmt.Sprintf("Low stock level: %d remaining (threshold: %d)", product.Stock, low)))
		}
	}

	merged := append(s.alerts, raised...)

	// Sweep: drop alerts whose product recovered past the relevant threshold
	// or no longer exists in the catalog.
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	kept := merged[:0]
	for _, alert := range merged {
		product, ok := byID[alert.ProductID]
		if !ok {
			continue
		}
		if alert.Type == models.AlertCritical && product.Stock > product.CriticalThreshold() {
			continue
		}
		if alert.Type == models.AlertWarning && product.Stock > product.LowThreshold() {
			continue
		}
		kept = append(kept, alert)
	}
	s.alerts = kept

	for _, alert := range raised {
		s.publishEvent("alert.raised", map[string]interface{}{
			"alert_id":     alert.ID,
			"product_id":   alert.ProductID,
			"product_name": alert.ProductName,
			"type":         string(alert.Type),
			"message":      alert.Message,
		})
	}
}

// hasActiveAlertLocked reports whether the product already carries an active
// warning or critical alert. Info notices do not count.
func (s *AlertService) hasActiveAlertLocked(productID string) bool {
	for _, alert := range s.alerts {
		if alert.ProductID == productID &&
			(alert.Type == models.AlertCritical || alert.Type == models.AlertWarning) {
			return true
		}
	}
	return false
}

// Alerts returns a snapshot of the active alert set.
func (s *AlertService) Alerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.Alert, len(s.alerts))
	copy(snapshot, s.alerts)
	return snapshot
}

// AddAlert records a manual notice, typically an info message an admin wants
// surfaced alongside the derived alerts. Newest notices come first.
func (s *AlertService) AddAlert(productID, productName string, alertType models.AlertType, message string) models.Alert {
	alert := models.Alert{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: productName,
		Type:        alertType,
		Message:     message,
		Timestamp:   time.Now(),
	}
	s.mu.Lock()
	s.alerts = append([]models.Alert{alert}, s.alerts...)
	s.mu.Unlock()
	s.publishEvent("alert.raised", map[string]interface{}{
		"alert_id":     alert.ID,
		"product_id":   alert.ProductID,
		"product_name": alert.ProductName,
		"type":         string(alert.Type),
		"message":      alert.Message,
	})
	return alert
}

// Dismiss removes a single alert by its ID. If the underlying breach still
// holds, the next recomputation raises a fresh alert.
func (s *AlertService) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, alert := range s.alerts {
		if alert.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("alert with ID %s not found", id)
}

// ClearAll empties the active alert set.
func (s *AlertService) ClearAll() {
	s.mu.Lock()
	s.alerts = nil
	s.mu.Unlock()
}

func newAlert(product *models.Product, alertType models.AlertType, message string) models.Alert {
	return models.Alert{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        alertType,
		Message:     message,
		Timestamp:   time.Now(),
	}
}

func (s *AlertService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
