package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"labvend/internal/models"
	"labvend/internal/repositories"
	"labvend/pkg/rabbitmq"
)

// allowedTransitions is the requisition state machine. Anything not listed
// here is rejected by UpdateStatus; the repository itself stays dumb.
// A user cancelling their own pending request is the pending -> rejected
// transition; there is no separate cancelled state.
var allowedTransitions = map[models.RequisitionStatus][]models.RequisitionStatus{
	models.RequisitionPending:  {models.RequisitionApproved, models.RequisitionRejected},
	models.RequisitionApproved: {models.RequisitionFulfilled},
}

// RequisitionService owns the requisition ledger and coordinates the stock
// side effect of approvals with the inventory service.
type RequisitionService struct {
	repo      repositories.RequisitionRepository
	inventory *InventoryService
	mqClient  *rabbitmq.Client
}

// NewRequisitionService creates a new RequisitionService. mqClient may be nil,
// in which case event publication is skipped.
func NewRequisitionService(repo repositories.RequisitionRepository, inventory *InventoryService, mqClient *rabbitmq.Client) *RequisitionService {
	return &RequisitionService{
		repo:      repo,
		inventory: inventory,
		mqClient:  mqClient,
	}
}

// Requisitions retrieves the full ledger.
func (s *RequisitionService) Requisitions() ([]models.Requisition, error) {
	return s.repo.GetAll()
}

// RequisitionByID retrieves a single requisition by its ID.
func (s *RequisitionService) RequisitionByID(id string) (*models.Requisition, error) {
	return s.repo.GetByID(id)
}

// AddRequisition files a new requisition. The status is always forced to
// pending and both timestamps are stamped here, regardless of what the caller
// supplied. Requested quantities are not checked against current stock: the
// stock effect happens at approval time, against the catalog as it is then.
func (s *RequisitionService) AddRequisition(requisition *models.Requisition) (*models.Requisition, error) {
	if len(requisition.Items) == 0 {
		return nil, fmt.Errorf("a requisition requires at least one item")
	}
	for _, item := range requisition.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("requested quantity for product %s must be positive", item.ProductID)
		}
	}
	if requisition.Priority == "" {
		requisition.Priority = models.PriorityNormal
	}

	now := time.Now()
	requisition.Status = models.RequisitionPending
	requisition.CreatedAt = now
	requisition.UpdatedAt = now

	if err := s.repo.Create(requisition); err != nil {
		return nil, fmt.Errorf("failed to create requisition: %w", err)
	}

	s.publishEvent("requisition.created", map[string]interface{}{
		"requisition_id": requisition.ID,
		"employee_name":  requisition.EmployeeName,
		"priority":       string(requisition.Priority),
	})
	return requisition, nil
}

// UpdateStatus transitions a requisition through its state machine.
// Approval additionally restocks every referenced product by the requested
// quantity; items whose product has since been removed from the catalog are
// skipped. The stock bumps and the status write succeed or fail together: if
// the status write fails, every applied bump is rolled back.
func (s *RequisitionService) UpdateStatus(id string, status models.RequisitionStatus) error {
	switch status {
	case models.RequisitionPending, models.RequisitionApproved,
		models.RequisitionRejected, models.RequisitionFulfilled:
	default:
		return fmt.Errorf("invalid requisition status: %s", status)
	}

	requisition, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !transitionAllowed(requisition.Status, status) {
		return fmt.Errorf("cannot transition requisition %s from %s to %s", id, requisition.Status, status)
	}

	if status == models.RequisitionApproved {
		return s.approve(requisition)
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update requisition status for %s: %w", id, err)
	}
	s.publishEvent("requisition."+string(status), map[string]interface{}{
		"requisition_id": id,
	})
	return nil
}

// Cancel withdraws a pending requisition. It is the same transition an admin
// rejection takes; the ledger does not distinguish the two.
func (s *RequisitionService) Cancel(id string) error {
	return s.UpdateStatus(id, models.RequisitionRejected)
}

// approve restocks every referenced product, then writes the approved status.
// Products that were removed after the requisition was filed are skipped
// silently apart from a log line.
func (s *RequisitionService) approve(requisition *models.Requisition) error {
	type appliedBump struct {
		productID string
		quantity  int
	}
	var applied []appliedBump

	for _, item := range requisition.Items {
		if _, err := s.inventory.AdjustStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Skipping restock for requisition %s item %s: %v",
				requisition.ID, item.ProductID, err)
			continue
		}
		applied = append(applied, appliedBump{productID: item.ProductID, quantity: item.Quantity})
	}

	if err := s.repo.UpdateStatus(requisition.ID, models.RequisitionApproved); err != nil {
		// Undo the bumps so approval is all-or-nothing.
		for _, bump := range applied {
			if _, rollbackErr := s.inventory.AdjustStock(bump.productID, -bump.quantity); rollbackErr != nil {
				log.Printf("Failed to roll back restock of product %s after approval failure: %v",
					bump.productID, rollbackErr)
			}
		}
		return fmt.Errorf("failed to approve requisition %s: %w", requisition.ID, err)
	}

	s.publishEvent("requisition.approved", map[string]interface{}{
		"requisition_id": requisition.ID,
		"items":          len(requisition.Items),
	})
	return nil
}

// ByStatus returns the requisitions currently in the given status.
func (s *RequisitionService) ByStatus(status models.RequisitionStatus) ([]models.Requisition, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Requisition, 0)
	for _, requisition := range all {
		if requisition.Status == status {
			matched = append(matched, requisition)
		}
	}
	return matched, nil
}

// ByEmployee returns the requisitions whose employee name contains the given
// string, case-insensitively.
func (s *RequisitionService) ByEmployee(employeeName string) ([]models.Requisition, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(employeeName)
	matched := make([]models.Requisition, 0)
	for _, requisition := range all {
		if strings.Contains(strings.ToLower(requisition.EmployeeName), needle) {
			matched = append(matched, requisition)
		}
	}
	return matched, nil
}

// PendingCount returns the number of requisitions awaiting review.
func (s *RequisitionService) PendingCount() (int, error) {
	pending, err := s.ByStatus(models.RequisitionPending)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func transitionAllowed(from, to models.RequisitionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *RequisitionService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
