package repositories

import (
	"labvend/internal/models"
)

// RequisitionRepository defines the interface for requisition data access.
// The repository stores whatever status it is given; the allowed transition
// graph is enforced one layer up, in the requisition service.
type RequisitionRepository interface {
	GetAll() ([]models.Requisition, error)
	GetByID(id string) (*models.Requisition, error)
	Create(requisition *models.Requisition) error
	UpdateStatus(id string, status models.RequisitionStatus) error
	// Delete is intentionally absent: requisitions are an audit trail of
	// requests for the session and are never removed, only transitioned.
}
