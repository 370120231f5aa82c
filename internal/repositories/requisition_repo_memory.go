package repositories

import (
	"fmt"
	"sync"
	"time"

	"labvend/internal/models"

	"github.com/google/uuid"
)

// MemoryRequisitionRepository is an in-memory implementation of RequisitionRepository.
// The ledger lives only for the lifetime of the process.
type MemoryRequisitionRepository struct {
	requisitions map[string]models.Requisition
	order        []string
	mu           sync.RWMutex
}

// NewMemoryRequisitionRepository creates a new instance of MemoryRequisitionRepository.
func NewMemoryRequisitionRepository() *MemoryRequisitionRepository {
	return &MemoryRequisitionRepository{
		requisitions: make(map[string]models.Requisition),
	}
}

// GetAll returns all requisitions in insertion order.
func (r *MemoryRequisitionRepository) GetAll() ([]models.Requisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requisitionList := make([]models.Requisition, 0, len(r.requisitions))
	for _, id := range r.order {
		requisitionList = append(requisitionList, r.requisitions[id])
	}
	return requisitionList, nil
}

// GetByID returns a requisition by its ID.
func (r *MemoryRequisitionRepository) GetByID(id string) (*models.Requisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requisition, ok := r.requisitions[id]
	if !ok {
		return nil, fmt.Errorf("requisition with ID %s not found", id)
	}
	return &requisition, nil
}

// Create adds a new requisition, generating an ID when the caller did not supply one.
// Timestamps are left as given so fixtures can carry historical dates; the service
// stamps them for new requests.
func (r *MemoryRequisitionRepository) Create(requisition *models.Requisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requisition.ID == "" {
		requisition.ID = uuid.New().String()
	}
	if _, ok := r.requisitions[requisition.ID]; !ok {
		r.order = append(r.order, requisition.ID)
	}
	r.requisitions[requisition.ID] = *requisition
	return nil
}

// UpdateStatus overwrites the status of a requisition and stamps UpdatedAt.
func (r *MemoryRequisitionRepository) UpdateStatus(id string, status models.RequisitionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requisition, ok := r.requisitions[id]
	if !ok {
		return fmt.Errorf("requisition with ID %s not found for status update", id)
	}
	requisition.Status = status
	requisition.UpdatedAt = time.Now()
	r.requisitions[id] = requisition
	return nil
}
