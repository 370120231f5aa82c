package models

import "time"

// RequisitionStatus is the state of a requisition in its approval lifecycle.
type RequisitionStatus string

const (
	RequisitionPending   RequisitionStatus = "pending"
	RequisitionApproved  RequisitionStatus = "approved"
	RequisitionRejected  RequisitionStatus = "rejected"
	RequisitionFulfilled RequisitionStatus = "fulfilled"
)

// RequisitionPriority indicates how urgently the requested components are needed.
type RequisitionPriority string

const (
	PriorityLow    RequisitionPriority = "low"
	PriorityNormal RequisitionPriority = "normal"
	PriorityHigh   RequisitionPriority = "high"
	PriorityUrgent RequisitionPriority = "urgent"
)

// RequisitionItem is a single requested component line. ProductName is a
// denormalized copy taken when the requisition was filed; the quantity is not
// checked against current stock.
type RequisitionItem struct {
	ProductID     string `json:"product_id" validate:"required"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	Justification string `json:"justification" validate:"omitempty,max=500"`
}

// Requisition is a formal request by an employee for components, subject to
// approval. Approving a requisition restocks every referenced product.
type Requisition struct {
	ID           string              `json:"id"`
	EmployeeName string              `json:"employee_name" validate:"required,min=2,max=100"`
	Department   string              `json:"department" validate:"required,max=100"`
	Items        []RequisitionItem   `json:"items" validate:"required,min=1,dive"`
	Priority     RequisitionPriority `json:"priority" validate:"required,oneof=low normal high urgent"`
	Status       RequisitionStatus   `json:"status"`
	Notes        string              `json:"notes" validate:"omitempty,max=1000"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
