package models

import "gorm.io/gorm"

// Default alert thresholds applied when a product does not define its own.
const (
	DefaultLowStockThreshold      = 10
	DefaultCriticalStockThreshold = 5
)

// Specification is a single label/value pair describing a product attribute.
// Specifications are stored as a slice rather than a map so the order entered
// in the catalog is preserved for display.
type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product represents an electronic component tracked by the inventory.
type Product struct {
	ID                     string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                   string          `json:"name" validate:"required,min=2,max=100"`
	Category               string          `json:"category" validate:"required,max=100"`
	Stock                  int             `json:"stock" validate:"gte=0"`
	Image                  string          `json:"image" validate:"omitempty,max=500"`
	Description            string          `json:"description" validate:"omitempty,max=500"`
	Function               string          `json:"function,omitempty" validate:"omitempty,max=200"`
	Specifications         []Specification `json:"specifications" gorm:"serializer:json"`
	LowStockThreshold      *int            `json:"low_stock_threshold,omitempty" validate:"omitempty,gt=0"`
	CriticalStockThreshold *int            `json:"critical_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	gorm.Model             `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// LowThreshold returns the product's low-stock threshold or the default.
func (p *Product) LowThreshold() int {
	if p.LowStockThreshold != nil {
		return *p.LowStockThreshold
	}
	return DefaultLowStockThreshold
}

// CriticalThreshold returns the product's critical-stock threshold or the default.
func (p *Product) CriticalThreshold() int {
	if p.CriticalStockThreshold != nil {
		return *p.CriticalStockThreshold
	}
	return DefaultCriticalStockThreshold
}
