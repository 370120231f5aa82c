package models

import "time"

// AlertType is the severity of a stock alert.
type AlertType string

const (
	AlertInfo     AlertType = "info"
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
)

// Alert is a stock notification derived from the current catalog state.
// Alerts are never persisted; the alert engine recomputes them whenever
// the product list changes. ProductName is a denormalized copy taken at
// the time the alert was raised.
type Alert struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        AlertType `json:"type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
