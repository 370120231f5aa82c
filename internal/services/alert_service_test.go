package services_test

import (
	"testing"

	"labvend/internal/models"
	"labvend/internal/services"

	"github.com/stretchr/testify/assert"
)

func thresholdProduct(id, name string, stock int, low, critical *int) models.Product {
	return models.Product{
		ID:                     id,
		Name:                   name,
		Category:               "sensors",
		Stock:                  stock,
		LowStockThreshold:      low,
		CriticalStockThreshold: critical,
	}
}

func intPtr(v int) *int { return &v }

func TestAlertService_OutOfStock(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Arduino Uno R3", 0, intPtr(10), intPtr(5)),
	})

	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertCritical, alerts[0].Type)
	assert.Equal(t, "1", alerts[0].ProductID)
	assert.Equal(t, "Arduino Uno R3", alerts[0].ProductName)
	assert.Contains(t, alerts[0].Message, "Out of stock")
	assert.NotEmpty(t, alerts[0].ID)
	assert.False(t, alerts[0].Timestamp.IsZero())
}

func TestAlertService_CriticalBand(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Transistor Kit", 3, intPtr(12), intPtr(4)),
	})

	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertCritical, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "Critical stock level: 3 remaining (threshold: 4)")
}

func TestAlertService_WarningBand(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Capacitor Set", 8, intPtr(15), intPtr(3)),
	})

	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertWarning, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "Low stock level: 8 remaining (threshold: 15)")
}

func TestAlertService_DefaultThresholds(t *testing.T) {
	alertService := services.NewAlertService(nil)

	// No per-product thresholds: low defaults to 10, critical to 5.
	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Breadboard", 10, nil, nil),
		thresholdProduct("2", "Jumper Wires", 5, nil, nil),
		thresholdProduct("3", "LED Kit", 11, nil, nil),
	})

	alerts := alertService.Alerts()
	assert.Len(t, alerts, 2)
	byProduct := make(map[string]models.Alert)
	for _, alert := range alerts {
		byProduct[alert.ProductID] = alert
	}
	assert.Equal(t, models.AlertWarning, byProduct["1"].Type)
	assert.Equal(t, models.AlertCritical, byProduct["2"].Type)
	_, hasHealthy := byProduct["3"]
	assert.False(t, hasHealthy)
}

func TestAlertService_NoDuplicateOnRepeatedPasses(t *testing.T) {
	alertService := services.NewAlertService(nil)
	products := []models.Product{
		thresholdProduct("1", "Servo Motor", 2, intPtr(10), intPtr(5)),
	}

	alertService.Recalculate(products)
	first := alertService.Alerts()
	assert.Len(t, first, 1)

	alertService.Recalculate(products)
	second := alertService.Alerts()
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestAlertService_WarningNotUpgradedWhileActive(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Capacitor Set", 8, intPtr(10), intPtr(5)),
	})
	assert.Equal(t, models.AlertWarning, alertService.Alerts()[0].Type)

	// Stock degrades into the critical band, but the active warning alert
	// blocks generation, so no critical alert appears.
	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Capacitor Set", 2, intPtr(10), intPtr(5)),
	})
	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertWarning, alerts[0].Type)
}

func TestAlertService_SweepOnRecovery(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Temp Sensor", 8, intPtr(10), intPtr(5)),
	})
	assert.Len(t, alertService.Alerts(), 1)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Temp Sensor", 15, intPtr(10), intPtr(5)),
	})
	assert.Empty(t, alertService.Alerts())
}

func TestAlertService_CriticalRecoveryIntoWarningBand(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Temp Sensor", 3, intPtr(10), intPtr(5)),
	})
	assert.Equal(t, models.AlertCritical, alertService.Alerts()[0].Type)

	// Stock recovers above critical but stays within the low band. On this
	// pass the still-active critical alert blocks generation and the sweep
	// then removes it, so the set is momentarily empty; the following pass
	// raises the warning.
	products := []models.Product{
		thresholdProduct("1", "Temp Sensor", 7, intPtr(10), intPtr(5)),
	}
	alertService.Recalculate(products)
	assert.Empty(t, alertService.Alerts())

	alertService.Recalculate(products)
	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertWarning, alerts[0].Type)
}

func TestAlertService_RearmAfterDismiss(t *testing.T) {
	alertService := services.NewAlertService(nil)
	products := []models.Product{
		thresholdProduct("1", "Arduino Uno R3", 0, intPtr(10), intPtr(5)),
	}

	alertService.Recalculate(products)
	alerts := alertService.Alerts()
	assert.Len(t, alerts, 1)
	originalID := alerts[0].ID

	assert.NoError(t, alertService.Dismiss(originalID))
	assert.Empty(t, alertService.Alerts())

	// Dismissal is not a suppression: the breach persists, so the next
	// pass raises a fresh alert with a new ID.
	alertService.Recalculate(products)
	alerts = alertService.Alerts()
	assert.Len(t, alerts, 1)
	assert.NotEqual(t, originalID, alerts[0].ID)
	assert.Equal(t, models.AlertCritical, alerts[0].Type)
}

func TestAlertService_DroppedWhenProductRemoved(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Arduino Uno R3", 0, intPtr(10), intPtr(5)),
	})
	assert.Len(t, alertService.Alerts(), 1)

	alertService.Recalculate([]models.Product{})
	assert.Empty(t, alertService.Alerts())
}

func TestAlertService_DismissUnknown(t *testing.T) {
	alertService := services.NewAlertService(nil)
	err := alertService.Dismiss("nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAlertService_ManualAddAndClearAll(t *testing.T) {
	alertService := services.NewAlertService(nil)

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Arduino Uno R3", 0, intPtr(10), intPtr(5)),
	})
	notice := alertService.AddAlert("1", "Arduino Uno R3", models.AlertInfo, "Restock order placed with supplier")
	assert.NotEmpty(t, notice.ID)

	alerts := alertService.Alerts()
	assert.Len(t, alerts, 2)
	// Manual notices are prepended.
	assert.Equal(t, models.AlertInfo, alerts[0].Type)

	alertService.ClearAll()
	assert.Empty(t, alertService.Alerts())
}

func TestAlertService_InfoNoticeDoesNotBlockGeneration(t *testing.T) {
	alertService := services.NewAlertService(nil)
	alertService.AddAlert("1", "Arduino Uno R3", models.AlertInfo, "Supplier confirmed delivery date")

	alertService.Recalculate([]models.Product{
		thresholdProduct("1", "Arduino Uno R3", 0, intPtr(10), intPtr(5)),
	})

	var types []models.AlertType
	for _, alert := range alertService.Alerts() {
		types = append(types, alert.Type)
	}
	assert.Contains(t, types, models.AlertCritical)
	assert.Contains(t, types, models.AlertInfo)
}
