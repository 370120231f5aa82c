package services_test

import (
	"testing"
	"time"

	"labvend/internal/models"
	"labvend/internal/repositories"
	"labvend/internal/services"

	"github.com/stretchr/testify/assert"
)

// requisitionFixture wires a requisition service against a seeded in-memory
// inventory so approval stock effects can be observed end to end.
func requisitionFixture(t *testing.T) (*services.RequisitionService, *services.InventoryService) {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	inventory := services.NewInventoryService(productRepo, nil)
	err := inventory.Seed([]models.Product{
		{ID: "1", Name: "Arduino Uno R3", Category: "microcontrollers", Stock: 15},
		{ID: "2", Name: "Resistor Kit", Category: "resistors", Stock: 25},
	})
	assert.NoError(t, err)

	requisitionRepo := repositories.NewMemoryRequisitionRepository()
	return services.NewRequisitionService(requisitionRepo, inventory, nil), inventory
}

func pendingRequisition(items ...models.RequisitionItem) *models.Requisition {
	return &models.Requisition{
		EmployeeName: "John Smith",
		Department:   "Electronics Lab",
		Items:        items,
		Priority:     models.PriorityHigh,
		Notes:        "Course project components",
	}
}

func TestRequisitionService_AddForcesPendingAndStampsTimes(t *testing.T) {
	requisitionService, _ := requisitionFixture(t)

	requisition := pendingRequisition(models.RequisitionItem{ProductID: "1", ProductName: "Arduino Uno R3", Quantity: 5})
	// Whatever the caller supplies for status and timestamps is discarded.
	requisition.Status = models.RequisitionApproved
	requisition.CreatedAt = time.Now().Add(-48 * time.Hour)

	created, err := requisitionService.AddRequisition(requisition)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.RequisitionPending, created.Status)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// Immediately visible in the pending count.
	count, err := requisitionService.PendingCount()
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRequisitionService_AddValidation(t *testing.T) {
	requisitionService, _ := requisitionFixture(t)

	_, err := requisitionService.AddRequisition(pendingRequisition())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")

	_, err = requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", Quantity: 0},
	))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestRequisitionService_ApproveRestocksProducts(t *testing.T) {
	requisitionService, inventory := requisitionFixture(t)

	created, err := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", ProductName: "Arduino Uno R3", Quantity: 5},
	))
	assert.NoError(t, err)

	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionApproved))

	product, err := inventory.ProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, 20, product.Stock)

	stored, err := requisitionService.RequisitionByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RequisitionApproved, stored.Status)
}

func TestRequisitionService_ApproveSkipsRemovedProducts(t *testing.T) {
	requisitionService, inventory := requisitionFixture(t)

	created, err := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", ProductName: "Arduino Uno R3", Quantity: 5},
		models.RequisitionItem{ProductID: "2", ProductName: "Resistor Kit", Quantity: 3},
	))
	assert.NoError(t, err)

	// The restock amount is computed against the catalog at approval time,
	// not at creation time: a product removed in between is skipped.
	assert.NoError(t, inventory.RemoveProduct("1"))
	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionApproved))

	remaining, err := inventory.ProductByID("2")
	assert.NoError(t, err)
	assert.Equal(t, 28, remaining.Stock)

	stored, _ := requisitionService.RequisitionByID(created.ID)
	assert.Equal(t, models.RequisitionApproved, stored.Status)
}

func TestRequisitionService_RejectDoesNotTouchStock(t *testing.T) {
	requisitionService, inventory := requisitionFixture(t)

	created, err := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", ProductName: "Arduino Uno R3", Quantity: 5},
	))
	assert.NoError(t, err)

	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionRejected))

	product, err := inventory.ProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, 15, product.Stock)
}

func TestRequisitionService_TransitionGraph(t *testing.T) {
	requisitionService, _ := requisitionFixture(t)

	created, err := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", Quantity: 1},
	))
	assert.NoError(t, err)

	// pending cannot jump straight to fulfilled.
	err = requisitionService.UpdateStatus(created.ID, models.RequisitionFulfilled)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	// pending -> approved -> fulfilled is the happy path.
	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionApproved))
	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionFulfilled))

	// fulfilled is terminal.
	err = requisitionService.UpdateStatus(created.ID, models.RequisitionPending)
	assert.Error(t, err)

	// Unknown status values are rejected outright.
	err = requisitionService.UpdateStatus(created.ID, models.RequisitionStatus("shipped"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid requisition status")

	// Unknown requisitions report not found.
	err = requisitionService.UpdateStatus("99", models.RequisitionApproved)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRequisitionService_RejectedIsTerminal(t *testing.T) {
	requisitionService, _ := requisitionFixture(t)

	created, _ := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", Quantity: 1},
	))
	assert.NoError(t, requisitionService.UpdateStatus(created.ID, models.RequisitionRejected))

	err := requisitionService.UpdateStatus(created.ID, models.RequisitionApproved)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
}

func TestRequisitionService_Cancel(t *testing.T) {
	requisitionService, inventory := requisitionFixture(t)

	created, _ := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", Quantity: 2},
	))
	assert.NoError(t, requisitionService.Cancel(created.ID))

	stored, _ := requisitionService.RequisitionByID(created.ID)
	assert.Equal(t, models.RequisitionRejected, stored.Status)

	product, _ := inventory.ProductByID("1")
	assert.Equal(t, 15, product.Stock)

	// Only pending requests can be withdrawn.
	err := requisitionService.Cancel(created.ID)
	assert.Error(t, err)
}

func TestRequisitionService_Queries(t *testing.T) {
	requisitionService, _ := requisitionFixture(t)

	first, _ := requisitionService.AddRequisition(pendingRequisition(
		models.RequisitionItem{ProductID: "1", Quantity: 1},
	))
	second := pendingRequisition(models.RequisitionItem{ProductID: "2", Quantity: 2})
	second.EmployeeName = "Sarah Johnson"
	_, err := requisitionService.AddRequisition(second)
	assert.NoError(t, err)

	assert.NoError(t, requisitionService.UpdateStatus(first.ID, models.RequisitionApproved))

	approved, err := requisitionService.ByStatus(models.RequisitionApproved)
	assert.NoError(t, err)
	assert.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	pending, _ := requisitionService.ByStatus(models.RequisitionPending)
	assert.Len(t, pending, 1)

	count, _ := requisitionService.PendingCount()
	assert.Equal(t, 1, count)

	// Employee lookup is a case-insensitive substring match.
	matched, err := requisitionService.ByEmployee("sarah")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Sarah Johnson", matched[0].EmployeeName)

	matched, _ = requisitionService.ByEmployee("JOHN")
	assert.Len(t, matched, 2) // John Smith and Sarah Johnson

	matched, _ = requisitionService.ByEmployee("nobody")
	assert.Empty(t, matched)
}
