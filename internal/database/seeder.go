// Package database seeds the opening state of the vending system: the
// component catalog, a handful of historical requisitions and the demo
// accounts. With the default in-memory repositories this runs on every start;
// every restart resets the system to this fixture.
package database

import (
	"fmt"
	"log"
	"time"

	"labvend/internal/models"
	"labvend/internal/repositories"
	"labvend/internal/services"
)

func intPtr(v int) *int { return &v }

// FixtureProducts returns the opening component catalog.
func FixtureProducts() []models.Product {
	return []models.Product{
		{
			ID:       "1",
			Name:     "Arduino Uno R3",
			Category: "microcontrollers",
			Stock:    15,
			Image:    "/pictures/adrino_R3.png",

			Description: "Microcontroller board based on the ATmega328P",
			Function:    "Microcontroller Development",
			Specifications: []models.Specification{
				{Label: "Operating Voltage", Value: "5V"},
				{Label: "Input Voltage", Value: "7-12V"},
				{Label: "Digital I/O Pins", Value: "14"},
				{Label: "Analog Input Pins", Value: "6"},
			},
			LowStockThreshold:      intPtr(20),
			CriticalStockThreshold: intPtr(5),
		},
		{
			ID:          "2",
			Name:        "Resistor Kit (600pcs)",
			Category:    "resistors",
			Stock:       25,
			Image:       "https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Assorted resistor kit with various resistance values",
			Function:    "Current Limiting",
			Specifications: []models.Specification{
				{Label: "Resistance Range", Value: "10Ω to 1MΩ"},
				{Label: "Tolerance", Value: "±5%"},
				{Label: "Power Rating", Value: "1/4W"},
				{Label: "Package", Value: "Through-hole"},
			},
		},
		{
			ID:          "3",
			Name:        "Capacitor Set (120pcs)",
			Category:    "capacitors",
			Stock:       8,
			Image:       "https://images.pexels.com/photos/343457/pexels-photo-343457.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Electrolytic and ceramic capacitor assortment",
			Specifications: []models.Specification{
				{Label: "Capacitance Range", Value: "10pF to 1000µF"},
				{Label: "Voltage Rating", Value: "16V to 50V"},
				{Label: "Types", Value: "Ceramic, Electrolytic"},
				{Label: "Tolerance", Value: "±20%"},
			},
			LowStockThreshold:      intPtr(15),
			CriticalStockThreshold: intPtr(3),
		},
		{
			ID:          "4",
			Name:        "LED Starter Kit",
			Category:    "semiconductors",
			Stock:       30,
			Image:       "https://images.pexels.com/photos/442150/pexels-photo-442150.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Assorted LEDs in various colors and sizes",
			Specifications: []models.Specification{
				{Label: "Colors", Value: "Red, Green, Blue, Yellow, White"},
				{Label: "Forward Voltage", Value: "1.8V to 3.3V"},
				{Label: "Forward Current", Value: "20mA"},
				{Label: "Viewing Angle", Value: "120°"},
			},
		},
		{
			ID:          "5",
			Name:        "Breadboard (830 tie points)",
			Category:    "connectors",
			Stock:       20,
			Image:       "https://images.pexels.com/photos/257736/pexels-photo-257736.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Solderless breadboard for prototyping",
			Specifications: []models.Specification{
				{Label: "Tie Points", Value: "830"},
				{Label: "Size", Value: "165mm x 55mm"},
				{Label: "Pitch", Value: "2.54mm"},
				{Label: "Material", Value: "ABS Plastic"},
			},
		},
		{
			ID:          "6",
			Name:        "Temperature Sensor (DS18B20)",
			Category:    "sensors",
			Stock:       12,
			Image:       "https://images.pexels.com/photos/60582/newton-s-cradle-balls-sphere-action-60582.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Digital temperature sensor with 1-wire interface",
			Function:    "Temperature Monitoring",
			Specifications: []models.Specification{
				{Label: "Temperature Range", Value: "-55°C to +125°C"},
				{Label: "Accuracy", Value: "±0.5°C"},
				{Label: "Resolution", Value: "9 to 12 bits"},
				{Label: "Interface", Value: "1-Wire"},
			},
		},
		{
			ID:          "7",
			Name:        "Jumper Wire Kit",
			Category:    "connectors",
			Stock:       18,
			Image:       "https://images.pexels.com/photos/442150/pexels-photo-442150.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Male-to-male, male-to-female, female-to-female wires",
			Specifications: []models.Specification{
				{Label: "Length", Value: "20cm"},
				{Label: "Wire Gauge", Value: "24AWG"},
				{Label: "Types", Value: "M-M, M-F, F-F"},
				{Label: "Colors", Value: "Assorted"},
			},
		},
		{
			ID:          "8",
			Name:        "Ultrasonic Sensor (HC-SR04)",
			Category:    "sensors",
			Stock:       22,
			Image:       "/pictures/Ultrasonic_Sensor_(HC-SR04).png",
			Description: "Ultrasonic ranging module for distance measurement",
			Specifications: []models.Specification{
				{Label: "Operating Voltage", Value: "5V"},
				{Label: "Measuring Range", Value: "2cm to 400cm"},
				{Label: "Accuracy", Value: "±3mm"},
				{Label: "Frequency", Value: "40kHz"},
			},
		},
		{
			ID:          "9",
			Name:        "Servo Motor (SG90)",
			Category:    "semiconductors",
			Stock:       14,
			Image:       "https://images.pexels.com/photos/343457/pexels-photo-343457.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Micro servo motor for precise positioning",
			Specifications: []models.Specification{
				{Label: "Operating Voltage", Value: "4.8V to 6V"},
				{Label: "Torque", Value: "1.8kg/cm"},
				{Label: "Speed", Value: "0.1s/60°"},
				{Label: "Rotation", Value: "180°"},
			},
		},
		{
			ID:          "10",
			Name:        "Transistor Kit (200pcs)",
			Category:    "semiconductors",
			Stock:       6,
			Image:       "https://images.pexels.com/photos/257736/pexels-photo-257736.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description: "Assorted NPN and PNP transistors",
			Specifications: []models.Specification{
				{Label: "Types", Value: "NPN, PNP"},
				{Label: "Package", Value: "TO-92"},
				{Label: "Voltage", Value: "40V to 60V"},
				{Label: "Current", Value: "100mA to 1A"},
			},
			LowStockThreshold:      intPtr(12),
			CriticalStockThreshold: intPtr(4),
		},
	}
}

// FixtureRequisitions returns the opening requisition ledger, dated relative
// to the current time so the history looks recent.
func FixtureRequisitions() []models.Requisition {
	now := time.Now()
	return []models.Requisition{
		{
			ID:           "1",
			EmployeeName: "John Smith",
			Department:   "Electronics Lab",
			Items: []models.RequisitionItem{
				{ProductID: "1", ProductName: "Arduino Uno R3", Quantity: 5, Justification: "Student projects for embedded systems course"},
				{ProductID: "2", ProductName: "Resistor Kit (600pcs)", Quantity: 2, Justification: "Lab inventory running low"},
			},
			Priority:  models.PriorityHigh,
			Status:    models.RequisitionPending,
			Notes:     "Needed for upcoming semester projects. Students will be working on IoT devices.",
			CreatedAt: now.Add(-2 * 24 * time.Hour),
			UpdatedAt: now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:           "2",
			EmployeeName: "Sarah Johnson",
			Department:   "R&D Department",
			Items: []models.RequisitionItem{
				{ProductID: "6", ProductName: "Temperature Sensor (DS18B20)", Quantity: 10, Justification: "Prototype development for climate monitoring system"},
				{ProductID: "8", ProductName: "Ultrasonic Sensor (HC-SR04)", Quantity: 8, Justification: "Distance measurement modules for robotics project"},
			},
			Priority:  models.PriorityUrgent,
			Status:    models.RequisitionApproved,
			Notes:     "Critical for client demo next week. Please expedite processing.",
			CreatedAt: now.Add(-1 * 24 * time.Hour),
			UpdatedAt: now.Add(-12 * time.Hour),
		},
		{
			ID:           "3",
			EmployeeName: "Mike Chen",
			Department:   "Quality Assurance",
			Items: []models.RequisitionItem{
				{ProductID: "3", ProductName: "Capacitor Set (120pcs)", Quantity: 1, Justification: "Testing component reliability for new product line"},
			},
			Priority:  models.PriorityNormal,
			Status:    models.RequisitionFulfilled,
			Notes:     "Standard testing procedure for incoming components.",
			CreatedAt: now.Add(-5 * 24 * time.Hour),
			UpdatedAt: now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:           "4",
			EmployeeName: "Lisa Wang",
			Department:   "Production",
			Items: []models.RequisitionItem{
				{ProductID: "4", ProductName: "LED Starter Kit", Quantity: 20, Justification: "Assembly line indicators for new production setup"},
				{ProductID: "7", ProductName: "Jumper Wire Kit", Quantity: 15, Justification: "Wiring harness prototypes"},
			},
			Priority:  models.PriorityHigh,
			Status:    models.RequisitionRejected,
			Notes:     "Budget constraints for Q4. Please resubmit with reduced quantities or defer to next quarter.",
			CreatedAt: now.Add(-3 * 24 * time.Hour),
			UpdatedAt: now.Add(-1 * 24 * time.Hour),
		},
	}
}

// SeedProducts loads the opening catalog through the inventory service so the
// alert engine sees the initial stock levels.
func SeedProducts(inventory *services.InventoryService) error {
	if err := inventory.Seed(FixtureProducts()); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

// SeedRequisitions loads the historical requisition ledger directly into the
// repository, preserving the fixture statuses and timestamps. The approval
// stock effect is not replayed for fixture data.
func SeedRequisitions(repo repositories.RequisitionRepository) error {
	requisitions := FixtureRequisitions()
	for i := range requisitions {
		if err := repo.Create(&requisitions[i]); err != nil {
			return fmt.Errorf("failed to seed requisition %s: %w", requisitions[i].ID, err)
		}
	}
	return nil
}

// SeedUsers registers the demo accounts. Errors for accounts that already
// exist (a database-backed run) are logged and ignored.
func SeedUsers(authService *services.AuthService) {
	users := []models.User{
		{Username: "admin", Email: "admin@labvend.local", Password: "admin123", Role: models.RoleAdmin},
		{Username: "researcher", Email: "researcher@labvend.local", Password: "research123", Role: models.RoleUser},
	}
	for i := range users {
		if err := authService.RegisterUser(&users[i]); err != nil {
			log.Printf("Skipping seed user %s: %v", users[i].Username, err)
		}
	}
}
