package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceiveStock      *ledger.ReceiveStockUseCase
	Dispense          *ledger.DispenseUseCase
	RecordCount       *ledger.RecordCountUseCase
	Reconcile         *ledger.ReconcileUseCase
	SupplyOrder       *ledger.SupplyOrderUseCase
	BatchAdmin        *ledger.BatchAdminUseCase
	LedgerQuery       *ledger.LedgerQueryUseCase
	PrescriptionQuery *ledger.PrescriptionQueryUseCase
	JWTSecret         string
}

// Router registra las rutas de la API. Todo el libro requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveStock, deps.LedgerQuery, deps.BatchAdmin)
	invGroup.Post("/receipts", inventoryHandler.ReceiveStock)
	invGroup.Get("/items/:medication_id", inventoryHandler.GetItem)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Delete("/batches/:batch_id", inventoryHandler.DeleteBatch)

	// Despachos (protegido)
	prescriptions := protected.Group("/prescriptions")
	prescriptionHandler := NewPrescriptionHandler(deps.Dispense, deps.PrescriptionQuery)
	prescriptions.Post("/", prescriptionHandler.Dispense)
	prescriptions.Get("/", prescriptionHandler.ListByPatient)
	prescriptions.Get("/:id", prescriptionHandler.GetByID)

	// Conteos físicos y conciliación (protegido)
	counts := protected.Group("/counts")
	countHandler := NewCountHandler(deps.RecordCount, deps.Reconcile)
	counts.Post("/", countHandler.RecordCount)
	counts.Get("/:id", countHandler.GetSession)
	counts.Get("/:id/report.pdf", countHandler.SessionReport)
	counts.Post("/:id/reconcile", countHandler.Reconcile)

	// Órdenes de compra (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.SupplyOrder)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/receive", orderHandler.Receive)

	// Catálogo (protegido, solo lectura)
	medications := protected.Group("/medications")
	medicationHandler := NewMedicationHandler(deps.LedgerQuery)
	medications.Get("/", medicationHandler.Search)
}
