package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	infrapdf "github.com/jhoicas/farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de transacción).
	itemRepo := postgres.NewInventoryItemRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	sessionRepo := postgres.NewCountSessionRepository(pool)
	prescriptionRepo := postgres.NewPrescriptionRepository(pool)
	orderRepo := postgres.NewSupplyOrderRepository(pool)
	medicationRepo := postgres.NewMedicationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconcileExpiry, err := cfg.Inventory.ReconcileExpiryDate()
	if err != nil {
		log.Fatal().Err(err).Msg("política de conciliación")
	}

	countReportGen := infrapdf.NewMarotoCountReportGenerator()

	receiveStockUC := ledger.NewReceiveStockUseCase(txRunner)
	dispenseUC := ledger.NewDispenseUseCase(txRunner)
	recordCountUC := ledger.NewRecordCountUseCase(txRunner, sessionRepo, countReportGen)
	reconcileUC := ledger.NewReconcileUseCase(txRunner, sessionRepo, ledger.ReconcilePolicy{
		ReplacementExpiration: reconcileExpiry,
	}, log)
	supplyOrderUC := ledger.NewSupplyOrderUseCase(txRunner, orderRepo)
	batchAdminUC := ledger.NewBatchAdminUseCase(txRunner)
	ledgerQueryUC := ledger.NewLedgerQueryUseCase(itemRepo, batchRepo, medicationRepo, reportRepo)
	prescriptionQueryUC := ledger.NewPrescriptionQueryUseCase(prescriptionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceiveStock:      receiveStockUC,
		Dispense:          dispenseUC,
		RecordCount:       recordCountUC,
		Reconcile:         reconcileUC,
		SupplyOrder:       supplyOrderUC,
		BatchAdmin:        batchAdminUC,
		LedgerQuery:       ledgerQueryUC,
		PrescriptionQuery: prescriptionQueryUC,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
