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

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/application/production"
	"github.com/jhoicas/Joyeria-api/internal/application/usecase"
	"github.com/jhoicas/Joyeria-api/internal/application/valuation"
	infrapdf "github.com/jhoicas/Joyeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Joyeria-api/internal/interfaces/http"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
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

	// Repos atados al pool: lecturas y escrituras fuera del libro mayor.
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	valuationRepo := postgres.NewValuationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoGenerator()

	ledgerUC := inventory.NewLedgerUseCase(
		txRunner, movementRepo, balanceRepo, itemRepo, locationRepo,
		cfg.Ledger.DefaultWeightUnit,
	)
	produceUC := production.NewProduceUseCase(ledgerUC, bomRepo, itemRepo, locationRepo)
	valuationUC := valuation.NewValuationUseCase(valuationRepo, pdfGenerator, cfg.Ledger.ValuationCurrency)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	tagUC := usecase.NewTagUseCase(tagRepo, itemRepo, pdfGenerator)
	itemUC := usecase.NewItemUseCase(itemRepo)
	priceUC := usecase.NewPriceUseCase(priceRepo, cfg.Ledger.ValuationCurrency)
	bomUC := usecase.NewBOMUseCase(bomRepo, itemRepo)

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
		Title:    "Joyería Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		ProduceUC:   produceUC,
		ValuationUC: valuationUC,
		LocationUC:  locationUC,
		TagUC:       tagUC,
		ItemUC:      itemUC,
		PriceUC:     priceUC,
		BOMUC:       bomUC,
		JWTSecret:   cfg.JWT.Secret,
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
