package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/application/production"
	"github.com/jhoicas/Joyeria-api/internal/application/usecase"
	"github.com/jhoicas/Joyeria-api/internal/application/valuation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *inventory.LedgerUseCase
	ProduceUC   *production.ProduceUseCase
	ValuationUC *valuation.ValuationUseCase
	LocationUC  *usecase.LocationUseCase
	TagUC       *usecase.TagUseCase
	ItemUC      *usecase.ItemUseCase
	PriceUC     *usecase.PriceUseCase
	BOMUC       *usecase.BOMUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Toda la API es protegida: los tokens
// los emite el servicio de identidad, aquí solo se validan.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro mayor y balances (protegido)
	invGroup := protected.Group("/inventory")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	invGroup.Post("/movements", movementHandler.Record)
	invGroup.Get("/ledger", movementHandler.Ledger)
	invGroup.Get("/balances", movementHandler.Balances)

	// Valuación (protegido)
	valuationHandler := NewValuationHandler(deps.ValuationUC)
	invGroup.Get("/valuation", valuationHandler.Valuation)
	invGroup.Get("/valuation/report.pdf", valuationHandler.Report)

	// Producción (protegido; admin y production)
	productionHandler := NewProductionHandler(deps.ProduceUC)
	protected.Post("/production", RequireRole(RoleAdmin, RoleProduction), productionHandler.Produce)

	// Recetas (protegido; edición admin y production)
	boms := protected.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC)
	boms.Put("/:product_id", RequireRole(RoleAdmin, RoleProduction), bomHandler.Upsert)
	boms.Get("/:product_id", bomHandler.GetByProduct)

	// Ubicaciones (protegido; alta y edición solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(RoleAdmin), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", RequireRole(RoleAdmin), locationHandler.Update)

	// Etiquetas (protegido)
	tags := protected.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Post("/", tagHandler.Assign)
	tags.Get("/:tag", tagHandler.Resolve)
	tags.Get("/:tag/label.pdf", tagHandler.LabelPDF)

	// Piezas (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id/status", itemHandler.UpdateStatus)

	// Precios (protegido; ingesta solo admin)
	prices := protected.Group("/prices")
	priceHandler := NewPriceHandler(deps.PriceUC)
	prices.Post("/", RequireRole(RoleAdmin), priceHandler.Ingest)
	prices.Get("/latest", priceHandler.Latest)
}
