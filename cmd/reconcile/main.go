package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
)

// Reconciliación del libro mayor: reconstruye los balances desde el log
// completo de movimientos y los compara con los almacenados. Con -repair
// sobreescribe los balances desviados con el valor reconstruido.
func main() {
	repair := flag.Bool("repair", false, "sobreescribir balances desviados con el valor reconstruido")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	uc := inventory.NewReconcileUseCase(movementRepo, balanceRepo)

	drifts, err := uc.Reconcile(ctx, *repair)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliación")
	}

	for _, d := range drifts {
		log.Warn().
			Str("item_id", d.ItemID).
			Str("location_id", d.LocationID).
			Str("stored_qty", d.StoredQty.String()).
			Str("replayed_qty", d.ReplayedQty.String()).
			Str("stored_weight", d.StoredWeight.String()).
			Str("replayed_weight", d.ReplayedWeight.String()).
			Bool("repaired", *repair).
			Msg("balance desviado del log")
	}

	if len(drifts) == 0 {
		log.Info().Msg("balances consistentes con el log de movimientos")
		return
	}
	log.Info().Int("drifts", len(drifts)).Bool("repair", *repair).Msg("reconciliación terminada")
	if !*repair {
		os.Exit(1)
	}
}
