package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo consulta de solo lectura para la valuación: balances no-cero
// con metadato de pieza y el último precio por (metal, pureza) vía LATERAL.
// El precio se resuelve en la consulta, por llamada; nunca se cachea.
type ValuationRepo struct {
	pool *pgxpool.Pool
}

// NewValuationRepository construye el adaptador.
func NewValuationRepository(pool *pgxpool.Pool) *ValuationRepo {
	return &ValuationRepo{pool: pool}
}

// GetValuationRows devuelve una línea por balance no-cero. Claves sin
// snapshot salen con rate 0 y taken_at NULL (la valuación es best-effort).
func (r *ValuationRepo) GetValuationRows(ctx context.Context) ([]repository.ValuationRow, error) {
	const query = `
	SELECT
	    b.item_id,
	    i.sku,
	    i.name,
	    i.metal,
	    i.purity,
	    b.location_id,
	    b.quantity,
	    b.weight,
	    b.unit,
	    COALESCE(p.rate, 0)  AS rate,
	    p.taken_at
	FROM stock_balances b
	JOIN items i ON i.id = b.item_id
	LEFT JOIN LATERAL (
	    SELECT ps.rate, ps.taken_at
	    FROM price_snapshots ps
	    WHERE ps.metal = i.metal AND ps.purity = i.purity
	    ORDER BY ps.taken_at DESC
	    LIMIT 1
	) p ON true
	WHERE b.quantity <> 0 OR b.weight <> 0
	ORDER BY i.sku, b.location_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("valuation.GetValuationRows: %w", err)
	}
	defer rows.Close()

	var results []repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		if err := rows.Scan(
			&row.ItemID, &row.SKU, &row.Name, &row.Metal, &row.Purity,
			&row.LocationID, &row.Quantity, &row.Weight, &row.Unit,
			&row.Rate, &row.RateTakenAt,
		); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
