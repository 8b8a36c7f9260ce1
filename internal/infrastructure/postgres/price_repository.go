package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación de la serie de precios sobre PostgreSQL,
// solo-inserción.
type PriceRepo struct {
	pool *pgxpool.Pool
}

// NewPriceRepository construye el adaptador.
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepo {
	return &PriceRepo{pool: pool}
}

const priceColumns = `id, metal, purity, rate, currency, taken_at`

// Create persiste un snapshot de precio.
func (r *PriceRepo) Create(snapshot *entity.PriceSnapshot) error {
	query := `INSERT INTO price_snapshots (` + priceColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		snapshot.ID, snapshot.Metal, snapshot.Purity, snapshot.Rate, snapshot.Currency, snapshot.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("insert price snapshot: %w", err)
	}
	return nil
}

// LatestByKey devuelve el snapshot más reciente para (metal, pureza);
// nil si la clave nunca ha recibido precio.
func (r *PriceRepo) LatestByKey(metal, purity string) (*entity.PriceSnapshot, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM price_snapshots WHERE metal = $1 AND purity = $2
		ORDER BY taken_at DESC LIMIT 1`
	var s entity.PriceSnapshot
	err := r.pool.QueryRow(context.Background(), query, metal, purity).Scan(
		&s.ID, &s.Metal, &s.Purity, &s.Rate, &s.Currency, &s.TakenAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest price by key: %w", err)
	}
	return &s, nil
}

// ListLatest devuelve el snapshot más reciente por cada clave conocida.
func (r *PriceRepo) ListLatest(ctx context.Context) ([]*entity.PriceSnapshot, error) {
	query := `
		SELECT DISTINCT ON (metal, purity) ` + priceColumns + `
		FROM price_snapshots
		ORDER BY metal, purity, taken_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list latest prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceSnapshot
	for rows.Next() {
		var s entity.PriceSnapshot
		if err := rows.Scan(&s.ID, &s.Metal, &s.Purity, &s.Rate, &s.Currency, &s.TakenAt); err != nil {
			return nil, fmt.Errorf("scan price snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
