package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de las recetas sobre PostgreSQL. Un documento por
// producto con las líneas como JSONB: el documento se versiona por reemplazo
// completo y nunca se lee por línea.
type BOMRepo struct {
	pool *pgxpool.Pool
}

// NewBOMRepository construye el adaptador.
func NewBOMRepository(pool *pgxpool.Pool) *BOMRepo {
	return &BOMRepo{pool: pool}
}

// Upsert reemplaza la receta completa de un producto.
func (r *BOMRepo) Upsert(bom *entity.BOM) error {
	components, err := json.Marshal(bom.Components)
	if err != nil {
		return fmt.Errorf("marshal bom components: %w", err)
	}
	query := `
		INSERT INTO boms (product_id, components, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id)
		DO UPDATE SET components = EXCLUDED.components,
		              updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(context.Background(), query,
		bom.ProductID, components, bom.UpdatedBy, bom.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bom: %w", err)
	}
	return nil
}

// GetByProduct obtiene la receta vigente; nil si el producto no tiene BOM.
func (r *BOMRepo) GetByProduct(productID string) (*entity.BOM, error) {
	query := `SELECT product_id, components, updated_by, updated_at FROM boms WHERE product_id = $1`
	var b entity.BOM
	var components []byte
	var updatedBy *string
	err := r.pool.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &components, &updatedBy, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	if err := json.Unmarshal(components, &b.Components); err != nil {
		return nil, fmt.Errorf("unmarshal bom components: %w", err)
	}
	if updatedBy != nil {
		b.UpdatedBy = *updatedBy
	}
	return &b, nil
}
