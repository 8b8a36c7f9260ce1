package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del catálogo mínimo sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, sku, name, metal, purity, weight, weight_unit, status, created_at, updated_at`

// Create persiste una pieza. SKU duplicado → ErrDuplicateName.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.Metal, item.Purity,
		item.Weight, item.WeightUnit, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene una pieza por ID; nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.getOne(query, id)
}

// GetBySKU obtiene una pieza por SKU; nil si no existe.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.getOne(query, sku)
}

func (r *ItemRepo) getOne(query string, arg any) (*entity.Item, error) {
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.SKU, &i.Name, &i.Metal, &i.Purity,
		&i.Weight, &i.WeightUnit, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// List lista piezas con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.SKU, &i.Name, &i.Metal, &i.Purity,
			&i.Weight, &i.WeightUnit, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de una pieza.
func (r *ItemRepo) UpdateStatus(id, status string) error {
	query := `UPDATE items SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	return nil
}
