package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo implementación del registro de etiquetas sobre PostgreSQL.
// tag_string es la clave primaria: la unicidad global la impone la tabla.
type TagRepo struct {
	pool *pgxpool.Pool
}

// NewTagRepository construye el adaptador.
func NewTagRepository(pool *pgxpool.Pool) *TagRepo {
	return &TagRepo{pool: pool}
}

// Create persiste la asignación. Etiqueta ya reclamada → ErrTagInUse.
func (r *TagRepo) Create(tag *entity.Tag) error {
	query := `
		INSERT INTO tags (tag_string, item_id, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(context.Background(), query,
		tag.TagString, tag.ItemID, tag.AssignedBy, tag.AssignedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTagInUse
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// GetByTagString busca una etiqueta; nil si no existe.
func (r *TagRepo) GetByTagString(tagString string) (*entity.Tag, error) {
	query := `SELECT tag_string, item_id, assigned_by, assigned_at FROM tags WHERE tag_string = $1`
	var t entity.Tag
	err := r.pool.QueryRow(context.Background(), query, tagString).Scan(
		&t.TagString, &t.ItemID, &t.AssignedBy, &t.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// ListByItem lista las etiquetas asignadas a una pieza.
func (r *TagRepo) ListByItem(itemID string) ([]*entity.Tag, error) {
	query := `SELECT tag_string, item_id, assigned_by, assigned_at FROM tags WHERE item_id = $1 ORDER BY assigned_at DESC`
	rows, err := r.pool.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list tags by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.TagString, &t.ItemID, &t.AssignedBy, &t.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
