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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del registro de ubicaciones sobre PostgreSQL.
// Lecturas y escrituras van directo al pool: el registro es read-mostly y no
// participa en las transacciones del libro.
type LocationRepo struct {
	pool *pgxpool.Pool
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

const locationColumns = `id, name, type, address, parent_location_id, created_at, updated_at`

// Create persiste una ubicación. Nombre duplicado → ErrDuplicateName.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		location.ID, location.Name, location.Type, location.Address,
		location.ParentID, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID; nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return r.getOne(query, id)
}

// GetByName obtiene una ubicación por nombre; nil si no existe.
func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE name = $1`
	return r.getOne(query, name)
}

func (r *LocationRepo) getOne(query string, arg any) (*entity.Location, error) {
	var l entity.Location
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.Type, &l.Address, &l.ParentID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista ubicaciones con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.ParentID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateMetadata actualiza nombre y dirección; tipo y padre son inmutables.
func (r *LocationRepo) UpdateMetadata(id, name, address string) error {
	query := `UPDATE locations SET name = $2, address = $3, updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, name, address)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}
