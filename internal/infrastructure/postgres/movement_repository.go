package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es solo-inserción: no hay UPDATE ni
// DELETE en este adaptador por diseño del libro.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, type, quantity, weight, unit, from_location_id, to_location_id, ref, note, created_by, created_at`

// Create persiste un movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.Type,
		movement.Quantity, movement.Weight, movement.Unit,
		movement.FromLocationID, movement.ToLocationID,
		movement.Ref, movement.Note, createdBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos del más reciente al más antiguo, filtrados por
// pieza y/o ubicación (la ubicación casa origen o destino).
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND (from_location_id = $%d OR to_location_id = $%d)", pos, pos)
		args = append(args, filter.LocationID)
		pos++
	}
	// seq es un BIGSERIAL de la tabla: desempata movimientos escritos en el
	// mismo tick de created_at (la saga de producción emite varios seguidos)
	// con el orden real de inserción.
	query += fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListAll devuelve el log completo en orden ascendente (reconciliación).
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY created_at ASC, seq ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var ref, note, createdBy *string
	if err := row.Scan(
		&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.Weight, &m.Unit,
		&m.FromLocationID, &m.ToLocationID, &ref, &note, &createdBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	if ref != nil {
		m.Ref = *ref
	}
	if note != nil {
		m.Note = *note
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
