package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación del agregado materializado sobre PostgreSQL
// (usable con pool o tx). Clave única (item_id, location_id).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el balance de un par; un par nunca tocado se lee como cero.
func (r *BalanceRepo) Get(itemID, locationID string) (*entity.Balance, error) {
	query := `
		SELECT item_id, location_id, quantity, weight, unit, updated_at
		FROM stock_balances WHERE item_id = $1 AND location_id = $2`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&b.ItemID, &b.LocationID, &b.Quantity, &b.Weight, &b.Unit, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroBalance(itemID, locationID), nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el balance y bloquea la fila (SELECT FOR UPDATE).
func (r *BalanceRepo) GetForUpdate(itemID, locationID string) (*entity.Balance, error) {
	query := `
		SELECT item_id, location_id, quantity, weight, unit, updated_at
		FROM stock_balances WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&b.ItemID, &b.LocationID, &b.Quantity, &b.Weight, &b.Unit, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroBalance(itemID, locationID), nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// ApplyDelta suma el delta al balance del par en un solo statement. El upsert
// incremental materializa la fila si no existe; si dos transacciones insertan
// el mismo par a la vez, la segunda espera el conflicto y suma sobre lo ya
// escrito, así ninguna contribución se pierde.
func (r *BalanceRepo) ApplyDelta(itemID, locationID string, deltaQty, deltaWeight decimal.Decimal, unit string) error {
	query := `
		INSERT INTO stock_balances (item_id, location_id, quantity, weight, unit, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = stock_balances.quantity + EXCLUDED.quantity,
		              weight = stock_balances.weight + EXCLUDED.weight,
		              unit = EXCLUDED.unit, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, itemID, locationID, deltaQty, deltaWeight, unit)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	return nil
}

// Upsert escribe el valor absoluto del balance (reparación de conciliación).
func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	query := `
		INSERT INTO stock_balances (item_id, location_id, quantity, weight, unit, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, weight = EXCLUDED.weight,
		              unit = EXCLUDED.unit, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ItemID, balance.LocationID, balance.Quantity, balance.Weight, balance.Unit,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// List devuelve filas materializadas, filtros opcionales por pieza/ubicación.
func (r *BalanceRepo) List(ctx context.Context, itemID, locationID string) ([]*entity.Balance, error) {
	query := `
		SELECT item_id, location_id, quantity, weight, unit, updated_at
		FROM stock_balances WHERE 1=1`
	args := []any{}
	pos := 1
	if itemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, itemID)
		pos++
	}
	if locationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, locationID)
		pos++
	}
	query += " ORDER BY item_id, location_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ItemID, &b.LocationID, &b.Quantity, &b.Weight, &b.Unit, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func zeroBalance(itemID, locationID string) *entity.Balance {
	return &entity.Balance{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   decimal.Zero,
		Weight:     decimal.Zero,
	}
}
