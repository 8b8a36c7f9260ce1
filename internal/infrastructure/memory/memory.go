// Package memory implementa los puertos de repositorio sobre mapas en
// memoria. Sirve a los tests de casos de uso y a prototipos locales sin
// PostgreSQL; no es apto para producción (sin durabilidad).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos en memoria, solo-inserción.
type MovementRepo struct {
	mu        sync.Mutex
	movements []*entity.Movement
}

// NewMovementRepository construye el log vacío.
func NewMovementRepository() *MovementRepo {
	return &MovementRepo{}
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *movement
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Del más reciente al más antiguo. El slice guarda el orden de
	// inserción, que desempata los movimientos del mismo tick igual que
	// el seq del adaptador PostgreSQL.
	var matched []*entity.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.LocationID != "" && !touchesLocation(m, filter.LocationID) {
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	out := make([]*entity.Movement, 0, len(matched))
	for _, m := range matched {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func touchesLocation(m *entity.Movement, locationID string) bool {
	if m.FromLocationID != nil && *m.FromLocationID == locationID {
		return true
	}
	if m.ToLocationID != nil && *m.ToLocationID == locationID {
		return true
	}
	return false
}

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

type balanceKey struct {
	itemID     string
	locationID string
}

// BalanceRepo agregado materializado en memoria. Un par nunca tocado se lee
// como balance cero, igual que el adaptador PostgreSQL.
type BalanceRepo struct {
	mu       sync.Mutex
	balances map[balanceKey]*entity.Balance
}

// NewBalanceRepository construye el agregado vacío.
func NewBalanceRepository() *BalanceRepo {
	return &BalanceRepo{balances: make(map[balanceKey]*entity.Balance)}
}

func (r *BalanceRepo) Get(itemID, locationID string) (*entity.Balance, error) {
	return r.GetForUpdate(itemID, locationID)
}

func (r *BalanceRepo) GetForUpdate(itemID, locationID string) (*entity.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.balances[balanceKey{itemID, locationID}]; ok {
		copied := *b
		return &copied, nil
	}
	return &entity.Balance{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   decimal.Zero,
		Weight:     decimal.Zero,
	}, nil
}

func (r *BalanceRepo) ApplyDelta(itemID, locationID string, deltaQty, deltaWeight decimal.Decimal, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey{itemID, locationID}
	b, ok := r.balances[key]
	if !ok {
		b = &entity.Balance{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero, Weight: decimal.Zero}
		r.balances[key] = b
	}
	b.Quantity = b.Quantity.Add(deltaQty)
	b.Weight = b.Weight.Add(deltaWeight)
	b.Unit = unit
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *balance
	r.balances[balanceKey{balance.ItemID, balance.LocationID}] = &copied
	return nil
}

func (r *BalanceRepo) List(ctx context.Context, itemID, locationID string) ([]*entity.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Balance
	for _, b := range r.balances {
		if itemID != "" && b.ItemID != itemID {
			continue
		}
		if locationID != "" && b.LocationID != locationID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID == out[j].ItemID {
			return out[i].LocationID < out[j].LocationID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}
