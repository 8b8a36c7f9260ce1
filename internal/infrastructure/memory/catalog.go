package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo catálogo de piezas en memoria.
type ItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

// NewItemRepository construye el catálogo vacío.
func NewItemRepository() *ItemRepo {
	return &ItemRepo{items: make(map[string]*entity.Item)}
}

func (r *ItemRepo) Create(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.SKU == item.SKU {
			return domain.ErrDuplicateName
		}
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.SKU == sku {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.items))
	for _, item := range r.items {
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return paginate(out, limit, offset), nil
}

func (r *ItemRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Status = status
	return nil
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo árbol de ubicaciones en memoria. Nombre único global.
type LocationRepo struct {
	mu        sync.Mutex
	locations map[string]*entity.Location
}

// NewLocationRepository construye el registro vacío.
func NewLocationRepository() *LocationRepo {
	return &LocationRepo{locations: make(map[string]*entity.Location)}
}

func (r *LocationRepo) Create(location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.locations {
		if existing.Name == location.Name {
			return domain.ErrDuplicateName
		}
	}
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locations[id]; ok {
		copied := *loc
		return &copied, nil
	}
	return nil, nil
}

func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, loc := range r.locations {
		if loc.Name == name {
			copied := *loc
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		copied := *loc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *LocationRepo) UpdateMetadata(id, name, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return domain.ErrNotFound
	}
	for otherID, other := range r.locations {
		if otherID != id && other.Name == name {
			return domain.ErrDuplicateName
		}
	}
	loc.Name = name
	loc.Address = address
	return nil
}

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo recetas en memoria, un documento por producto.
type BOMRepo struct {
	mu   sync.Mutex
	boms map[string]*entity.BOM
}

// NewBOMRepository construye el registro vacío.
func NewBOMRepository() *BOMRepo {
	return &BOMRepo{boms: make(map[string]*entity.BOM)}
}

func (r *BOMRepo) Upsert(bom *entity.BOM) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *bom
	copied.Components = append([]entity.BOMComponent(nil), bom.Components...)
	r.boms[bom.ProductID] = &copied
	return nil
}

func (r *BOMRepo) GetByProduct(productID string) (*entity.BOM, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bom, ok := r.boms[productID]
	if !ok {
		return nil, nil
	}
	copied := *bom
	copied.Components = append([]entity.BOMComponent(nil), bom.Components...)
	return &copied, nil
}

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo registro de etiquetas en memoria. La cadena nunca se recicla.
type TagRepo struct {
	mu   sync.Mutex
	tags map[string]*entity.Tag
}

// NewTagRepository construye el registro vacío.
func NewTagRepository() *TagRepo {
	return &TagRepo{tags: make(map[string]*entity.Tag)}
}

func (r *TagRepo) Create(tag *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[tag.TagString]; ok {
		return domain.ErrTagInUse
	}
	copied := *tag
	r.tags[tag.TagString] = &copied
	return nil
}

func (r *TagRepo) GetByTagString(tagString string) (*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tag, ok := r.tags[tagString]; ok {
		copied := *tag
		return &copied, nil
	}
	return nil, nil
}

func (r *TagRepo) ListByItem(itemID string) ([]*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tag
	for _, tag := range r.tags {
		if tag.ItemID == itemID {
			copied := *tag
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagString < out[j].TagString })
	return out, nil
}

var _ repository.PriceRepository = (*PriceRepo)(nil)

type priceKey struct {
	metal  string
	purity string
}

// PriceRepo serie de precios en memoria, solo-inserción.
type PriceRepo struct {
	mu        sync.Mutex
	snapshots []*entity.PriceSnapshot
}

// NewPriceRepository construye la serie vacía.
func NewPriceRepository() *PriceRepo {
	return &PriceRepo{}
}

func (r *PriceRepo) Create(snapshot *entity.PriceSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *snapshot
	r.snapshots = append(r.snapshots, &copied)
	return nil
}

func (r *PriceRepo) LatestByKey(metal, purity string) (*entity.PriceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.PriceSnapshot
	for _, snap := range r.snapshots {
		if snap.Metal != metal || snap.Purity != purity {
			continue
		}
		if latest == nil || snap.TakenAt.After(latest.TakenAt) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *PriceRepo) ListLatest(ctx context.Context) ([]*entity.PriceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := make(map[priceKey]*entity.PriceSnapshot)
	for _, snap := range r.snapshots {
		key := priceKey{snap.Metal, snap.Purity}
		if cur, ok := latest[key]; !ok || snap.TakenAt.After(cur.TakenAt) {
			latest[key] = snap
		}
	}
	out := make([]*entity.PriceSnapshot, 0, len(latest))
	for _, snap := range latest {
		copied := *snap
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metal == out[j].Metal {
			return out[i].Purity < out[j].Purity
		}
		return out[i].Metal < out[j].Metal
	})
	return out, nil
}

func paginate[T any](list []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
