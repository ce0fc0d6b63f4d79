package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductRepository = (*CatalogRepository)(nil)

// DefaultProductsPath is the fixed collection path products live under.
const DefaultProductsPath = "public/products"

// productRecord is the flat field map a product serializes to in the
// store. The embedded id duplicates the store key; the legacy image
// field duplicates the first images entry for older readers.
type productRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// CatalogRepository translates the raw key-to-record mapping of a
// catalog store into ordered Product entities and back. The store key
// is authoritative for product IDs: an embedded id that diverges is
// rewritten to the key on every load.
type CatalogRepository struct {
	kv     Store
	prefix string
	ids    *idGenerator
}

func NewCatalogRepository(kv Store, productsPath string) CatalogRepository {
	if productsPath == "" {
		productsPath = DefaultProductsPath
	}
	return CatalogRepository{
		kv:     kv,
		prefix: strings.TrimSuffix(productsPath, "/") + "/",
		ids:    &idGenerator{},
	}
}

func (r CatalogRepository) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ListProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := r.kv.List(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrStoreUnavailable, err,
		)
	}

	ps := make([]domain.Product, 0, len(entries))
	for _, e := range entries {
		var rec productRecord
		if err := json.Unmarshal(e.Value, &rec); err != nil {
			log.Warn("skipping undecodable record",
				"key", e.Key, "err", err)
			continue
		}
		ps = append(ps, r.toProduct(e.Key, rec))
	}
	return ps, nil
}

func (r CatalogRepository) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogRepository.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	b, err := r.kv.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrStoreUnavailable, err,
		)
	}

	var rec productRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.toProduct(r.key(id), rec), nil
}

func (r CatalogRepository) SaveProduct(
	ctx context.Context, input domain.ProductInput,
) (domain.Product, error) {
	const op = "CatalogRepository.SaveProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	id := input.ID
	if id == "" {
		id = r.ids.Next()
	}

	p := domain.Product{
		ID:          id,
		Name:        input.Name,
		Type:        input.Type,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: input.Description,
		Images:      input.Images,
	}.NormalizeImages()

	b, err := json.Marshal(r.toRecord(p))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.Put(ctx, r.key(id), b); err != nil {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrStoreUnavailable, err,
		)
	}
	return p, nil
}

func (r CatalogRepository) DeleteProduct(
	ctx context.Context, id string,
) error {
	const op = "CatalogRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// existence is checked before the destructive call, never
	// inferred from its absence afterwards
	_, err := r.kv.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return fmt.Errorf(
			"%s: %w: %w", op, domain.ErrStoreUnavailable, err,
		)
	}

	if err := r.kv.Delete(ctx, r.key(id)); err != nil {
		return fmt.Errorf(
			"%s: %w: %w", op, domain.ErrStoreUnavailable, err,
		)
	}
	return nil
}

func (r CatalogRepository) key(id string) string {
	return r.prefix + id
}

func (r CatalogRepository) toProduct(
	key string, rec productRecord,
) domain.Product {
	p := domain.Product{
		ID:          strings.TrimPrefix(key, r.prefix),
		Name:        rec.Name,
		Type:        rec.Type,
		Price:       rec.Price,
		Quantity:    rec.Quantity,
		Description: rec.Description,
		Images:      rec.Images,
		Image:       rec.Image,
	}
	return p.NormalizeImages()
}

func (CatalogRepository) toRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		Images:      p.Images,
		Image:       p.Image,
	}
}

// idGenerator issues millisecond-timestamp IDs, bumped past the last
// issued value so two saves in the same millisecond never collide.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *idGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}
