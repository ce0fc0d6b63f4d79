package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ProductRepository translates between the catalog store's raw
// key-to-record mapping and ordered Product entities.
type ProductRepository interface {
	// ListProducts returns the full catalog snapshot in store-key
	// order. An empty catalog yields an empty slice and nil error.
	ListProducts(context.Context) ([]domain.Product, error)

	// SaveProduct creates the record when the input ID is blank,
	// otherwise overwrites the record at that key in full.
	SaveProduct(context.Context, domain.ProductInput) (domain.Product, error)

	// GetProduct returns the record at id, or [domain.ErrNotFound].
	GetProduct(ctx context.Context, id string) (domain.Product, error)

	// DeleteProduct hard-removes the record. It fails with
	// [domain.ErrNotFound] before the destructive call when no such
	// record exists.
	DeleteProduct(ctx context.Context, id string) error
}

// CatalogEventsProducer emits catalog change events to the broker.
type CatalogEventsProducer interface {
	ProduceEvent(context.Context, domain.CatalogEvent) error
}

type CatalogBrowser interface {
	ListProducts(context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	FilterProducts(context.Context, domain.FilterState) ([]domain.Product, error)
	Categories(context.Context) ([]string, error)
	MaxPriceBound(context.Context) (float64, error)
}

type CatalogEditor interface {
	SaveProduct(context.Context, domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Authenticator is the auth gate: a credential check producing a
// session, uniform about why it failed.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Session, error)
}

// Sessions is the explicit session registry replacing the original
// ambient logged-in flag.
type Sessions interface {
	Create(username string) (token string, s domain.Session)
	Get(token string) (domain.Session, bool)
	Destroy(token string)
}
