package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogBrowser = (*CatalogService)(nil)
var _ port.CatalogEditor = (*CatalogService)(nil)

// CatalogService is the core catalog behavior: listing and filtering
// for the storefront, create/update/delete for the admin panel.
type CatalogService struct {
	repo   port.ProductRepository
	events port.CatalogEventsProducer
}

// New constructs the service. The events producer may be nil when the
// deployment runs without a broker.
func New(
	repo port.ProductRepository, events port.CatalogEventsProducer,
) CatalogService {
	return CatalogService{repo, events}
}

func (s CatalogService) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s CatalogService) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogService.GetProduct"

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// FilterProducts applies fs to the current snapshot, preserving store
// order. A zero MaxPrice means "no bound supplied" and is replaced by
// the current catalog maximum, so valid products are never hidden by
// a stale default.
func (s CatalogService) FilterProducts(
	ctx context.Context, fs domain.FilterState,
) ([]domain.Product, error) {
	const op = "CatalogService.FilterProducts"

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if fs.Type == "" {
		fs.Type = domain.AllCategories
	}
	if fs.MaxPrice <= 0 {
		fs.MaxPrice = domain.MaxCatalogPrice(ps)
	}

	return domain.FilterProducts(ps, fs), nil
}

func (s CatalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return domain.CategorySet(ps), nil
}

// MaxPriceBound recomputes the default upper price bound from the live
// catalog. Clients reset their bound to it whenever the catalog grows
// past the current one.
func (s CatalogService) MaxPriceBound(ctx context.Context) (float64, error) {
	const op = "CatalogService.MaxPriceBound"

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return domain.MaxCatalogPrice(ps), nil
}

func (s CatalogService) SaveProduct(
	ctx context.Context, input domain.ProductInput,
) (domain.Product, error) {
	const op = "CatalogService.SaveProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	kind := domain.ProductUpdated
	if input.ID == "" {
		kind = domain.ProductCreated
	}

	p, err := s.repo.SaveProduct(ctx, input)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.CatalogEvent{Kind: kind, Product: p})
	return p, nil
}

func (s CatalogService) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogService.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.CatalogEvent{
		Kind:    domain.ProductDeleted,
		Product: domain.Product{ID: id},
	})
	return nil
}

// emitEvent delivers the change event best-effort: the store write is
// the source of truth, a producer failure never fails the admin action.
func (s CatalogService) emitEvent(
	ctx context.Context, evt domain.CatalogEvent,
) {
	const op = "CatalogService.emitEvent"

	if s.events == nil {
		return
	}
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce catalog event",
			"op", op, "kind", evt.Kind, "productID", evt.Product.ID,
			"err", err,
		)
	}
}
