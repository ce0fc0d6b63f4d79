package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/sigctx"
)

// sampleProducts is the demo catalog. Writes go one at a time,
// sequentially; a mid-seed failure leaves a partial catalog behind,
// which is acceptable for a seeding utility.
var sampleProducts = []domain.ProductInput{
	{
		Name:        "Sony WH-1000XM4 Headphones",
		Type:        "Electronics",
		Price:       349.99,
		Quantity:    15,
		Description: "Industry-leading noise canceling wireless headphones with premium sound quality.",
		Images:      []string{"https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=500&auto=format"},
	},
	{
		Name:        "Nike Air Max 270",
		Type:        "Clothing",
		Price:       150.00,
		Quantity:    25,
		Description: "Stylish and comfortable sneakers with Air Max cushioning technology.",
		Images:      []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500&auto=format"},
	},
	{
		Name:        "MacBook Air M1",
		Type:        "Electronics",
		Price:       999.99,
		Quantity:    10,
		Description: "Apple's thinnest and lightest notebook with the powerful M1 chip.",
		Images:      []string{"https://images.unsplash.com/photo-1611186871348-b1ce696e52c9?w=500&auto=format"},
	},
	{
		Name:        "Levi's 501 Original Jeans",
		Type:        "Clothing",
		Price:       69.99,
		Quantity:    50,
		Description: "Classic straight fit jeans with iconic styling and comfort.",
		Images:      []string{"https://images.unsplash.com/photo-1542272604-787c3835535d?w=500&auto=format"},
	},
	{
		Name:        "Amazon Kindle Paperwhite",
		Type:        "Electronics",
		Price:       139.99,
		Quantity:    30,
		Description: "Waterproof e-reader with a glare-free display and weeks of battery life.",
		Images:      []string{"https://images.unsplash.com/photo-1592434134753-a70baf7979d5?w=500&auto=format"},
	},
	{
		Name:        "Herman Miller Aeron Chair",
		Type:        "Furniture",
		Price:       1395.00,
		Quantity:    5,
		Description: "Ergonomic office chair with breathable mesh and adjustable lumbar support.",
		Images:      []string{"https://images.unsplash.com/photo-1505843490538-5133c6c7d0e1?w=500&auto=format"},
	},
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	store, err := openStore(sigCtx, cfg)
	if err != nil {
		die(err)
	}
	defer store.Close()

	repo := storage.NewCatalogRepository(store, cfg.Catalog.ProductsPath)

	for i, input := range sampleProducts {
		p, err := repo.SaveProduct(sigCtx, input)
		if err != nil {
			// no rollback: whatever landed before stays
			slog.Error("seeding stopped, catalog left partial",
				"seeded", i, "total", len(sampleProducts), "err", err)
			die(err)
		}
		fmt.Printf("seeded %q as %s\n", p.Name, p.ID)
	}

	fmt.Printf("\nseeded %d products\n", len(sampleProducts))
}

type catalogStore interface {
	storage.Store
	Close()
}

func openStore(
	ctx context.Context, cfg config.Config,
) (catalogStore, error) {
	if cfg.Catalog.Backend == "postgres" {
		return storage.NewSQLStore(ctx, cfg.Catalog.SQLDB)
	}
	return storage.NewLevelDBStore(cfg.Catalog.LevelDBPath)
}

func die(err error) {
	fmt.Printf("failed to seed catalog: %v\n", err)
	os.Exit(2)
}
