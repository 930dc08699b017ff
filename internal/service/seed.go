package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var sampleProducts = []domain.Product{
	{Name: "Tomatoes", Category: "Vegetable", Price: decimal.NewFromInt(45), Unit: "kg", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1588391990846-dd96ba847bc6")},
	{Name: "Potatoes", Category: "Vegetable", Price: decimal.NewFromInt(30), Unit: "kg", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1518977676601-b53f82aba655")},
	{Name: "Onions", Category: "Vegetable", Price: decimal.NewFromInt(35), Unit: "kg", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1570913149827-d2ac84ab3f9a")},
	{Name: "Apples", Category: "Fruit", Price: decimal.NewFromInt(120), Unit: "kg", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1528825871115-3581a5387919")},
	{Name: "Bananas", Category: "Fruit", Price: decimal.NewFromInt(50), Unit: "dozen", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1547514701-42782101795e")},
	{Name: "Carrots", Category: "Vegetable", Price: decimal.NewFromInt(60), Unit: "kg", ImageURL: lo.ToPtr("https://images.unsplash.com/photo-1587132137056-bfbf0166836e")},
}

// SeedCatalog inserts the sample produce catalog when the store is empty.
func SeedCatalog(ctx context.Context, products port.ProductRepository, logger *slog.Logger) error {
	existing, err := products.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("products.ListProducts: %w", err)
	}

	if len(existing) > 0 {
		return nil
	}

	for _, product := range sampleProducts {
		if _, err := products.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("products.CreateProduct[%s]: %w", product.Name, err)
		}
	}

	logger.InfoContext(ctx, "seeded catalog", slog.Int("products", len(sampleProducts)))

	return nil
}
