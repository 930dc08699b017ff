package port

import (
	"context"

	"github.com/nikolayk812/freshbasket/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)

	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, productID int64, patch domain.ProductPatch) (domain.Product, error)

	DeleteProduct(ctx context.Context, productID int64) (bool, error)
}
