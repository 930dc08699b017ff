package port

import (
	"context"

	"github.com/nikolayk812/freshbasket/internal/domain"
)

type OrderRepository interface {
	// GetOrder returns the order enriched with its items,
	// each joined with the current product record.
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	GetOrderByCode(ctx context.Context, orderCode string) (domain.Order, error)

	// ListOrders returns all orders enriched, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// InsertOrder persists the order header and all its items atomically,
	// assigning a fresh unique order code, pending status and a creation
	// timestamp. Item prices must already be snapshotted by the caller.
	InsertOrder(ctx context.Context, order domain.Order) (int64, error)

	UpdateOrderStatus(ctx context.Context, orderCode string, status domain.OrderStatus) error
}
