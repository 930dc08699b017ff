package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
	"github.com/nikolayk812/freshbasket/internal/repository"
)

// ErrEmptyOrder signals a cart with no resolvable items.
var ErrEmptyOrder = errors.New("no resolvable items in order")

type Orders struct {
	orders   port.OrderRepository
	products port.ProductRepository
	logger   *slog.Logger
}

func NewOrders(orders port.OrderRepository, products port.ProductRepository, logger *slog.Logger) *Orders {
	return &Orders{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// CreateOrder resolves the cart against the catalog, snapshots each product's
// current price into its line item and persists the order atomically.
// Cart entries referencing a missing product are dropped, an order must end
// up with at least one line item.
func (s *Orders) CreateOrder(ctx context.Context, order domain.Order, cart []domain.CartItem) (domain.Order, error) {
	var o domain.Order

	if err := order.Validate(); err != nil {
		return o, fmt.Errorf("order.Validate: %w", err)
	}

	if len(cart) == 0 {
		return o, ErrEmptyOrder
	}

	var items []domain.OrderItem

	for _, entry := range cart {
		if err := entry.Validate(); err != nil {
			return o, fmt.Errorf("cart item: %w", err)
		}

		product, err := s.products.GetProduct(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				s.logger.WarnContext(ctx, "dropping unknown product from order",
					slog.Int64("product_id", entry.ProductID))
				continue
			}
			return o, fmt.Errorf("products.GetProduct: %w", err)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  entry.Quantity,
			Price:     product.Price,
		})
	}

	if len(items) == 0 {
		return o, ErrEmptyOrder
	}

	order.Items = items

	orderID, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		return o, fmt.Errorf("orders.InsertOrder: %w", err)
	}

	created, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return o, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return created, nil
}

func (s *Orders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

func (s *Orders) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *Orders) GetOrderByCode(ctx context.Context, orderCode string) (domain.Order, error) {
	order, err := s.orders.GetOrderByCode(ctx, orderCode)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrderByCode: %w", err)
	}

	return order, nil
}

// UpdateOrderStatus advances an order one step forward and returns it enriched.
func (s *Orders) UpdateOrderStatus(ctx context.Context, orderCode string, status domain.OrderStatus) (domain.Order, error) {
	var o domain.Order

	if err := s.orders.UpdateOrderStatus(ctx, orderCode, status); err != nil {
		return o, fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	order, err := s.orders.GetOrderByCode(ctx, orderCode)
	if err != nil {
		return o, fmt.Errorf("orders.GetOrderByCode: %w", err)
	}

	return order, nil
}
