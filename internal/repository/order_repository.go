package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type orderRepository struct {
	db DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

const orderColumns = "id, order_code, customer_name, customer_phone, customer_address, city, pincode, status, created_at"

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order

	if orderID <= 0 {
		return o, fmt.Errorf("orderID is empty")
	}

	return r.getOrder(ctx, "id = $1", orderID)
}

func (r *orderRepository) GetOrderByCode(ctx context.Context, orderCode string) (domain.Order, error) {
	var o domain.Order

	if orderCode == "" {
		return o, fmt.Errorf("orderCode is empty")
	}

	return r.getOrder(ctx, "order_code = $1", orderCode)
}

func (r *orderRepository) getOrder(ctx context.Context, where string, arg any) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.db, func(tx pgx.Tx) (domain.Order, error) {
		row := tx.QueryRow(ctx,
			"SELECT "+orderColumns+" FROM orders WHERE "+where, arg)

		order, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, ErrOrderNotFound
			}
			return o, fmt.Errorf("scanOrder: %w", err)
		}

		order.Items, err = getOrderItems(ctx, tx, order.ID)
		if err != nil {
			return o, fmt.Errorf("getOrderItems: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.id, o.order_code, o.customer_name, o.customer_phone, o.customer_address,
		        o.city, o.pincode, o.status, o.created_at,
		        oi.id, oi.product_id, oi.quantity::text, oi.price::text,
		        p.id, p.name, p.category, p.price::text, p.unit, p.image_url
		 FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 LEFT JOIN products p ON p.id = oi.product_id
		 ORDER BY o.created_at DESC, o.id DESC, oi.id`)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var (
		orders []domain.Order
		// rows arrive grouped by order, newest first
		current *domain.Order
	)

	for rows.Next() {
		var (
			order     domain.Order
			statusRaw string
			item      domain.OrderItem
		)

		var (
			quantityText, priceText string
			prodID                  *int64
			prodName, prodCategory  *string
			prodPrice, prodUnit     *string
			prodImageURL            *string
		)

		if err := rows.Scan(
			&order.ID, &order.OrderCode, &order.CustomerName, &order.CustomerPhone, &order.CustomerAddress,
			&order.City, &order.Pincode, &statusRaw, &order.CreatedAt,
			&item.ID, &item.ProductID, &quantityText, &priceText,
			&prodID, &prodName, &prodCategory, &prodPrice, &prodUnit, &prodImageURL,
		); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		order.Status, err = domain.ToOrderStatus(statusRaw)
		if err != nil {
			return nil, fmt.Errorf("domain.ToOrderStatus[%s]: %w", statusRaw, err)
		}

		item.Quantity, err = decimal.NewFromString(quantityText)
		if err != nil {
			return nil, fmt.Errorf("decimal.NewFromString[%s]: %w", quantityText, err)
		}

		item.Price, err = decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("decimal.NewFromString[%s]: %w", priceText, err)
		}

		item.Product, err = buildJoinedProduct(prodID, prodName, prodCategory, prodPrice, prodUnit, prodImageURL)
		if err != nil {
			return nil, fmt.Errorf("buildJoinedProduct: %w", err)
		}

		if current == nil || current.ID != order.ID {
			orders = append(orders, order)
			current = &orders[len(orders)-1]
		}
		current.Items = append(current.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (int64, error) {
	if err := order.Validate(); err != nil {
		return 0, fmt.Errorf("order.Validate: %w", err)
	}

	if len(order.Items) == 0 {
		return 0, errors.New("no items in order")
	}

	orderID, err := withTx(ctx, r.db, func(tx pgx.Tx) (int64, error) {
		// The order code is derived from a sequence inside the same
		// transaction, so concurrent creations never collide.
		var orderID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (order_code, customer_name, customer_phone, customer_address, city, pincode)
			 VALUES ('FB-' || lpad(nextval('order_code_seq')::text, 5, '0'), $1, $2, $3, $4, $5)
			 RETURNING id`,
			order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.City, order.Pincode,
		).Scan(&orderID)
		if err != nil {
			return 0, fmt.Errorf("tx.QueryRow: %w", err)
		}

		for _, item := range order.Items {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price)
				 VALUES ($1, $2, $3, $4)`,
				orderID, item.ProductID, item.Quantity.String(), item.Price.String())
			if err != nil {
				return 0, fmt.Errorf("tx.Exec: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderCode string, status domain.OrderStatus) error {
	if orderCode == "" {
		return fmt.Errorf("orderCode is empty")
	}

	if status == "" {
		return fmt.Errorf("status is empty")
	}

	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	if _, err := withTx(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		var zero struct{}

		var currentRaw string
		err := tx.QueryRow(ctx,
			"SELECT status FROM orders WHERE order_code = $1 FOR UPDATE", orderCode,
		).Scan(&currentRaw)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return zero, ErrOrderNotFound
			}
			return zero, fmt.Errorf("tx.QueryRow: %w", err)
		}

		current, err := domain.ToOrderStatus(currentRaw)
		if err != nil {
			return zero, fmt.Errorf("domain.ToOrderStatus[%s]: %w", currentRaw, err)
		}

		if !current.CanTransitionTo(status) {
			return zero, fmt.Errorf("from %s to %s: %w", current, status, domain.ErrInvalidTransition)
		}

		if _, err := tx.Exec(ctx,
			"UPDATE orders SET status = $2 WHERE order_code = $1", orderCode, status); err != nil {
			return zero, fmt.Errorf("tx.Exec: %w", err)
		}

		return zero, nil
	}); err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func getOrderItems(ctx context.Context, tx pgx.Tx, orderID int64) ([]domain.OrderItem, error) {
	rows, err := tx.Query(ctx,
		`SELECT oi.id, oi.product_id, oi.quantity::text, oi.price::text,
		        p.id, p.name, p.category, p.price::text, p.unit, p.image_url
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("tx.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem

	for rows.Next() {
		var (
			item                    domain.OrderItem
			quantityText, priceText string
			prodID                  *int64
			prodName, prodCategory  *string
			prodPrice, prodUnit     *string
			prodImageURL            *string
		)

		if err := rows.Scan(
			&item.ID, &item.ProductID, &quantityText, &priceText,
			&prodID, &prodName, &prodCategory, &prodPrice, &prodUnit, &prodImageURL,
		); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		item.Quantity, err = decimal.NewFromString(quantityText)
		if err != nil {
			return nil, fmt.Errorf("decimal.NewFromString[%s]: %w", quantityText, err)
		}

		item.Price, err = decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("decimal.NewFromString[%s]: %w", priceText, err)
		}

		item.Product, err = buildJoinedProduct(prodID, prodName, prodCategory, prodPrice, prodUnit, prodImageURL)
		if err != nil {
			return nil, fmt.Errorf("buildJoinedProduct: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

// buildJoinedProduct maps the nullable columns of a LEFT JOIN on products,
// a nil ID means the product has been deleted since the order was placed.
func buildJoinedProduct(id *int64, name, category, price, unit, imageURL *string) (*domain.Product, error) {
	if id == nil {
		return nil, nil
	}

	parsedPrice, err := decimal.NewFromString(*price)
	if err != nil {
		return nil, fmt.Errorf("decimal.NewFromString[%s]: %w", *price, err)
	}

	return &domain.Product{
		ID:       *id,
		Name:     *name,
		Category: *category,
		Price:    parsedPrice,
		Unit:     *unit,
		ImageURL: imageURL,
	}, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o         domain.Order
		statusRaw string
	)

	if err := row.Scan(
		&o.ID, &o.OrderCode, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.City, &o.Pincode, &statusRaw, &o.CreatedAt,
	); err != nil {
		return o, err
	}

	status, err := domain.ToOrderStatus(statusRaw)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", statusRaw, err)
	}
	o.Status = status

	return o, nil
}
