package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/repository"
)

// in-memory stand-ins for the Postgres repositories

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]domain.Product)}
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		result = append(result, f.products[id])
	}
	return result, nil
}

func (f *fakeProductRepo) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, productID int64, patch domain.ProductPatch) (domain.Product, error) {
	if err := patch.Validate(); err != nil {
		return domain.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.products[productID]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}

	updated := patch.ApplyTo(existing)
	f.products[productID] = updated
	return updated, nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, productID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[productID]; !ok {
		return false, nil
	}
	delete(f.products, productID)
	return true, nil
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[int64]domain.Order
	products *fakeProductRepo
	nextID   int64
	nextCode int64
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[int64]domain.Order),
		products: products,
	}
}

func (f *fakeOrderRepo) InsertOrder(_ context.Context, order domain.Order) (int64, error) {
	if err := order.Validate(); err != nil {
		return 0, err
	}
	if len(order.Items) == 0 {
		return 0, fmt.Errorf("no items in order")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.nextCode++
	order.ID = f.nextID
	order.OrderCode = fmt.Sprintf("FB-%05d", f.nextCode)
	order.Status = domain.OrderStatusPending
	order.CreatedAt = time.Now()

	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
	}

	f.orders[order.ID] = order
	return order.ID, nil
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	f.mu.Lock()
	order, ok := f.orders[orderID]
	f.mu.Unlock()

	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return f.enrich(ctx, order), nil
}

func (f *fakeOrderRepo) GetOrderByCode(ctx context.Context, orderCode string) (domain.Order, error) {
	f.mu.Lock()
	var (
		found domain.Order
		ok    bool
	)
	for _, order := range f.orders {
		if order.OrderCode == orderCode {
			found, ok = order, true
			break
		}
	}
	f.mu.Unlock()

	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return f.enrich(ctx, found), nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	all := make([]domain.Order, 0, len(f.orders))
	for _, order := range f.orders {
		all = append(all, order)
	}
	f.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	for i := range all {
		all[i] = f.enrich(ctx, all[i])
	}
	return all, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, orderCode string, status domain.OrderStatus) error {
	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for id, order := range f.orders {
		if order.OrderCode != orderCode {
			continue
		}

		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("from %s to %s: %w", order.Status, status, domain.ErrInvalidTransition)
		}

		order.Status = status
		f.orders[id] = order
		return nil
	}

	return repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) enrich(ctx context.Context, order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)

	for i, item := range items {
		product, err := f.products.GetProduct(ctx, item.ProductID)
		if err == nil {
			items[i].Product = &product
		} else {
			items[i].Product = nil
		}
	}

	order.Items = items
	return order
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]domain.Admin
	nextID int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]domain.Admin)}
}

func (f *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	admin, ok := f.admins[username]
	if !ok {
		return domain.Admin{}, repository.ErrAdminNotFound
	}
	return admin, nil
}

func (f *fakeAdminRepo) CreateAdmin(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.admins[admin.Username]; ok {
		return domain.Admin{}, repository.ErrUsernameTaken
	}

	f.nextID++
	admin.ID = f.nextID
	f.admins[admin.Username] = admin
	return admin, nil
}
