package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64
	OrderCode string

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	City            string
	Pincode         string

	Status OrderStatus
	Items  []OrderItem

	CreatedAt time.Time
}

type OrderItem struct {
	ID        int64
	ProductID int64
	Quantity  decimal.Decimal

	// Price is the product's unit price captured at order time,
	// independent of later catalog changes.
	Price decimal.Decimal

	// Product is the current catalog record, nil if it has been deleted since.
	Product *Product
}

// CartItem is a single entry of an incoming order request.
type CartItem struct {
	ProductID int64
	Quantity  decimal.Decimal
}

func (c CartItem) Validate() error {
	if c.ProductID <= 0 {
		return fmt.Errorf("productID[%d] is not positive", c.ProductID)
	}

	if !c.Quantity.IsPositive() {
		return fmt.Errorf("quantity[%s] is not positive", c.Quantity)
	}

	return nil
}

func (o Order) Validate() error {
	if o.CustomerName == "" {
		return errors.New("customer name is empty")
	}

	if o.CustomerPhone == "" {
		return errors.New("customer phone is empty")
	}

	if o.CustomerAddress == "" {
		return errors.New("customer address is empty")
	}

	if o.City == "" {
		return errors.New("city is empty")
	}

	if o.Pincode == "" {
		return errors.New("pincode is empty")
	}

	return nil
}

// Total is the sum over line items of snapshot price times quantity.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(item.Quantity))
	}
	return total
}
