package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int64
	Name     string
	Category string
	Price    decimal.Decimal
	Unit     string
	ImageURL *string
}

func (p Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is empty")
	}

	if p.Category == "" {
		return errors.New("category is empty")
	}

	if p.Unit == "" {
		return errors.New("unit is empty")
	}

	if p.Price.IsNegative() {
		return fmt.Errorf("price[%s] is negative", p.Price)
	}

	return nil
}

// ProductPatch is a partial update: nil fields leave the stored value untouched.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Unit     *string
	ImageURL *string
}

func (p ProductPatch) Validate() error {
	if p.Name == nil && p.Category == nil && p.Price == nil && p.Unit == nil && p.ImageURL == nil {
		return errors.New("all fields are empty")
	}

	if p.Name != nil && *p.Name == "" {
		return errors.New("name is empty")
	}

	if p.Category != nil && *p.Category == "" {
		return errors.New("category is empty")
	}

	if p.Unit != nil && *p.Unit == "" {
		return errors.New("unit is empty")
	}

	if p.Price != nil && p.Price.IsNegative() {
		return fmt.Errorf("price[%s] is negative", p.Price)
	}

	return nil
}

// ApplyTo merges the patch onto an existing product, field by field.
func (p ProductPatch) ApplyTo(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Unit != nil {
		product.Unit = *p.Unit
	}
	if p.ImageURL != nil {
		product.ImageURL = p.ImageURL
	}
	return product
}
