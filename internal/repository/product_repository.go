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

var ErrProductNotFound = errors.New("product not found")

type productRepository struct {
	db DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

const productColumns = "id, name, category, price::text, unit, image_url"

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	return getProduct(ctx, r.db, productID, "")
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if err := product.Validate(); err != nil {
		return p, fmt.Errorf("product.Validate: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO products (name, category, price, unit, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+productColumns,
		product.Name, product.Category, product.Price.String(), product.Unit, product.ImageURL)

	p, err := scanProduct(row)
	if err != nil {
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, productID int64, patch domain.ProductPatch) (domain.Product, error) {
	var p domain.Product

	if productID <= 0 {
		return p, fmt.Errorf("productID is empty")
	}

	if err := patch.Validate(); err != nil {
		return p, fmt.Errorf("patch.Validate: %w", err)
	}

	product, err := withTx(ctx, r.db, func(tx pgx.Tx) (domain.Product, error) {
		existing, err := getProduct(ctx, tx, productID, " FOR UPDATE")
		if err != nil {
			return p, fmt.Errorf("getProduct: %w", err)
		}

		updated := patch.ApplyTo(existing)

		row := tx.QueryRow(ctx,
			`UPDATE products
			 SET name = $2, category = $3, price = $4, unit = $5, image_url = $6
			 WHERE id = $1
			 RETURNING `+productColumns,
			productID, updated.Name, updated.Category, updated.Price.String(), updated.Unit, updated.ImageURL)

		result, err := scanProduct(row)
		if err != nil {
			return p, fmt.Errorf("scanProduct: %w", err)
		}

		return result, nil
	})
	if err != nil {
		return p, fmt.Errorf("withTx: %w", err)
	}

	return product, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID int64) (bool, error) {
	if productID <= 0 {
		return false, fmt.Errorf("productID is empty")
	}

	cmdTag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func getProduct(ctx context.Context, db DBTX, productID int64, suffix string) (domain.Product, error) {
	var p domain.Product

	row := db.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1"+suffix, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrProductNotFound
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p         domain.Product
		priceText string
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Category, &priceText, &p.Unit, &p.ImageURL); err != nil {
		return p, err
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return p, fmt.Errorf("decimal.NewFromString[%s]: %w", priceText, err)
	}
	p.Price = price

	return p, nil
}
