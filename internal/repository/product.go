package repository

import (
	"context"
	"database/sql"
	"math"

	"catalog-service/internal/domain"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const productColumns = `id, name, description, category, price, stocks, image, barcode, created_at`

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *postgresProductRepository {
	return &postgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct tolerates NULLs and out-of-range values left by older rows;
// the result always satisfies the product invariants.
func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product                     domain.Product
		description, image, barcode sql.NullString
		category                    sql.NullString
		price                       decimal.NullDecimal
		stocks                      sql.NullFloat64
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&category,
		&price,
		&stocks,
		&image,
		&barcode,
		&product.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	product.Description = description.String
	product.Category = category.String
	product.Image = image.String
	product.Barcode = barcode.String
	if price.Valid {
		product.Price = price.Decimal
	}
	if stocks.Valid && !math.IsNaN(stocks.Float64) {
		product.Stocks = int64(math.Max(0, math.Floor(stocks.Float64)))
	}

	return domain.NormalizeProduct(product), nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (r *postgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + `
	          FROM products
	          ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list products")
		return nil, wrapStorage("list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan product row")
			return nil, wrapStorage("list products", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStorage("list products", err)
	}
	return products, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p = domain.NormalizeProduct(p)

	log.WithFields(log.Fields{
		"name":     p.Name,
		"category": p.Category,
	}).Info("Creating new product")

	query := `INSERT INTO products (name, description, category, price, stocks, image, barcode)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.Stocks,
		nullIfEmpty(p.Image),
		nullIfEmpty(p.Barcode),
	))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"name":     p.Name,
			"category": p.Category,
		}).Error("Failed to create product")
		return nil, wrapStorage("create product", err)
	}

	return &product, nil
}

// Update replaces every mutable field of the product with the given ID.
func (r *postgresProductRepository) Update(ctx context.Context, p domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p = domain.NormalizeProduct(p)

	query := `UPDATE products
	          SET name = $1, description = $2, category = $3, price = $4, stocks = $5, image = $6, barcode = $7
	          WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.Stocks,
		nullIfEmpty(p.Image),
		nullIfEmpty(p.Barcode),
		p.ID,
	)
	if err != nil {
		log.WithError(err).WithField("product_id", p.ID).Error("Failed to update product")
		return wrapStorage("update product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStorage("update product", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithField("product_id", id).Info("Deleting product")

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).WithField("product_id", id).Error("Failed to delete product")
		return wrapStorage("delete product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStorage("delete product", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *postgresProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, category).Scan(&count)
	if err != nil {
		log.WithError(err).WithField("category", category).Error("Failed to count products by category")
		return 0, wrapStorage("count products", err)
	}

	return count, nil
}
