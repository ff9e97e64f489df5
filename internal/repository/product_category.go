package repository

import (
	"context"
	"database/sql"

	"catalog-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type postgresProductCategoryRepository struct {
	db *sql.DB
}

func NewPostgresProductCategoryRepository(db *sql.DB) *postgresProductCategoryRepository {
	return &postgresProductCategoryRepository{db: db}
}

func (r *postgresProductCategoryRepository) List(ctx context.Context) ([]domain.ProductCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT id, name, label, created_at
	          FROM product_categories
	          ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list product categories")
		return nil, wrapStorage("list categories", err)
	}
	defer rows.Close()

	categories := []domain.ProductCategory{}
	for rows.Next() {
		var cat domain.ProductCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Label, &cat.CreatedAt); err != nil {
			return nil, wrapStorage("list categories", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStorage("list categories", err)
	}
	return categories, nil
}

// Create relies on the unique index on name; a conflict is reported as
// domain.ErrDuplicateCategory.
func (r *postgresProductCategoryRepository) Create(ctx context.Context, cat domain.ProductCategory) (*domain.ProductCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO product_categories (name, label)
	          VALUES ($1, $2)
	          RETURNING id, name, label, created_at`

	var created domain.ProductCategory
	err := r.db.QueryRowContext(ctx, query, cat.Name, cat.Label).Scan(
		&created.ID,
		&created.Name,
		&created.Label,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCategory
		}
		log.WithError(err).WithFields(log.Fields{
			"name":  cat.Name,
			"label": cat.Label,
		}).Error("Failed to create product category")
		return nil, wrapStorage("create category", err)
	}

	return &created, nil
}

func (r *postgresProductCategoryRepository) UpdateLabel(ctx context.Context, name, label string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `UPDATE product_categories SET label = $1 WHERE name = $2`, label, name)
	if err != nil {
		log.WithError(err).WithField("category", name).Error("Failed to update product category")
		return wrapStorage("update category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStorage("update category", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes the row unconditionally. Callers go through the category
// guard, which checks product references first.
func (r *postgresProductCategoryRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM product_categories WHERE name = $1`, name)
	if err != nil {
		log.WithError(err).WithField("category", name).Error("Failed to delete product category")
		return wrapStorage("delete category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStorage("delete category", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}
