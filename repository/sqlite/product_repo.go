package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type productRepository struct {
	db *infra.Manager
}

// NewProductRepository returns a SQLite-backed ProductRepository.
func NewProductRepository(db *infra.Manager) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, businessID int64) ([]domain.Product, error) {
	const query = `
	SELECT id, business_id, name, COALESCE(type, 'Service'), COALESCE(price, 0), description, COALESCE(created_at, '')
	FROM products
	WHERE business_id = ?
	ORDER BY created_at DESC, id DESC
	`

	products := []domain.Product{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				p    domain.Product
				desc sql.NullString
			)
			if err := rows.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Type, &p.Price, &desc, &p.CreatedAt); err != nil {
				return err
			}
			p.Description = desc.String
			products = append(products, p)
		}
		return rows.Err()
	})
	return products, err
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidPayload
	}
	if product.Type == "" {
		product.Type = domain.ProductTypeService
	}

	err := r.db.Do(ctx, func(db *sql.DB) error {
		if product.ID != 0 {
			res, err := db.ExecContext(ctx,
				`UPDATE products SET name = ?, type = ?, price = ?, description = ? WHERE id = ?`,
				product.Name, product.Type, money(product.Price), nullString(product.Description), product.ID,
			)
			if err != nil {
				return classify(err)
			}
			return affected(res, domain.ErrProductNotFound)
		}

		return classify(db.QueryRowContext(ctx,
			`INSERT INTO products (business_id, name, type, price, description) VALUES (?, ?, ?, ?, ?) RETURNING id, created_at`,
			product.BusinessID, product.Name, product.Type, money(product.Price), nullString(product.Description),
		).Scan(&product.ID, &product.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrProductNotFound)
	})
}
