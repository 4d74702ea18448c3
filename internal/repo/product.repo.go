package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"sol-storefront/internal/domain"
)

type ProductRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Upsert(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepo {
	return &productRepo{db: db}
}

const productColumns = "id, name, description, price, category, image_url, accent_color, is_active, created_at"

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.AccentColor,
		&p.IsActive,
		&p.CreatedAt,
	)
	return p, err
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ANY($1::uuid[])",
		raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE is_active = true ORDER BY created_at DESC")
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
}

func (r *productRepo) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Upsert(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, category, image_url, accent_color, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url,
			accent_color = EXCLUDED.accent_color,
			is_active = EXCLUDED.is_active
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.AccentColor, p.IsActive, p.CreatedAt)
	return err
}

func (r *productRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE products SET is_active = $2 WHERE id = $1", id, active)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
