package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"sol-storefront/internal/domain"
)

const uniqueViolation = "23505"

type OrderRepo interface {
	// Insert writes a completed order exactly once. A second insert with
	// the same provider order id returns domain.ErrDuplicateOrder.
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	List(ctx context.Context) ([]domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Insert(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	shippingAddr, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_email, total_amount, items, shipping_address, status, provider_order_id, provider_capture_id, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9)
	`, order.ID, order.CustomerEmail, order.TotalAmount, string(items), string(shippingAddr),
		order.Status, order.ProviderOrderID, order.ProviderCaptureID, order.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateOrder
	}
	return err
}

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		order        domain.Order
		items        []byte
		shippingAddr []byte
	)
	err := row.Scan(
		&order.ID,
		&order.CustomerEmail,
		&order.TotalAmount,
		&items,
		&shippingAddr,
		&order.Status,
		&order.ProviderOrderID,
		&order.ProviderCaptureID,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shippingAddr, &order.ShippingAddress); err != nil {
		return nil, err
	}
	return &order, nil
}

const orderColumns = "id, user_email, total_amount, items, shipping_address, status, provider_order_id, provider_capture_id, created_at"

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
