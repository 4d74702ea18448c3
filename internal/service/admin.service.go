package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sol-storefront/internal/domain"
	"sol-storefront/internal/repo"
)

// AdminService is the thin management surface behind the admin panel:
// product lifecycle and order status transitions. No checkout logic lives
// here.
type AdminService interface {
	UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type adminService struct {
	products repo.ProductRepo
	orders   repo.OrderRepo
}

func NewAdminService(products repo.ProductRepo, orders repo.OrderRepo) AdminService {
	return &adminService{products: products, orders: orders}
}

func (s *adminService) UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return domain.Product{}, fmt.Errorf("product price must be non-negative")
	}
	if err := s.products.Upsert(ctx, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *adminService) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.products.SetActive(ctx, id, active)
}

func (s *adminService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *adminService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if !domain.KnownOrderStatus(status) {
		return fmt.Errorf("unknown order status: %s", status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
