package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-storefront/internal/domain"
)

type fakeCatalog struct {
	products map[uuid.UUID]domain.Product
	batches  [][]uuid.UUID
}

func (f *fakeCatalog) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	f.batches = append(f.batches, ids)
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newCatalog(products ...domain.Product) *fakeCatalog {
	m := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeCatalog{products: m}
}

func activeProduct(name string, price float64) domain.Product {
	return domain.Product{ID: uuid.New(), Name: name, Price: price, IsActive: true}
}

func TestValidateTotalFromCatalogOnly(t *testing.T) {
	hoodie := activeProduct("Hoodie", 18.50)
	tee := activeProduct("Tee", 25.00)
	v := NewValidator(newCatalog(hoodie, tee))

	order, err := v.Validate(context.Background(), []domain.CartLine{
		{ProductID: hoodie.ID, Quantity: 2},
		{ProductID: tee.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 62.00, order.Total, 0.001)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 18.50, order.Lines[0].UnitPrice)
	assert.Equal(t, "Hoodie", order.Lines[0].Name)
}

func TestValidateUnknownProduct(t *testing.T) {
	v := NewValidator(newCatalog())
	missing := uuid.New()

	order, err := v.Validate(context.Background(), []domain.CartLine{{ProductID: missing, Quantity: 1}})
	assert.Nil(t, order)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.UnknownProduct, verr.Code)
	assert.Equal(t, missing.String(), verr.ProductID)
}

func TestValidateInactiveProduct(t *testing.T) {
	retired := domain.Product{ID: uuid.New(), Name: "Retired", Price: 10, IsActive: false}
	v := NewValidator(newCatalog(retired))

	_, err := v.Validate(context.Background(), []domain.CartLine{{ProductID: retired.ID, Quantity: 1}})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.InactiveProduct, verr.Code)
}

func TestValidateQuantityBounds(t *testing.T) {
	p := activeProduct("Hoodie", 18.50)
	v := NewValidator(newCatalog(p))
	ctx := context.Background()

	for _, qty := range []int{0, -1, 101} {
		_, err := v.Validate(ctx, []domain.CartLine{{ProductID: p.ID, Quantity: qty}})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "quantity %d", qty)
		assert.Equal(t, domain.InvalidQuantity, verr.Code, "quantity %d", qty)
	}

	for _, qty := range []int{1, 100} {
		order, err := v.Validate(ctx, []domain.CartLine{{ProductID: p.ID, Quantity: qty}})
		require.NoError(t, err, "quantity %d", qty)
		assert.InDelta(t, 18.50*float64(qty), order.Total, 0.001)
	}
}

func TestValidateEmptyInput(t *testing.T) {
	v := NewValidator(newCatalog())

	_, err := v.Validate(context.Background(), nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.EmptyOrder, verr.Code)
}

func TestValidateDeterministic(t *testing.T) {
	hoodie := activeProduct("Hoodie", 18.50)
	tee := activeProduct("Tee", 25.00)
	v := NewValidator(newCatalog(hoodie, tee))
	lines := []domain.CartLine{
		{ProductID: hoodie.ID, Quantity: 3},
		{ProductID: tee.ID, Quantity: 7},
	}

	first, err := v.Validate(context.Background(), lines)
	require.NoError(t, err)
	second, err := v.Validate(context.Background(), lines)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateBatchesCatalogFetch(t *testing.T) {
	hoodie := activeProduct("Hoodie", 18.50)
	tee := activeProduct("Tee", 25.00)
	catalog := newCatalog(hoodie, tee)
	v := NewValidator(catalog)

	_, err := v.Validate(context.Background(), []domain.CartLine{
		{ProductID: hoodie.ID, Quantity: 1},
		{ProductID: tee.ID, Quantity: 1},
		{ProductID: hoodie.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, catalog.batches, 1, "expected a single batch fetch, not N+1")
	assert.Len(t, catalog.batches[0], 2, "duplicate ids should be collapsed")
}

func TestValidateRoundsToCents(t *testing.T) {
	// 0.1+0.2 style float drift must not leak into totals.
	p := activeProduct("Sticker", 0.10)
	q := activeProduct("Patch", 0.20)
	v := NewValidator(newCatalog(p, q))

	order, err := v.Validate(context.Background(), []domain.CartLine{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: q.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.30, order.Total)
}
