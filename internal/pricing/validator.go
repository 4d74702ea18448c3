// Package pricing resolves authoritative prices for a submitted cart.
//
// The catalog is the only pricing input: whatever the client cached for
// display is ignored, so tampering with a client-side price field can never
// change the computed total. Validation is a pure read + compute step; given
// the same catalog snapshot, identical input always yields identical output.
package pricing

import (
	"context"
	"math"

	"github.com/google/uuid"

	"sol-storefront/internal/domain"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
)

// Catalog is the read surface the validator needs from the product store.
type Catalog interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
}

type Validator struct {
	catalog Catalog
}

func NewValidator(catalog Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate resolves every line against the catalog and computes the order
// total. It fails on the first unknown or inactive product and on any
// quantity outside [1,100]. The total is accumulated in integer cents and
// rounded to two fraction digits, USD style.
func (v *Validator) Validate(ctx context.Context, lines []domain.CartLine) (*domain.ValidatedOrder, error) {
	if len(lines) == 0 {
		return nil, &domain.ValidationError{Code: domain.EmptyOrder}
	}

	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}

	products, err := v.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	validated := make([]domain.ValidatedOrderLine, 0, len(lines))
	var totalCents int64
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, &domain.ValidationError{Code: domain.UnknownProduct, ProductID: l.ProductID.String()}
		}
		if !p.IsActive {
			return nil, &domain.ValidationError{Code: domain.InactiveProduct, ProductID: l.ProductID.String()}
		}
		if l.Quantity < MinQuantity || l.Quantity > MaxQuantity {
			return nil, &domain.ValidationError{Code: domain.InvalidQuantity, ProductID: l.ProductID.String()}
		}

		unitCents := int64(math.Round(p.Price * 100))
		totalCents += unitCents * int64(l.Quantity)
		validated = append(validated, domain.ValidatedOrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: float64(unitCents) / 100,
			Quantity:  l.Quantity,
		})
	}

	return &domain.ValidatedOrder{
		Lines: validated,
		Total: float64(totalCents) / 100,
	}, nil
}
