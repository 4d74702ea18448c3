package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sol-storefront/internal/domain"
	"sol-storefront/internal/infrastructure/paypal"
	"sol-storefront/internal/pricing"
	"sol-storefront/internal/repo"
	"sol-storefront/internal/shipping"
)

// amountEpsilon is the tolerance when reconciling the provider-captured
// amount against the freshly revalidated total.
const amountEpsilon = 0.01

type CheckoutService interface {
	// CreatePaymentOrder revalidates pricing against the catalog, validates
	// the shipping block, and mints a provider-side payment intent for the
	// validated total. Nothing is persisted locally; the returned provider
	// order id is the only artifact of this phase.
	CreatePaymentOrder(ctx context.Context, ident *domain.Identity, lines []domain.CartLine, info domain.ShippingInfo) (string, error)

	// CaptureAndRecord finalizes the payment and records the order. The two
	// phases share no server-side state: the client resubmits the same line
	// set and the server re-derives truth both times. The provider capture
	// must succeed before any order row is written; after it succeeds, a
	// failed write is logged but the operation still reports success, since
	// the money has already moved.
	//
	// At-most-once order persistence has two layers: the provider refuses a
	// second capture of the same order, and the order store's uniqueness
	// constraint on the provider order id rejects a replayed insert.
	CaptureAndRecord(ctx context.Context, ident *domain.Identity, providerOrderID string, lines []domain.CartLine, info domain.ShippingInfo) (string, error)
}

type checkoutService struct {
	validator *pricing.Validator
	gateway   paypal.Gateway
	orders    repo.OrderRepo
	log       *logrus.Entry
}

func NewCheckoutService(
	validator *pricing.Validator,
	gateway paypal.Gateway,
	orders repo.OrderRepo,
	log *logrus.Entry,
) CheckoutService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &checkoutService{
		validator: validator,
		gateway:   gateway,
		orders:    orders,
		log:       log,
	}
}

func (s *checkoutService) CreatePaymentOrder(ctx context.Context, ident *domain.Identity, lines []domain.CartLine, info domain.ShippingInfo) (string, error) {
	if ident == nil {
		return "", domain.ErrUnauthenticated
	}

	validated, err := s.validator.Validate(ctx, lines)
	if err != nil {
		return "", err
	}
	if err := shipping.Validate(info); err != nil {
		return "", err
	}

	orderID, err := s.gateway.CreateOrder(ctx, validated, info, shipping.CountryCode(info.Country))
	if err != nil {
		s.log.WithError(err).WithField("total", validated.Total).Error("provider order creation failed")
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"provider_order_id": orderID,
		"total":             validated.Total,
		"lines":             len(validated.Lines),
	}).Info("payment order created")
	return orderID, nil
}

func (s *checkoutService) CaptureAndRecord(ctx context.Context, ident *domain.Identity, providerOrderID string, lines []domain.CartLine, info domain.ShippingInfo) (string, error) {
	if ident == nil {
		return "", domain.ErrUnauthenticated
	}

	// Re-derive the total independently of the create call; a catalog
	// change in between legitimately shifts it, which surfaces below as a
	// reconciliation warning rather than a hard failure.
	validated, err := s.validator.Validate(ctx, lines)
	if err != nil {
		return "", err
	}

	result, err := s.gateway.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		s.log.WithError(err).WithField("provider_order_id", providerOrderID).Error("capture failed")
		return "", err
	}

	if math.Abs(result.Amount-validated.Total) > amountEpsilon {
		s.log.WithFields(logrus.Fields{
			"provider_order_id": providerOrderID,
			"captured_amount":   result.Amount,
			"validated_total":   validated.Total,
		}).Warn("captured amount does not match revalidated total")
	}

	email := ident.Email
	if email == "" {
		email = info.Email
	}

	order := &domain.Order{
		ID:                uuid.New(),
		CustomerEmail:     email,
		TotalAmount:       result.Amount,
		Items:             validated.Lines,
		ShippingAddress:   info,
		Status:            domain.OrderPaid,
		ProviderOrderID:   providerOrderID,
		ProviderCaptureID: result.CaptureID,
		CreatedAt:         time.Now().UTC(),
	}

	switch err := s.orders.Insert(ctx, order); {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateOrder):
		s.log.WithField("provider_order_id", providerOrderID).Warn("order already recorded, skipping insert")
	default:
		// Funds are captured; losing the local record is lower severity
		// than reporting a failed payment that succeeded.
		s.log.WithError(err).WithFields(logrus.Fields{
			"provider_order_id":   providerOrderID,
			"provider_capture_id": result.CaptureID,
		}).Error("payment captured but order storage failed")
	}

	s.log.WithFields(logrus.Fields{
		"provider_order_id":   providerOrderID,
		"provider_capture_id": result.CaptureID,
		"amount":              result.Amount,
	}).Info("payment captured")
	return result.CaptureID, nil
}
