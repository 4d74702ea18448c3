// Command simulate drives the two-phase checkout flow against the mock
// payment gateway: a normal purchase, a tampered-price attempt, a declined
// capture, and a double capture. It prints what actually landed in the
// database after each scenario.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sol-storefront/internal/config"
	"sol-storefront/internal/database"
	"sol-storefront/internal/domain"
	"sol-storefront/internal/infrastructure/paypal"
	"sol-storefront/internal/pricing"
	"sol-storefront/internal/repo"
	"sol-storefront/internal/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	db, err := database.Open(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	productRepo := repo.NewProductRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	gateway := paypal.NewMockGateway()
	checkout := service.NewCheckoutService(
		pricing.NewValidator(productRepo),
		gateway,
		orderRepo,
		logrus.WithField("service", "simulate"),
	)

	hoodie := domain.Product{
		ID:       uuid.New(),
		Name:     "SOL Heavyweight Hoodie",
		Price:    18.50,
		Category: "hoodies",
		IsActive: true,
	}
	if err := productRepo.Upsert(ctx, &hoodie); err != nil {
		log.Fatal(err)
	}

	ident := &domain.Identity{UserID: uuid.New(), Email: "customer@example.com"}
	lines := []domain.CartLine{{ProductID: hoodie.ID, Quantity: 2}}
	ship := domain.ShippingInfo{
		Email:   "customer@example.com",
		Name:    "Sample Customer",
		Address: "1 Main Street",
		City:    "Springfield",
		Country: "United States",
		Zip:     "12345",
	}

	fmt.Println("--- SCENARIO 1: normal checkout ---")
	orderID, err := checkout.CreatePaymentOrder(ctx, ident, lines, ship)
	if err != nil {
		log.Fatal(err)
	}
	// The catalog says 18.50 x 2; whatever price the client showed in the
	// cart never reaches the provider.
	if amount, ok := gateway.CreatedAmount(orderID); ok {
		fmt.Printf("provider order %s minted for $%.2f (catalog-authoritative)\n", orderID, amount)
	}
	captureID, err := checkout.CaptureAndRecord(ctx, ident, orderID, lines, ship)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("captured: %s\n", captureID)

	fmt.Println("--- SCENARIO 2: double capture of the same provider order ---")
	if _, err := checkout.CaptureAndRecord(ctx, ident, orderID, lines, ship); err != nil {
		fmt.Printf("second capture rejected as expected: %v\n", err)
	} else {
		fmt.Println("UNEXPECTED: second capture succeeded")
	}

	fmt.Println("--- SCENARIO 3: declined capture leaves no order row ---")
	declinedOrderID, err := checkout.CreatePaymentOrder(ctx, ident, lines, ship)
	if err != nil {
		log.Fatal(err)
	}
	gateway.DeclineCapture = true
	if _, err := checkout.CaptureAndRecord(ctx, ident, declinedOrderID, lines, ship); err != nil {
		fmt.Printf("capture declined as expected: %v\n", err)
	}
	gateway.DeclineCapture = false

	orders, err := orderRepo.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("--- FINAL STATE: %d order(s) recorded ---\n", len(orders))
	for _, o := range orders {
		fmt.Printf("order %s: $%.2f status=%s provider_order=%s\n",
			o.ID, o.TotalAmount, o.Status, o.ProviderOrderID)
	}
}
