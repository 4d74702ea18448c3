package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"sol-storefront/internal/auth"
	"sol-storefront/internal/config"
	"sol-storefront/internal/database"
	"sol-storefront/internal/infrastructure/paypal"
	"sol-storefront/internal/notify"
	"sol-storefront/internal/pricing"
	"sol-storefront/internal/repo"
	"sol-storefront/internal/server"
	"sol-storefront/internal/service"
	"sol-storefront/pkg/metrics"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	log := logrus.WithField("service", "storefront")

	ctx := context.Background()
	cfg := config.Load()

	db, err := database.Open(cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	productRepo := repo.NewProductRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	roleRepo := repo.NewRoleRepo(db)

	validator := pricing.NewValidator(productRepo)
	gateway := paypal.NewClient(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalSecret)
	checkout := service.NewCheckoutService(validator, gateway, orderRepo, log.WithField("component", "checkout"))
	admin := service.NewAdminService(productRepo, orderRepo)

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	notifier := notify.NewNotifier(cfg.DiscordWebhookURL, log.WithField("component", "notify"))
	go notifier.Run(ctx)

	m := metrics.NewServerMetrics("api")

	srv := server.New(cfg, db, checkout, admin, productRepo, roleRepo, tokens, notifier, m, log)
	log.WithField("addr", cfg.Addr).Info("starting server")
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
