// Package server wires the HTTP surface: public catalog and checkout
// endpoints, the admin group, the visit sink, health and metrics.
package server

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sol-storefront/internal/auth"
	"sol-storefront/internal/config"
	"sol-storefront/internal/database"
	"sol-storefront/internal/notify"
	"sol-storefront/internal/repo"
	"sol-storefront/internal/service"
	"sol-storefront/pkg/metrics"
)

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	db       *sql.DB
	checkout service.CheckoutService
	admin    service.AdminService
	products repo.ProductRepo
	roles    repo.RoleRepo
	tokens   *auth.TokenManager
	notifier *notify.Notifier
	metrics  *metrics.ServerMetrics
	log      *logrus.Entry
}

func New(
	cfg config.Config,
	db *sql.DB,
	checkout service.CheckoutService,
	admin service.AdminService,
	products repo.ProductRepo,
	roles repo.RoleRepo,
	tokens *auth.TokenManager,
	notifier *notify.Notifier,
	m *metrics.ServerMetrics,
	log *logrus.Entry,
) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		cfg:      cfg,
		db:       db,
		checkout: checkout,
		admin:    admin,
		products: products,
		roles:    roles,
		tokens:   tokens,
		notifier: notifier,
		metrics:  m,
		log:      log,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))
	if s.metrics != nil {
		r.Use(s.measure())
	}

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", s.handleListProducts)
		api.GET("/paypal/client-id", s.handlePayPalClientID)
		api.POST("/visits", s.handleTrackVisit)

		authed := api.Group("", auth.Middleware(s.tokens))
		{
			authed.POST("/paypal/orders", s.handleCreatePaymentOrder)
			authed.POST("/paypal/orders/capture", s.handleCapturePaymentOrder)
			authed.POST("/admin/setup", s.handleAdminSetup)
		}

		admin := api.Group("/admin", auth.Middleware(s.tokens), auth.RequireAdmin(s.roles, repo.RoleAdmin))
		{
			admin.GET("/products", s.handleAdminListProducts)
			admin.POST("/products", s.handleUpsertProduct)
			admin.DELETE("/products/:id", s.handleDeleteProduct)
			admin.PATCH("/products/:id/active", s.handleSetProductActive)
			admin.GET("/orders", s.handleAdminListOrders)
			admin.PATCH("/orders/:id/status", s.handleUpdateOrderStatus)
		}
	}

	return r
}

// measure records per-handler request counts and latency, nazeru style.
func (s *Server) measure() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		s.metrics.Requests.WithLabelValues(handler, status).Inc()
		s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, database.Health(c.Request.Context(), s.db))
}

func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Addr)
}

// Engine exposes the router for handler tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
