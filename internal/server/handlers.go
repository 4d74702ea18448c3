package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sol-storefront/internal/auth"
	"sol-storefront/internal/domain"
	"sol-storefront/internal/notify"
)

type itemInput struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	Items    []itemInput         `json:"items" binding:"required"`
	Shipping domain.ShippingInfo `json:"shipping"`
}

type captureOrderRequest struct {
	OrderID  string              `json:"orderId" binding:"required"`
	Items    []itemInput         `json:"items" binding:"required"`
	Shipping domain.ShippingInfo `json:"shipping"`
}

// cartLines converts client item inputs into domain lines. An unparseable
// product id is indistinguishable from an unknown one.
func cartLines(items []itemInput) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, &domain.ValidationError{Code: domain.UnknownProduct, ProductID: it.ID}
		}
		lines = append(lines, domain.CartLine{ProductID: id, Quantity: it.Quantity})
	}
	return lines, nil
}

// writeError maps the error taxonomy onto HTTP responses. Validation errors
// carry enough detail to fix the input; provider and persistence errors are
// reduced to generic messages with the detail kept in the server log.
func writeError(c *gin.Context, err error) {
	var (
		verr *domain.ValidationError
		serr *domain.ShippingValidationError
		cerr *domain.CaptureFailedError
		perr *domain.ProviderRejectedError
	)
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &serr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping information", "fields": serr.Fields})
	case errors.As(err, &cerr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture payment"})
	case errors.As(err, &perr), errors.Is(err, domain.ErrProviderUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.products.ListActive(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("list products failed")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productViews(products)})
}

func (s *Server) handlePayPalClientID(c *gin.Context) {
	if s.cfg.PayPalClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PayPal not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientId": s.cfg.PayPalClientID})
}

func (s *Server) handleCreatePaymentOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	lines, err := cartLines(req.Items)
	if err != nil {
		writeError(c, err)
		return
	}

	orderID, err := s.checkout.CreatePaymentOrder(c.Request.Context(), auth.IdentityFrom(c), lines, req.Shipping)
	if err != nil {
		writeError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID})
}

func (s *Server) handleCapturePaymentOrder(c *gin.Context) {
	var req captureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	lines, err := cartLines(req.Items)
	if err != nil {
		writeError(c, err)
		return
	}

	captureID, err := s.checkout.CaptureAndRecord(c.Request.Context(), auth.IdentityFrom(c), req.OrderID, lines, req.Shipping)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Captures.WithLabelValues("failed").Inc()
		}
		writeError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.Captures.WithLabelValues("success").Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "captureId": captureID})
}

type visitRequest struct {
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
}

// handleTrackVisit always accepts: the sink is best-effort and its failures
// never reach the visitor.
func (s *Server) handleTrackVisit(c *gin.Context) {
	var req visitRequest
	_ = c.ShouldBindJSON(&req)

	s.notifier.Track(notify.Visit{
		Page:      req.Page,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
		IP:        c.ClientIP(),
		Country:   c.GetHeader("CF-IPCountry"),
	})
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	AccentColor string  `json:"accent_color"`
	IsActive    bool    `json:"is_active"`
}

func productViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			AccentColor: p.AccentColor,
			IsActive:    p.IsActive,
		})
	}
	return views
}
