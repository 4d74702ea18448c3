package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sol-storefront/internal/auth"
	"sol-storefront/internal/domain"
	"sol-storefront/internal/repo"
)

type upsertProductRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	AccentColor string  `json:"accent_color"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Server) handleUpsertProduct(c *gin.Context) {
	var req upsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	p := domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		AccentColor: req.AccentColor,
		IsActive:    true,
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		p.ID = id
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	saved, err := s.admin.UpsertProduct(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": productViews([]domain.Product{saved})[0]})
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	if err := s.admin.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (s *Server) handleSetProductActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}
	if err := s.admin.SetProductActive(c.Request.Context(), id, req.IsActive); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAdminListProducts(c *gin.Context) {
	products, err := s.admin.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productViews(products)})
}

func (s *Server) handleAdminListOrders(c *gin.Context) {
	orders, err := s.admin.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}
	if err := s.admin.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		if err == domain.ErrOrderNotFound {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type adminSetupRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// handleAdminSetup grants the admin role to the authenticated caller when
// the setup secret matches. This is the bootstrap path for the first admin.
func (s *Server) handleAdminSetup(c *gin.Context) {
	var req adminSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}
	if s.cfg.AdminSetupSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(s.cfg.AdminSetupSecret)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid setup secret"})
		return
	}

	ident := auth.IdentityFrom(c)
	if err := s.roles.Grant(c.Request.Context(), ident.UserID, repo.RoleAdmin); err != nil {
		s.log.WithError(err).Error("grant admin role failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
