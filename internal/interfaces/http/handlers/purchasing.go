// internal/interfaces/http/handlers/purchasing.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/domain/purchasing"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// PurchasingHandler handles purchase order endpoints
type PurchasingHandler struct {
	purchasingService *purchasing.Service
	config            *config.Config
}

// NewPurchasingHandler creates a new purchasing handler
func NewPurchasingHandler(db *gorm.DB, cfg *config.Config) *PurchasingHandler {
	invService := inventory.NewService(db, cfg)
	return &PurchasingHandler{
		purchasingService: purchasing.NewService(db, cfg, invService, nil),
		config:            cfg,
	}
}

// List handles GET /purchase-orders
func (h *PurchasingHandler) List(c *gin.Context) {
	var req purchasing.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	orders, err := h.purchasingService.List(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve purchase orders",
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Create handles POST /purchase-orders
func (h *PurchasingHandler) Create(c *gin.Context) {
	var req purchasing.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.purchasingService.Create(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Purchase order created successfully",
		"data":    order,
	})
}

// GetItems handles GET /purchase-orders/:id
func (h *PurchasingHandler) GetItems(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	items, err := h.purchasingService.GetItems(uint(id))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve purchase order items",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Receive handles PUT /purchase-orders/:id/receive
func (h *PurchasingHandler) Receive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	var req struct {
		Items []purchasing.ReceiveLine `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.purchasingService.Receive(uint(id), req.Items); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment received successfully",
	})
}

// RecordPayment handles PUT /purchase-orders/:id/payment
func (h *PurchasingHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	var req purchasing.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.purchasingService.RecordPayment(uint(id), &req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded successfully",
		"data":    order,
	})
}
