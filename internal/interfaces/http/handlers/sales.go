// internal/interfaces/http/handlers/sales.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/domain/sales"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// SalesHandler handles customer order endpoints
type SalesHandler struct {
	salesService *sales.Service
	config       *config.Config
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(db *gorm.DB, cfg *config.Config) *SalesHandler {
	invService := inventory.NewService(db, cfg)
	return &SalesHandler{
		salesService: sales.NewService(db, cfg, invService),
		config:       cfg,
	}
}

// Create handles POST /sales
func (h *SalesHandler) Create(c *gin.Context) {
	var req sales.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.salesService.Create(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    order,
	})
}

// History handles GET /sales/history
func (h *SalesHandler) History(c *gin.Context) {
	orders, err := h.salesService.History(c.Query("search"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve sales history",
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Preorders handles GET /sales/preorders
func (h *SalesHandler) Preorders(c *gin.Context) {
	orders, err := h.salesService.Preorders()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve preorders",
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// RecordPayment handles PUT /sales/:id/payment
func (h *SalesHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req sales.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.salesService.RecordPayment(uint(id), &req)
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
