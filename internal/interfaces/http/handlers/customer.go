// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/customer"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *customer.Service
	config          *config.Config
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(db *gorm.DB, cfg *config.Config) *CustomerHandler {
	return &CustomerHandler{
		customerService: customer.NewService(db, cfg),
		config:          cfg,
	}
}

// List handles GET /customers and GET /customers/search
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Query("search"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customer.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.customerService.Create(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer created successfully",
		"data":    created,
	})
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	if err := h.customerService.Delete(uint(id)); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}

// History handles GET /customers/:id/history
func (h *CustomerHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	history, err := h.customerService.History(uint(id))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve customer history",
		})
		return
	}

	c.JSON(http.StatusOK, history)
}

// RecentEvents handles GET /customers/:id/recent-events
func (h *CustomerHandler) RecentEvents(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	events, err := h.customerService.RecentEvents(uint(id), limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve recent events",
		})
		return
	}

	c.JSON(http.StatusOK, events)
}
