// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg),
		config:           cfg,
	}
}

// GetItems handles GET /inventory
func (h *InventoryHandler) GetItems(c *gin.Context) {
	items, err := h.inventoryService.GetItems()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve inventory",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetStatus handles GET /inventory/status
func (h *InventoryHandler) GetStatus(c *gin.Context) {
	items, err := h.inventoryService.GetStatus()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve inventory status",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddItem handles POST /inventory/add
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req inventory.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.inventoryService.AddItem(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product registered successfully",
		"data":    item,
	})
}

// UpdateItem handles PUT /inventory/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory ID",
		})
		return
	}

	var req inventory.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.inventoryService.UpdateItem(uint(id), &req); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item updated successfully",
	})
}

// DeleteItem handles DELETE /inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory ID",
		})
		return
	}

	if err := h.inventoryService.DeleteItem(uint(id)); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item deleted successfully",
	})
}
