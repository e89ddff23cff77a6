// internal/interfaces/http/handlers/storage.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/domain/packs"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// StorageHandler handles pack storage ledger endpoints
type StorageHandler struct {
	packsService *packs.Service
	config       *config.Config
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(db *gorm.DB, cfg *config.Config) *StorageHandler {
	eventService := event.NewService(db, cfg)
	return &StorageHandler{
		packsService: packs.NewService(db, cfg, eventService),
		config:       cfg,
	}
}

// GetBalances handles GET /storage
func (h *StorageHandler) GetBalances(c *gin.Context) {
	balances, err := h.packsService.Balances()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve pack balances",
		})
		return
	}

	c.JSON(http.StatusOK, balances)
}

// GetHistory handles GET /storage/history/:customerId
func (h *StorageHandler) GetHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("customerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	history, err := h.packsService.History(uint(id))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve pack history",
		})
		return
	}

	c.JSON(http.StatusOK, history)
}

// Update handles POST /storage/update
func (h *StorageHandler) Update(c *gin.Context) {
	var req packs.ApplyChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	balance, err := h.packsService.ApplyChange(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pack balance updated successfully",
		"data":    balance,
	})
}
