// internal/interfaces/http/handlers/event.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventService *event.Service
	config       *config.Config
}

// NewEventHandler creates a new event handler
func NewEventHandler(db *gorm.DB, cfg *config.Config) *EventHandler {
	return &EventHandler{
		eventService: event.NewService(db, cfg),
		config:       cfg,
	}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": "Failed to retrieve events",
		})
		return
	}

	c.JSON(http.StatusOK, events)
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.eventService.Create(&req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"data":    created,
	})
}

// Register handles POST /events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event ID",
		})
		return
	}

	var req event.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reg, err := h.eventService.Register(uint(id), &req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer registered successfully",
		"data":    reg,
	})
}
