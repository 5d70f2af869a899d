// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// WishlistHandlers serves the session-scoped wishlist membership set.
type WishlistHandlers struct {
	wishlists   *services.WishlistService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewWishlistHandlers creates wishlist handlers with injected dependencies
func NewWishlistHandlers(wishlists *services.WishlistService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *WishlistHandlers {
	return &WishlistHandlers{
		wishlists:   wishlists,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandlers) GetWishlist(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	set := h.wishlists.Get(id.Username)
	c.JSON(http.StatusOK, gin.H{"ids": set.IDs(), "count": set.Len()})
}

// PostToggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandlers) PostToggle(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:wishlist_toggle")
	defer marker.Complete()

	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		ID int `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Catalog().Error("Wishlist toggle JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	set, member := h.wishlists.Toggle(id.Username, req.ID)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"ids": set.IDs(), "count": set.Len(), "member": member})
}
