// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/BiblioNova/bookhaven-go/internal/application/container"
	"github.com/BiblioNova/bookhaven-go/internal/presentation/http/handlers"
	"github.com/BiblioNova/bookhaven-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.SessionService, container.WishlistService, container.Logger, container.PerfTracker)
	collectionHandlers := handlers.NewCollectionHandlers(container.CatalogService, container.Logger, container.PerfTracker)
	wishlistHandlers := handlers.NewWishlistHandlers(container.WishlistService, container.Logger, container.PerfTracker)

	r.GET("/health", func(c *gin.Context) {
		stats := container.PerfTracker.GetStats()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"uptime":     stats.Uptime.String(),
			"operations": stats.TotalOperations,
			"failed":     stats.FailedCount,
		})
	})

	api := r.Group("/api/v1")
	{
		// Session operations
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/register", authHandlers.PostRegister)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetStatus)
		}

		// Catalog browsing precedes login in the portal
		api.GET("/catalog/books", collectionHandlers.GetBooks)

		// Account-scoped views require an authenticated session
		gated := api.Group("")
		gated.Use(middleware.SessionMiddleware(container.SessionService, container.Logger))
		{
			gated.GET("/loans", collectionHandlers.GetLoans)
			gated.GET("/reservations", collectionHandlers.GetReservations)
			gated.GET("/history", collectionHandlers.GetHistory)
			gated.GET("/wishlist", wishlistHandlers.GetWishlist)
			gated.POST("/wishlist/toggle", wishlistHandlers.PostToggle)
		}
	}

	return r
}
