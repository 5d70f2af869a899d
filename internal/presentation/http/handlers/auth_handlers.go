// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/gateway"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/security"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// AuthHandlers contains all session-related HTTP handlers
type AuthHandlers struct {
	sessions    *services.SessionService
	wishlists   *services.WishlistService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(sessions *services.SessionService, wishlists *services.WishlistService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		sessions:    sessions,
		wishlists:   wishlists,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/v1/auth/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("http:post_login")
	defer marker.Complete()

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Login request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	result := h.sessions.Login(c.Request.Context(), req)

	if !result.Success {
		marker.SetSuccess(false)
		if len(result.FieldErrors) > 0 {
			c.JSON(http.StatusBadRequest, result)
			return
		}
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	h.setSessionCookie(c, result)
	h.logger.Auth().Info("Login request completed", "username", result.User.Username, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// PostRegister handles POST /api/v1/auth/register
func (h *AuthHandlers) PostRegister(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("http:post_register")
	defer marker.Complete()

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Register request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	result := h.sessions.Register(c.Request.Context(), req)

	if !result.Success {
		marker.SetSuccess(false)
		switch {
		case len(result.FieldErrors) > 0:
			c.JSON(http.StatusBadRequest, result)
		case result.Message == gateway.MsgAlreadyExists:
			c.JSON(http.StatusConflict, result)
		default:
			c.JSON(http.StatusUnauthorized, result)
		}
		return
	}

	h.setSessionCookie(c, result)
	h.logger.Auth().Info("Register request completed", "username", result.User.Username, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// PostLogout handles POST /api/v1/auth/logout
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:post_logout")
	defer marker.Complete()

	username := h.sessions.CurrentIdentity().Username

	result := h.sessions.Logout(c.Request.Context())

	if username != "" {
		h.wishlists.Clear(username)
	}

	// Expire the session cookie regardless of the remote outcome.
	c.SetCookie(config.SessionCookieKey, "", -1, "/", "", false, true)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// GetStatus handles GET /api/v1/auth/status
func (h *AuthHandlers) GetStatus(c *gin.Context) {
	state := h.sessions.CurrentState()

	response := gin.H{
		"state":         state.String(),
		"authenticated": h.sessions.IsAuthenticated(),
	}
	if h.sessions.IsAuthenticated() {
		id := h.sessions.CurrentIdentity()
		response["user"] = id
	}

	c.JSON(http.StatusOK, response)
}

// setSessionCookie mints the signed session token for the gated routes.
func (h *AuthHandlers) setSessionCookie(c *gin.Context, result *services.AuthResult) {
	token, err := security.GenerateSessionToken(*result.User, config.JWTSecret, config.SessionTokenTTL)
	if err != nil {
		h.logger.Auth().Error("Failed to generate session token", "error", err.Error())
		return
	}

	c.SetCookie(
		config.SessionCookieKey,              // name
		token,                                // value
		int(config.SessionTokenTTL.Seconds()), // maxAge
		"/",                                  // path
		"",                                   // domain (empty for current domain)
		false,                                // secure (set to true in production)
		true,                                 // httpOnly
	)
}
