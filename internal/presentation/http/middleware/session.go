package middleware

import (
	"net/http"
	"strings"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/domain/session"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/security"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
	"github.com/gin-gonic/gin"
)

const identityContextKey = "sessionIdentity"

// SessionMiddleware gates routes that require an authenticated session.
// Requests are refused while the session is Unauthenticated, Authenticating,
// or LoggingOut, and when the session token is missing or invalid.
func SessionMiddleware(sessions *services.SessionService, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated() {
			logger.Auth().Warn("Gated route refused: session not authenticated", "path", c.Request.URL.Path, "state", sessions.CurrentState().String())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		token := extractSessionToken(c)
		if token == "" {
			logger.Auth().Warn("Gated route refused: no session token", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := security.ValidateJWT(token, config.JWTSecret)
		if err != nil {
			logger.Auth().Warn("Gated route refused: invalid session token", "path", c.Request.URL.Path, "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		id := security.GetIdentityFromClaims(claims)
		if id == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		logger.Debug().Debug("Session token accepted", "path", c.Request.URL.Path, "username", id.Username)
		c.Set(identityContextKey, *id)
		c.Next()
	}
}

// GetIdentity returns the authenticated identity placed by SessionMiddleware.
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return session.Anonymous(), false
	}
	id, ok := value.(session.Identity)
	return id, ok
}

func extractSessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie(config.SessionCookieKey); err == nil {
		return cookie
	}
	return ""
}
