// Package security provides session token utilities
package security

import (
	"errors"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/session"
	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateSessionToken creates a signed token carrying the authenticated
// identity for the route-gating middleware.
func GenerateSessionToken(id session.Identity, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username":    id.Username,
		"displayName": id.DisplayName,
		"profileRef":  id.ProfileRef,
		"type":        "session_auth",
		"iat":         time.Now().UTC().Unix(),
		"exp":         time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GetIdentityFromClaims extracts the session identity from token claims.
func GetIdentityFromClaims(claims jwt.MapClaims) *session.Identity {
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil
	}

	id := &session.Identity{
		Username:        username,
		IsAuthenticated: true,
	}
	if displayName, ok := claims["displayName"].(string); ok {
		id.DisplayName = displayName
	}
	if profileRef, ok := claims["profileRef"].(string); ok {
		id.ProfileRef = profileRef
	}
	return id
}
