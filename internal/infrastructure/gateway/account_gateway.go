// Package gateway is the boundary to the remote account service. It issues
// the HTTP calls and normalizes every transport outcome into a typed result;
// no transport detail leaks past this package.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/session"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
)

// User-facing messages for the fixed failure classification.
const (
	MsgCannotReachServer  = "Cannot reach the server. Please check your connection and try again."
	MsgInvalidCredentials = "Invalid username or password."
	MsgAlreadyExists      = "An account with this username or email already exists."
	MsgServerUnavailable  = "The server is unavailable right now. Please try again later."
)

// NormalizedResult is the only shape callers ever see: success or a
// classified user-facing message, plus the identity on success.
type NormalizedResult struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message,omitempty"`
	User         *session.Identity `json:"user,omitempty"`
	Unauthorized bool              `json:"-"` // 401 observed; treated upstream as a forced-logout signal
}

// LoginPayload is the login request body. Field names are part of the
// account service's wire contract and must not change.
type LoginPayload struct {
	UserName   string `json:"userName"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterPayload is the register request body, same contract rules.
type RegisterPayload struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	RoleName        string `json:"roleName"`
}

// AccountGateway is the contract the session service depends on.
type AccountGateway interface {
	Login(ctx context.Context, payload LoginPayload) *NormalizedResult
	Register(ctx context.Context, payload RegisterPayload) *NormalizedResult
	Logout(ctx context.Context) *NormalizedResult
}

// HTTPAccountGateway talks to the account service over HTTP.
type HTTPAccountGateway struct {
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger
}

// NewHTTPAccountGateway creates a gateway bound to the given base URL with a
// per-request timeout.
func NewHTTPAccountGateway(baseURL string, timeout time.Duration, logger *logging.ChanneledLogger) *HTTPAccountGateway {
	return &HTTPAccountGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// accountResponse is the account service's response envelope.
type accountResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	User    *session.Identity `json:"user,omitempty"`
}

// Login calls POST /api/account/login.
func (g *HTTPAccountGateway) Login(ctx context.Context, payload LoginPayload) *NormalizedResult {
	return g.post(ctx, "/api/account/login", payload)
}

// Register calls POST /api/account/register.
func (g *HTTPAccountGateway) Register(ctx context.Context, payload RegisterPayload) *NormalizedResult {
	return g.post(ctx, "/api/account/register", payload)
}

// Logout calls POST /api/account/logout with no body.
func (g *HTTPAccountGateway) Logout(ctx context.Context) *NormalizedResult {
	return g.post(ctx, "/api/account/logout", nil)
}

// post issues one call and folds every outcome into a NormalizedResult.
func (g *HTTPAccountGateway) post(ctx context.Context, path string, payload any) *NormalizedResult {
	start := time.Now()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			g.logger.Gateway().Error("Failed to encode request payload", "path", path, "error", err.Error())
			return &NormalizedResult{Success: false, Message: MsgServerUnavailable}
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, body)
	if err != nil {
		g.logger.Gateway().Error("Failed to build request", "path", path, "error", err.Error())
		return &NormalizedResult{Success: false, Message: MsgServerUnavailable}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// No response received: network failure or timeout.
		g.logger.Gateway().Warn("Account service unreachable", "path", path, "error", err.Error(), "duration", time.Since(start))
		return &NormalizedResult{Success: false, Message: MsgCannotReachServer}
	}
	defer resp.Body.Close()

	g.logger.Gateway().Debug("Account service responded", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &NormalizedResult{Success: false, Message: MsgInvalidCredentials, Unauthorized: true}
	case resp.StatusCode == http.StatusConflict:
		return &NormalizedResult{Success: false, Message: MsgAlreadyExists}
	case resp.StatusCode >= 500:
		return &NormalizedResult{Success: false, Message: MsgServerUnavailable}
	}

	var parsed accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		g.logger.Gateway().Error("Failed to decode account service response", "path", path, "error", err.Error())
		return &NormalizedResult{Success: false, Message: MsgServerUnavailable}
	}

	result := &NormalizedResult{
		Success: parsed.Success,
		Message: parsed.Message,
		User:    parsed.User,
	}
	if !parsed.Success && result.Message == "" {
		result.Message = fmt.Sprintf("Request failed (%d).", resp.StatusCode)
	}
	return result
}
