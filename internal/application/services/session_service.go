// Package services provides application-level orchestration services
package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/session"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/gateway"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/identity"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/security"
)

const msgAttemptSuperseded = "This sign-in attempt was superseded by a newer one."

// SessionService owns the authentication state machine: restore, login,
// register, and logout. All session state lives here; other layers read
// copies through the accessors and never mutate it directly.
type SessionService struct {
	mu           sync.Mutex
	state        session.State
	identity     session.Identity
	attemptToken string // current in-flight login/register attempt; stale resolutions are discarded

	gateway     gateway.AccountGateway
	store       *identity.Store
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSessionService creates a new session service in the unauthenticated state.
func NewSessionService(gw gateway.AccountGateway, store *identity.Store, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionService {
	return &SessionService{
		state:       session.StateUnauthenticated,
		identity:    session.Anonymous(),
		gateway:     gw,
		store:       store,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AuthResult holds the normalized outcome of a session operation. Failures
// carry a user-facing message, never a raw error.
type AuthResult struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	User        *session.Identity `json:"user,omitempty"`
}

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	UserName   string `json:"userName"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest carries the details for an account registration.
type RegisterRequest struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	RoleName        string `json:"roleName"`
}

// RestoreSession reads the persisted identity at startup. A record marked
// authenticated is trusted as-is; there is no revalidation round trip
// against the account service.
func (s *SessionService) RestoreSession() {
	marker := s.perfTracker.StartOperation("session:restore")
	defer marker.Complete()

	restored := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if restored == nil {
		s.state = session.StateUnauthenticated
		s.identity = session.Anonymous()
		s.logger.Auth().Info("No persisted session found, starting unauthenticated")
		return
	}

	s.identity = *restored
	s.state = session.StateAuthenticated
	s.logger.Auth().Info("Session restored from persisted identity", "username", restored.Username)
}

// Login validates the credentials locally, then drives the state machine
// through Authenticating and back. Validation failures never reach the
// gateway.
func (s *SessionService) Login(ctx context.Context, req LoginRequest) *AuthResult {
	start := time.Now()
	marker := s.perfTracker.StartOperation("session:login")
	defer marker.Complete()

	if fieldErrors := validateLogin(req); len(fieldErrors) > 0 {
		marker.SetSuccess(false)
		return &AuthResult{Success: false, FieldErrors: fieldErrors}
	}

	token := s.beginAttempt()

	result := s.gateway.Login(ctx, gateway.LoginPayload{
		UserName:   strings.TrimSpace(req.UserName),
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})

	return s.resolveAttempt(token, req.UserName, result, start, marker, "login")
}

// Register is structurally identical to Login against the register endpoint;
// a successful registration auto-authenticates per the account service's
// auto-login convention.
func (s *SessionService) Register(ctx context.Context, req RegisterRequest) *AuthResult {
	start := time.Now()
	marker := s.perfTracker.StartOperation("session:register")
	defer marker.Complete()

	if fieldErrors := validateRegister(req); len(fieldErrors) > 0 {
		marker.SetSuccess(false)
		return &AuthResult{Success: false, FieldErrors: fieldErrors}
	}

	roleName := req.RoleName
	if roleName == "" {
		roleName = "Student"
	}

	token := s.beginAttempt()

	result := s.gateway.Register(ctx, gateway.RegisterPayload{
		UserName:        strings.TrimSpace(req.UserName),
		Email:           strings.TrimSpace(req.Email),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		RoleName:        roleName,
	})

	return s.resolveAttempt(token, req.UserName, result, start, marker, "register")
}

// Logout drives LoggingOut and always lands in Unauthenticated with the
// persisted identity cleared. A failed remote call is logged and swallowed:
// the local signed-out view wins over remote confirmation.
func (s *SessionService) Logout(ctx context.Context) *AuthResult {
	marker := s.perfTracker.StartOperation("session:logout")
	defer marker.Complete()

	s.mu.Lock()
	s.state = session.StateLoggingOut
	s.attemptToken = ""
	s.mu.Unlock()

	if result := s.gateway.Logout(ctx); !result.Success {
		if result.Unauthorized {
			s.ForceLogout()
			return &AuthResult{Success: true, Message: "You have been signed out."}
		}
		s.logger.Auth().Warn("Remote logout failed, clearing local session anyway", "message", result.Message)
	}

	s.clearLocal()
	s.logger.Auth().Info("Logged out")
	return &AuthResult{Success: true, Message: "You have been signed out."}
}

// ForceLogout clears the session locally without a remote call. It is the
// handler for a 401 observed anywhere in the application.
func (s *SessionService) ForceLogout() {
	s.logger.Auth().Warn("Forced logout: unauthorized response observed")
	s.clearLocal()
}

// CurrentIdentity returns a copy of the session identity.
func (s *SessionService) CurrentIdentity() session.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// CurrentState returns the state machine's current state.
func (s *SessionService) CurrentState() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether the session is in the Authenticated state.
// Authenticating and LoggingOut both gate as not authenticated.
func (s *SessionService) IsAuthenticated() bool {
	return s.CurrentState() == session.StateAuthenticated
}

// beginAttempt transitions to Authenticating and mints the attempt token
// the resolution must present.
func (s *SessionService) beginAttempt() string {
	token := security.GenerateULID()

	s.mu.Lock()
	s.state = session.StateAuthenticating
	s.attemptToken = token
	s.mu.Unlock()

	return token
}

// resolveAttempt applies a gateway outcome to the state machine. A
// resolution carrying a stale attempt token is discarded so the last-issued
// attempt wins.
func (s *SessionService) resolveAttempt(token, username string, result *gateway.NormalizedResult, start time.Time, marker *performance.Marker, operation string) *AuthResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attemptToken != token {
		s.logger.Auth().Debug("Discarding stale attempt resolution", "operation", operation, "username", username)
		marker.SetSuccess(false)
		return &AuthResult{Success: false, Message: msgAttemptSuperseded}
	}
	s.attemptToken = ""

	if !result.Success {
		s.state = session.StateUnauthenticated
		s.identity = session.Anonymous()
		if result.Unauthorized {
			// A 401 invalidates any previous session too, so the persisted
			// record must not survive to the next restore.
			if err := s.store.Clear(); err != nil {
				s.logger.Auth().Error("Failed to clear persisted identity", "error", err.Error())
			}
		}
		s.logger.Auth().Warn("Authentication failed", "operation", operation, "username", username, "message", result.Message, "duration", time.Since(start))
		marker.SetSuccess(false)
		return &AuthResult{Success: false, Message: result.Message}
	}

	authenticated := session.Identity{Username: strings.TrimSpace(username), IsAuthenticated: true}
	if result.User != nil {
		authenticated = *result.User
		authenticated.IsAuthenticated = true
		if authenticated.Username == "" {
			authenticated.Username = strings.TrimSpace(username)
		}
	}

	if err := s.store.Save(authenticated); err != nil {
		// The session is still good for this run; only the restore on next
		// start is affected.
		s.logger.Auth().Error("Failed to persist identity", "error", err.Error(), "username", authenticated.Username)
	}

	s.identity = authenticated
	s.state = session.StateAuthenticated
	s.logger.Auth().Info("Authentication succeeded", "operation", operation, "username", authenticated.Username, "duration", time.Since(start))
	marker.SetSuccess(true)

	user := authenticated
	return &AuthResult{Success: true, Message: result.Message, User: &user}
}

// clearLocal resets to the unauthenticated state and clears persistence.
func (s *SessionService) clearLocal() {
	if err := s.store.Clear(); err != nil {
		s.logger.Auth().Error("Failed to clear persisted identity", "error", err.Error())
	}

	s.mu.Lock()
	s.identity = session.Anonymous()
	s.state = session.StateUnauthenticated
	s.attemptToken = ""
	s.mu.Unlock()
}

func validateLogin(req LoginRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.UserName) == "" {
		fieldErrors["userName"] = "Username is required."
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required."
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func validateRegister(req RegisterRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.UserName) == "" {
		fieldErrors["userName"] = "Username is required."
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email address is required."
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fieldErrors["firstName"] = "First name is required."
	}
	if strings.TrimSpace(req.LastName) == "" {
		fieldErrors["lastName"] = "Last name is required."
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required."
	}
	if req.ConfirmPassword != req.Password {
		fieldErrors["confirmPassword"] = "Passwords do not match."
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}
