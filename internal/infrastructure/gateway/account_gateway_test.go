package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, url string) *HTTPAccountGateway {
	t.Helper()
	logger, err := logging.NewChanneledLogger(nil)
	require.NoError(t, err)
	return NewHTTPAccountGateway(url, 2*time.Second, logger)
}

func TestLoginSendsContractFieldNames(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/account/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	gw := newTestGateway(t, server.URL)
	result := gw.Login(context.Background(), LoginPayload{UserName: "mkaya", Password: "secret", RememberMe: true})

	require.True(t, result.Success)
	assert.Equal(t, map[string]any{"userName": "mkaya", "password": "secret", "rememberMe": true}, captured)
}

func TestRegisterSendsContractFieldNames(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/account/register", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	gw := newTestGateway(t, server.URL)
	gw.Register(context.Background(), RegisterPayload{
		UserName:        "mkaya",
		Email:           "mkaya@example.edu",
		FirstName:       "Merve",
		LastName:        "Kaya",
		Password:        "secret",
		ConfirmPassword: "secret",
		RoleName:        "Student",
	})

	for _, key := range []string{"userName", "email", "firstName", "lastName", "password", "confirmPassword", "roleName"} {
		assert.Contains(t, captured, key)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		body             string
		wantMessage      string
		wantUnauthorized bool
	}{
		{name: "401 invalid credentials", status: http.StatusUnauthorized, wantMessage: MsgInvalidCredentials, wantUnauthorized: true},
		{name: "409 already exists", status: http.StatusConflict, wantMessage: MsgAlreadyExists},
		{name: "500 server unavailable", status: http.StatusInternalServerError, wantMessage: MsgServerUnavailable},
		{name: "503 server unavailable", status: http.StatusServiceUnavailable, wantMessage: MsgServerUnavailable},
		{name: "200 with malformed body", status: http.StatusOK, body: "{broken", wantMessage: MsgServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			gw := newTestGateway(t, server.URL)
			result := gw.Login(context.Background(), LoginPayload{UserName: "mkaya", Password: "secret"})

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.wantUnauthorized, result.Unauthorized)
		})
	}
}

func TestNetworkFailureIsCannotReachServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	gw := newTestGateway(t, server.URL)
	result := gw.Login(context.Background(), LoginPayload{UserName: "mkaya", Password: "secret"})

	assert.False(t, result.Success)
	assert.Equal(t, MsgCannotReachServer, result.Message)
}

func TestSuccessResponseCarriesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"username":"mkaya","displayName":"Merve Kaya","isAuthenticated":true}}`))
	}))
	defer server.Close()

	gw := newTestGateway(t, server.URL)
	result := gw.Login(context.Background(), LoginPayload{UserName: "mkaya", Password: "secret"})

	require.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, "mkaya", result.User.Username)
	assert.Equal(t, "Merve Kaya", result.User.DisplayName)
}

func TestLogoutPostsWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/account/logout", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	gw := newTestGateway(t, server.URL)
	result := gw.Logout(context.Background())
	assert.True(t, result.Success)
}

func TestFailureWithoutMessageGetsStatusFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	gw := newTestGateway(t, server.URL)
	result := gw.Login(context.Background(), LoginPayload{UserName: "mkaya", Password: "secret"})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}
