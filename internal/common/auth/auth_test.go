// internal/common/auth/auth_test.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendscore/internal/common/errors"
)

func TestStaticTokenProvider(t *testing.T) {
	token, err := StaticTokenProvider("abc123").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = StaticTokenProvider("").Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthentication, errors.CodeOf(err))
}

func TestClient_LoginAndTokenCaching(t *testing.T) {
	var logins int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["email"] != "ops@example.com" || creds["password"] != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}

		logins++
		json.NewEncoder(w).Encode(tokenResponse{
			Token: "jwt-token-1",
			User:  Operator{ID: "op-1", Username: "ops", Email: "ops@example.com"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.com", "s3cret")

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-token-1", token)
	assert.Equal(t, "op-1", client.CurrentOperator().ID)

	// A second request reuses the cached token.
	token, err = client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-token-1", token)
	assert.Equal(t, 1, logins)
}

func TestClient_ReloginAfterExpiry(t *testing.T) {
	var logins int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logins++
		json.NewEncoder(w).Encode(tokenResponse{Token: "jwt-token"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.com", "s3cret")
	_, err := client.Token(context.Background())
	require.NoError(t, err)

	// Force the cached token past its refresh horizon.
	client.mu.Lock()
	client.tokenExpiry = client.tokenExpiry.Add(-2 * tokenLifetime)
	client.mu.Unlock()

	_, err = client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, logins)
}

func TestClient_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.com", "wrong")
	_, err := client.Token(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthentication, errors.CodeOf(err))
	assert.False(t, errors.IsRetryable(err))
}

func TestClient_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, "ops@example.com", "s3cret")
	_, err := client.Token(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnreachable, errors.CodeOf(err))
}

func TestClient_EmptyTokenResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.com", "s3cret")
	_, err := client.Token(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthentication, errors.CodeOf(err))
}
