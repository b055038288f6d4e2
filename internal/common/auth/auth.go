// internal/common/auth/auth.go
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"lendscore/internal/common/errors"
)

// TokenProvider supplies the bearer credential attached to every outbound
// call. It is passed explicitly to the API client so sessions stay
// isolation-testable; there is no ambient global credential.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a fixed token. Useful for tests and for
// deployments where the credential is issued out of band.
type StaticTokenProvider string

func (s StaticTokenProvider) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", errors.NewAuthenticationError("empty static token")
	}
	return string(s), nil
}

// Operator is the authenticated operator identity returned by the lending
// service.
type Operator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Token string   `json:"token"`
	User  Operator `json:"user"`
}

// Client authenticates an operator against the lending service and caches
// the issued bearer token until shortly before expiry.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	operator    Operator
}

// The service issues 24h JWTs; refresh a little early so in-flight calls
// never carry an expired credential.
const tokenLifetime = 23 * time.Hour

// NewClient creates a login client for the given lending service.
func NewClient(baseURL, email, password string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Token returns a valid bearer token, logging in when the cached one has
// expired. Implements TokenProvider.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.tokenExpiry.After(time.Now()) {
		return c.accessToken, nil
	}

	if err := c.login(ctx); err != nil {
		return "", err
	}
	return c.accessToken, nil
}

// CurrentOperator returns the operator identity from the last successful
// login.
func (c *Client) CurrentOperator() Operator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.operator
}

func (c *Client) login(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	loginURL := fmt.Sprintf("%s/api/auth/login", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewUnreachableError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewAuthenticationError(
			fmt.Sprintf("login failed (status %d): %s", resp.StatusCode, string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	if tr.Token == "" {
		return errors.NewAuthenticationError("login response carried no token")
	}

	c.accessToken = tr.Token
	c.tokenExpiry = time.Now().Add(tokenLifetime)
	c.operator = tr.User
	return nil
}
