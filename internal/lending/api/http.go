// internal/lending/api/http.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lendscore/internal/common/auth"
	"lendscore/internal/common/errors"
	"lendscore/internal/common/logger"
	"lendscore/internal/models"
)

// HTTPClient talks JSON over HTTP to the lending service. Every request
// carries a bearer credential from the injected TokenProvider.
type HTTPClient struct {
	baseURL    string
	tokens     auth.TokenProvider
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPClient creates a client for the lending service at baseURL.
func NewHTTPClient(baseURL string, tokens auth.TokenProvider, timeout time.Duration, log logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithFields(map[string]interface{}{"component": "lending-api"}),
	}
}

func (c *HTTPClient) GetBeneficiary(ctx context.Context, id string) (*models.Beneficiary, error) {
	status, body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/beneficiaries/%s", id), nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		var b models.Beneficiary
		if err := json.Unmarshal(body, &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal beneficiary: %w", err)
		}
		return &b, nil
	case status == http.StatusNotFound:
		return nil, errors.NewNotFoundError(id)
	case status == http.StatusUnauthorized:
		return nil, errors.NewAuthenticationError(errorDetail(body))
	default:
		return nil, errors.NewUnreachableError(fmt.Errorf("get beneficiary: unexpected status %d: %s", status, errorDetail(body)))
	}
}

func (c *HTTPClient) ListBeneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/beneficiaries", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, errors.NewAuthenticationError(errorDetail(body))
	}
	if status != http.StatusOK {
		return nil, errors.NewUnreachableError(fmt.Errorf("list beneficiaries: unexpected status %d: %s", status, errorDetail(body)))
	}

	var out []models.Beneficiary
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal beneficiaries: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) CreateBeneficiary(ctx context.Context, input models.BeneficiaryCreate) (*models.Beneficiary, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/api/beneficiaries", input)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		var b models.Beneficiary
		if err := json.Unmarshal(body, &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal beneficiary: %w", err)
		}
		return &b, nil
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return nil, errors.NewValidationError(errorDetail(body))
	case status == http.StatusUnauthorized:
		return nil, errors.NewAuthenticationError(errorDetail(body))
	default:
		return nil, errors.NewUnreachableError(fmt.Errorf("create beneficiary: unexpected status %d: %s", status, errorDetail(body)))
	}
}

// UpdateConsumption PUTs the consumption payload, then re-fetches the
// beneficiary so callers always get a fresh server snapshot including any
// server-derived fields (refresh-after-write).
func (c *HTTPClient) UpdateConsumption(ctx context.Context, id string, data models.ConsumptionData) (*models.Beneficiary, error) {
	status, body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/beneficiaries/%s/consumption", id), data)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		return c.GetBeneficiary(ctx, id)
	case status == http.StatusNotFound:
		return nil, errors.NewNotFoundError(id)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return nil, errors.NewValidationError(errorDetail(body))
	case status == http.StatusUnauthorized:
		return nil, errors.NewAuthenticationError(errorDetail(body))
	default:
		return nil, errors.NewUnreachableError(fmt.Errorf("update consumption: unexpected status %d: %s", status, errorDetail(body)))
	}
}

func (c *HTTPClient) ComputeScore(ctx context.Context, id string) (*models.ScoreResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/beneficiaries/%s/score", id), nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		var result models.ScoreResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score result: %w", err)
		}
		return &result, nil
	case status == http.StatusNotFound:
		return nil, errors.NewNotFoundError(id)
	case status == http.StatusUnauthorized:
		return nil, errors.NewAuthenticationError(errorDetail(body))
	case status >= 500:
		return nil, errors.NewRemoteComputationError(fmt.Errorf("scoring service returned status %d: %s", status, errorDetail(body)))
	default:
		return nil, errors.NewUnreachableError(fmt.Errorf("compute score: unexpected status %d: %s", status, errorDetail(body)))
	}
}

func (c *HTTPClient) SubmitLoanApplication(ctx context.Context, app models.LoanApplication) (*models.LoanApplicationRecord, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/api/loans/apply", app)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		var record models.LoanApplicationRecord
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal loan application: %w", err)
		}
		return &record, nil
	case status == http.StatusNotFound:
		return nil, errors.NewNotFoundError(app.BeneficiaryID)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		// Business-rule refusal from the service.
		return nil, errors.NewRejectedError(errorDetail(body))
	case status == http.StatusUnauthorized:
		return nil, errors.NewAuthenticationError(errorDetail(body))
	default:
		return nil, errors.NewUnreachableError(fmt.Errorf("submit application: unexpected status %d: %s", status, errorDetail(body)))
	}
}

func (c *HTTPClient) ListLoans(ctx context.Context) ([]models.LoanApplicationRecord, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/loans", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, errors.NewAuthenticationError(errorDetail(body))
	}
	if status != http.StatusOK {
		return nil, errors.NewUnreachableError(fmt.Errorf("list loans: unexpected status %d: %s", status, errorDetail(body)))
	}

	var out []models.LoanApplicationRecord
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan applications: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (*models.PlatformStats, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/stats", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, errors.NewAuthenticationError(errorDetail(body))
	}
	if status != http.StatusOK {
		return nil, errors.NewUnreachableError(fmt.Errorf("get stats: unexpected status %d: %s", status, errorDetail(body)))
	}

	var stats models.PlatformStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &stats, nil
}

// do executes one authenticated JSON request. Transport failures,
// timeouts and cancellations all map to SERVICE_UNREACHABLE; status-code
// interpretation is left to the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return 0, nil, errors.NewUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.NewUnreachableError(err)
	}

	return resp.StatusCode, body, nil
}

// errorDetail extracts the service's error message ({"detail": "..."})
// from a response body, falling back to the raw body.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(body))
}
