// Package paystack is a small raw-HTTP client for the Paystack API, limited
// to transaction verification.
package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.paystack.co"

// StatusSuccess is the transaction status Paystack reports for a paid charge.
const StatusSuccess = "success"

// ErrNotConfigured is returned when no secret key was provided.
var ErrNotConfigured = errors.New("paystack: not configured")

// Transaction is the part of the verification payload this service reads.
type Transaction struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Verification is a decoded /transaction/verify response. Raw keeps the
// provider's payload byte-for-byte so it can be relayed unchanged.
type Verification struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Data    *Transaction `json:"data"`

	Raw json.RawMessage `json:"-"`
}

// Succeeded reports whether the transaction was paid.
func (v *Verification) Succeeded() bool {
	return v.Data != nil && v.Data.Status == StatusSuccess
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("paystack: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("paystack: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client is the Paystack surface the payment service depends on.
type Client interface {
	// VerifyTransaction fetches the current state of the transaction
	// identified by reference.
	VerifyTransaction(ctx context.Context, reference string) (*Verification, error)
}

// RealClient talks to the Paystack HTTP API.
type RealClient struct {
	SecretKey  string
	BaseURL    string
	httpClient *http.Client
}

// NewClient builds a RealClient. An empty baseURL means DefaultBaseURL.
func NewClient(secretKey, baseURL string) *RealClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RealClient{
		SecretKey:  secretKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *RealClient) VerifyTransaction(ctx context.Context, reference string) (*Verification, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	endpoint := c.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("paystack verify: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errResp)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	var v Verification
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("paystack verify: decode: %w", err)
	}
	if v.Data == nil {
		return nil, errors.New("paystack verify: response has no transaction data")
	}
	v.Raw = json.RawMessage(body)
	return &v, nil
}
