package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"stride-storefront/internal/metrics"
)

// Outbound budget towards the backend. The fallback pollers and the CLI
// share one client, so throttle here rather than at every call site.
const (
	requestLimit = rate.Limit(10)
	requestBurst = 20
)

// Client talks to the storefront backend. Every call tolerates the
// backend being down; callers decide whether that is silent (catalog)
// or surfaced (order placement).
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(requestLimit, requestBurst),
		log:     log,
	}
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login-json", "", LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", "", req, nil)
}

// Products fetches the catalog, optionally filtered by category.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	path := "/products/"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single catalog entry.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits an order on behalf of an authenticated user.
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders/", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists the authenticated user's order history.
func (c *Client) Orders(ctx context.Context, token string) ([]OrderResponse, error) {
	var out []OrderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIFailures.Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.APIFailures.Inc()
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Debug("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Code: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
