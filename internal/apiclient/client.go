// Package apiclient is the only place that talks to the LogiChain REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"logichain-web/internal/models"
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// TokenSource yields the bearer token for an outgoing request, or "" when
// the caller is anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

// Observer is told about every finished call. route is the path template
// ("/orders/:id"), not the concrete path.
type Observer func(method, route string, status int, elapsed time.Duration)

// Envelope is the API's response wrapper. Callers read Data.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}

type Client struct {
	base      string
	http      *http.Client
	tokens    TokenSource
	userAgent string
	observer  Observer

	Auth       *AuthService
	Profile    *ProfileService
	Users      *UserService
	Products   *ProductService
	Carriers   *CarrierService
	Returns    *ReturnService
	Warehouses *WarehouseService
	Orders     *OrderService
	Inventory  *InventoryService
	Shipments  *ShipmentService
	Logs       *LogService
}

type Option func(*Client)

// WithHTTPClient replaces the default transport client. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout on a copy of the current client,
// so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New builds the client once per process. tokens may be nil, in which case
// no request carries credentials.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute http(s), got %q", baseURL)
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	c := &Client{
		base:      strings.TrimRight(u.String(), "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		tokens:    tokens,
		userAgent: "logichain-web",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Profile = &ProfileService{c: c}
	c.Users = &UserService{resource[models.User]{c: c, base: "/users"}}
	c.Products = &ProductService{resource[models.Product]{c: c, base: "/products"}}
	c.Carriers = &CarrierService{resource[models.Carrier]{c: c, base: "/carriers"}}
	c.Returns = &ReturnService{resource[models.Return]{c: c, base: "/returns"}}
	c.Warehouses = &WarehouseService{resource[models.Warehouse]{c: c, base: "/warehouses"}}
	c.Orders = &OrderService{resource[models.Order]{c: c, base: "/orders"}}
	c.Inventory = &InventoryService{resource[models.InventoryItem]{c: c, base: "/inventory"}}
	c.Shipments = &ShipmentService{resource[models.Shipment]{c: c, base: "/shipments"}}
	c.Logs = &LogService{c: c}
	return c, nil
}

// BaseURL is the configured API root without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

func (c *Client) do(ctx context.Context, method, route, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, route, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, route, err)
	}
	c.intercept(req)

	started := time.Now()
	status := 0
	if c.observer != nil {
		defer func() { c.observer(method, route, status, time.Since(started)) }()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// intercept runs before every request.
func (c *Client) intercept(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.tokens.Token(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func call[T any](ctx context.Context, c *Client, method, route, path string, body any) (Envelope[T], error) {
	var env Envelope[T]
	err := c.do(ctx, method, route, path, body, &env)
	return env, err
}

func idPath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}

func segment(base, value string) string {
	return base + "/" + url.PathEscape(value)
}
