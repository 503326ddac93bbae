// Package client talks to the gold tracker REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/rs/zerolog"
)

// Client issues the backend calls. It applies no timeout of its own and never retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-call debug lines
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the backend rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prices handles GET /api/prices
func (c *Client) Prices(ctx context.Context) (models.PricesResponse, error) {
	var resp models.PricesResponse
	err := c.do(ctx, http.MethodGet, "/api/prices", nil, "", &resp, func() (bool, string) {
		return resp.Success, resp.Error
	})
	return resp, err
}

// Portfolio handles GET /api/portfolio/summary
func (c *Client) Portfolio(ctx context.Context) (models.PortfolioResponse, error) {
	var resp models.PortfolioResponse
	err := c.do(ctx, http.MethodGet, "/api/portfolio/summary", nil, "", &resp, func() (bool, string) {
		return resp.Success, resp.Error
	})
	return resp, err
}

// AddHolding handles POST /api/portfolio/holdings
func (c *Client) AddHolding(ctx context.Context, req models.HoldingRequest) (models.APIResponse, error) {
	return c.mutate(ctx, http.MethodPost, "/api/portfolio/holdings", req)
}

// UpdateHolding handles PUT /api/portfolio/holdings/{id}
func (c *Client) UpdateHolding(ctx context.Context, id string, req models.HoldingRequest) (models.APIResponse, error) {
	return c.mutate(ctx, http.MethodPut, holdingPath(id), req)
}

// SellHolding handles DELETE /api/portfolio/holdings/{id}.
// The backend records the deletion as a SELL transaction at the given price.
func (c *Client) SellHolding(ctx context.Context, id string, req models.SellRequest) (models.APIResponse, error) {
	return c.mutate(ctx, http.MethodDelete, holdingPath(id), req)
}

// ImportHoldings uploads a CSV or Excel file as multipart form field "file"
func (c *Client) ImportHoldings(ctx context.Context, filename string, file io.Reader) (models.ImportResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.ImportResponse{}, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.ImportResponse{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.ImportResponse{}, fmt.Errorf("failed to build upload: %w", err)
	}

	var resp models.ImportResponse
	err = c.do(ctx, http.MethodPost, "/api/portfolio/import", &body, mw.FormDataContentType(), &resp, func() (bool, string) {
		return resp.Success, resp.Error
	})
	return resp, err
}

// ExportHoldings streams the backend CSV export into w
func (c *Client) ExportHoldings(ctx context.Context, w io.Writer) (int64, error) {
	res, err := c.send(ctx, http.MethodGet, "/api/portfolio/export", nil, "")
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var env models.APIResponse
		_ = json.NewDecoder(res.Body).Decode(&env)
		return 0, &APIError{Status: res.StatusCode, Message: env.Error}
	}
	n, err := io.Copy(w, res.Body)
	if err != nil {
		return n, &TransportError{Op: "GET /api/portfolio/export", Err: err}
	}
	return n, nil
}

// PriceHistory handles GET /api/price-history; days is clamped to 1..365
func (c *Client) PriceHistory(ctx context.Context, days int) (models.PriceHistoryResponse, error) {
	days = ClampDays(days)
	q := url.Values{"days": {strconv.Itoa(days)}}

	var resp models.PriceHistoryResponse
	err := c.do(ctx, http.MethodGet, "/api/price-history?"+q.Encode(), nil, "", &resp, func() (bool, string) {
		return resp.Success, resp.Error
	})
	return resp, err
}

// ClampDays bounds a price history window the way the backend does
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 365 {
		return 365
	}
	return days
}

func holdingPath(id string) string {
	return "/api/portfolio/holdings/" + url.PathEscape(id)
}

func (c *Client) mutate(ctx context.Context, method, path string, payload any) (models.APIResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.APIResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	var resp models.APIResponse
	err = c.do(ctx, method, path, bytes.NewReader(raw), "application/json", &resp, func() (bool, string) {
		return resp.Success, resp.Error
	})
	return resp, err
}

// do sends the request and decodes the JSON envelope into out. ok reports the
// envelope's success flag and error message once decoded.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, ok func() (bool, string)) error {
	op := method + " " + path

	res, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	decodeErr := json.NewDecoder(res.Body).Decode(out)
	if decodeErr != nil {
		if res.StatusCode >= 300 {
			return &APIError{Status: res.StatusCode}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("invalid response body: %w", decodeErr)}
	}

	success, message := ok()
	if !success || res.StatusCode >= 300 {
		c.log.Debug().Str("op", op).Int("status", res.StatusCode).Str("error", message).Msg("backend rejected request")
		return &APIError{Status: res.StatusCode, Message: message}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("backend unreachable")
		return nil, &TransportError{Op: op, Err: err}
	}
	c.log.Debug().Str("op", op).Int("status", res.StatusCode).Msg("backend call")
	return res, nil
}
