// Package portal is the HTTP client for the order tracking portal.
package portal

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

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

const apiKeyHeader = "X-OrderPortal-API-key"

const requestTimeout = 30 * time.Second

// RequestError reports a failed order fetch: a transport failure or a
// non-2xx response. Fatal to the run; the next scheduled invocation retries.
type RequestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("portal request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("portal request %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UploadError reports a non-200 response when uploading a rendered report.
// Fatal only to that specific upload.
type UploadError struct {
	IUID       string
	StatusCode int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload report for order %s: unexpected status %d", e.IUID, e.StatusCode)
}

// Client talks to the order portal, authenticated via a static API key
// header.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a portal client. An unset base URL or API key is a
// configuration error, raised before any network activity.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, &config.MissingError{Name: config.EnvOrderPortalURL}
	}
	if apiKey == "" {
		return nil, &config.MissingError{Name: config.EnvOrderPortalAPIKey}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// FetchOptions narrow an order fetch. Recent limits the result to the
// portal's most recent orders instead of all years.
type FetchOptions struct {
	AssignedNode string
	Status       string
	Recent       bool
}

// FetchAll fetches orders across all accounts.
func (c *Client) FetchAll(ctx context.Context, opts FetchOptions) ([]domain.Order, error) {
	params := url.Values{}
	if opts.AssignedNode != "" {
		params.Set("assigned_node", opts.AssignedNode)
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	year := "all"
	if opts.Recent {
		year = "recent"
	}
	params.Set("year", year)

	var envelope struct {
		Items []domain.Order `json:"items"`
	}
	if err := c.getJSON(ctx, "/api/v1/orders", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// FetchByOwner fetches one owner's orders. The endpoint shape differs from
// FetchAll (an "orders" envelope instead of "items") but the contract is the
// same: a list of orders.
func (c *Client) FetchByOwner(ctx context.Context, owner string, opts FetchOptions) ([]domain.Order, error) {
	params := url.Values{}
	if opts.AssignedNode != "" {
		params.Set("assigned_node", opts.AssignedNode)
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}

	var envelope struct {
		Orders []domain.Order `json:"orders"`
	}
	path := "/api/v1/account/" + url.PathEscape(owner) + "/orders"
	if err := c.getJSON(ctx, path, params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// UploadReport puts a rendered HTML report on an order. Success iff the
// portal answers 200.
func (c *Client) UploadReport(ctx context.Context, iuid string, report []byte) error {
	full := c.baseURL + "/api/v1/order/" + url.PathEscape(iuid) + "/report"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, full, bytes.NewReader(report))
	if err != nil {
		return &RequestError{URL: full, Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{URL: full, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &UploadError{IUID: iuid, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	full := c.baseURL + path
	if enc := params.Encode(); enc != "" {
		full += "?" + enc
	}

	t := timeout.New[[]byte](timeout.Config{
		DefaultTimeout: requestTimeout,
	})
	body, err := t.Execute(ctx, requestTimeout, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return nil, &RequestError{URL: full, Err: err}
		}
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, &RequestError{URL: full, Err: err}
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, &RequestError{URL: full, StatusCode: resp.StatusCode}
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode portal response: %w", err)
	}
	return nil
}
