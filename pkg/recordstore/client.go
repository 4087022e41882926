package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/batch-intake-api/pkg/middleware/requestid"
)

// ErrNotConfigured is returned by every call on a client built without an endpoint or key.
var ErrNotConfigured = errors.New("record store: endpoint url or access key missing")

// APIError describes a non-2xx response from the store.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("record store: status %d", e.Status)
	}
	return fmt.Sprintf("record store: status %d: %s", e.Status, e.Message)
}

// Order describes a sort clause for SelectAll.
type Order struct {
	Column     string
	Descending bool
}

func (o Order) String() string {
	if o.Column == "" {
		return ""
	}
	if o.Descending {
		return o.Column + ".desc"
	}
	return o.Column + ".asc"
}

// Options configures a Client.
type Options struct {
	URL        string
	Key        string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to a PostgREST-compatible record store over HTTP.
type Client struct {
	baseURL    string
	key        string
	http       *http.Client
	configured bool
}

// New builds a client. Missing URL or key does not fail: the returned client is
// degraded and reports ErrNotConfigured on each call.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.URL, "/"),
		key:        opts.Key,
		http:       httpClient,
		configured: opts.URL != "" && opts.Key != "",
	}
}

// Configured reports whether both the endpoint and key were supplied.
func (c *Client) Configured() bool {
	return c != nil && c.configured
}

// Insert appends one record to table and decodes the stored representation into dest.
func (c *Client) Insert(ctx context.Context, table string, record interface{}, dest interface{}) error {
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodPost, table, nil, record, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("record store: insert into %s returned no rows", table)
	}
	return decodeRow(rows[0], dest)
}

// SelectAll loads every record of table in the given order into dest, which must be a pointer to a slice.
func (c *Client) SelectAll(ctx context.Context, table string, order Order, dest interface{}) error {
	query := url.Values{}
	query.Set("select", "*")
	if clause := order.String(); clause != "" {
		query.Set("order", clause)
	}
	return c.do(ctx, http.MethodGet, table, query, nil, dest)
}

// FindByID loads one record by id. It reports found=false when no row matches.
func (c *Client) FindByID(ctx context.Context, table, id string, dest interface{}) (bool, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodGet, table, query, nil, &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return true, decodeRow(rows[0], dest)
}

// Update applies a partial record to the row identified by id. It reports
// found=false when no row matched.
func (c *Client) Update(ctx context.Context, table, id string, patch interface{}, dest interface{}) (bool, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodPatch, table, query, patch, &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return true, decodeRow(rows[0], dest)
}

// Ping checks that the store answers for table.
func (c *Client) Ping(ctx context.Context, table string) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")
	var rows []json.RawMessage
	return c.do(ctx, http.MethodGet, table, query, nil, &rows)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, dest interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("record store: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("record store: build request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record store: %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("record store: decode response: %w", err)
	}
	return nil
}

func decodeRow(raw json.RawMessage, dest interface{}) error {
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("record store: decode row: %w", err)
	}
	return nil
}
