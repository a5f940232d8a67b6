// Package jsonrpc provides a JSON-RPC 2.0 client over HTTP that caches
// successful results by method and parameters and collapses identical calls
// that are in flight at the same time.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Error represents an error object returned by the remote end.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: code %d: %s", e.Code, e.Message)
}

// IsError checks if an error of type Error with the specified code exists.
func IsError(err error, code int) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// ErrNullResult is returned when the remote end answers with a null result.
var ErrNullResult = errors.New("jsonrpc: null result")

type request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Config represents the settings for a client.
type Config struct {
	URL       string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
	Client    *http.Client
}

// Client makes calls to a JSON-RPC endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	cache   *expirable.LRU[string, json.RawMessage]
	group   singleflight.Group
	id      atomic.Uint64
}

// New constructs a client for the specified endpoint. A CacheSize of zero
// disables result caching.
func New(cfg Config) *Client {
	c := Client{
		url:     cfg.URL,
		timeout: cfg.Timeout,
		http:    cfg.Client,
	}

	if c.http == nil {
		c.http = http.DefaultClient
	}

	if cfg.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, json.RawMessage](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	return &c
}

// Call executes the method with the specified params and decodes the
// result into the result value.
func (c *Client) Call(ctx context.Context, method string, params any, result any) error {
	key, err := cacheKey(method, params)
	if err != nil {
		return err
	}

	if c.cache != nil {
		if raw, exists := c.cache.Get(key); exists {
			return decode(raw, result)
		}
	}

	// The shared round trip outlives any single caller. Each caller stops
	// waiting when its own context is done.
	ch := c.group.DoChan(key, func() (any, error) {
		raw, err := c.send(context.WithoutCancel(ctx), method, params)
		if err != nil {
			return nil, err
		}

		if c.cache != nil {
			c.cache.Add(key, raw)
		}

		return raw, nil
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", method, ctx.Err())

	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return decode(res.Val.(json.RawMessage), result)
	}
}

// Purge drops every cached result.
func (c *Client) Purge() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// send performs the actual round trip to the endpoint.
func (c *Client) send(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := request{
		Version: "2.0",
		ID:      c.id.Add(1),
		Method:  method,
		Params:  params,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("construct request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d: %s", method, resp.StatusCode, bytes.TrimSpace(body))
	}

	var rpcResp response
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%s: %w", method, rpcResp.Error)
	}

	if len(rpcResp.Result) == 0 || bytes.Equal(rpcResp.Result, []byte("null")) {
		return nil, fmt.Errorf("%s: %w", method, ErrNullResult)
	}

	return rpcResp.Result, nil
}

// =============================================================================

func cacheKey(method string, params any) (string, error) {
	if params == nil {
		return method, nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}

	return method + ":" + string(data), nil
}

func decode(raw json.RawMessage, result any) error {
	if result == nil {
		return nil
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}

	return nil
}
