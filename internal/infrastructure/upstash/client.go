// Package upstash talks to the Upstash Redis REST API. Each command is a POST
// of a JSON array ["SET", "key", "value"] answered by {"result": ...} or
// {"error": "..."}.
package upstash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// Client implements ports.RemoteStore over the REST API.
type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Token == "" {
		return nil, errors.New("upstash: url and token are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetAuthToken(cfg.Token).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}, nil
}

func (c *Client) Name() string { return "upstash" }

func (c *Client) do(ctx context.Context, args ...string) (json.RawMessage, error) {
	var out response
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(args).
		SetResult(&out).
		SetError(&out).
		Post("/")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	if out.Error != "" {
		if strings.Contains(out.Error, "NOPERM") || strings.Contains(out.Error, "no permissions") {
			return nil, fmt.Errorf("%s: %w: %s", args[0], ports.ErrPermissionDenied, out.Error)
		}
		return nil, fmt.Errorf("%s: %s", args[0], out.Error)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: unexpected status %d", args[0], resp.StatusCode())
	}
	return out.Result, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := c.do(ctx, "GET", key)
	if err != nil {
		return "", false, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, fmt.Errorf("GET: decode result: %w", err)
	}
	return v, true, nil
}

func (c *Client) Set(ctx context.Context, key, value string) error {
	_, err := c.do(ctx, "SET", key, value)
	return err
}

func (c *Client) SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	_, err := c.do(ctx, "SETEX", key, strconv.FormatInt(secs, 10), value)
	return err
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.do(ctx, "DEL", key)
	return err
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "PING")
	return err
}

// Close is a no-op; the REST client holds no connection state worth closing.
func (c *Client) Close() error { return nil }
