package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thronos-network/thronos-bot/src/data"
)

// Client reads the Thronos chain's public JSON API. Responses are cached in
// redis for a short window so the stats poller and the presence ticker do not
// hammer the API.
type Client struct {
	baseURL string
	http    *http.Client
	rdb     *redis.Client
}

func NewClient(baseURL string, rdb *redis.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		rdb:     rdb,
	}
}

type NetworkStats struct {
	TxCount     int64   `json:"tx_count"`
	BlockCount  int64   `json:"block_count"`
	TotalSupply float64 `json:"total_supply"`
	Burned      float64 `json:"burned"`
}

type TokenPrices struct {
	ThrUSDRate float64 `json:"thr_usd_rate"`
}

type Health struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

type Dashboard struct {
	TPS        float64 `json:"tps"`
	TokenCount int64   `json:"token_count"`
	PoolCount  int64   `json:"pool_count"`
}

type Contract struct {
	Address  string `json:"address"`
	Deployer string `json:"deployer"`
}

type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	Logo     string `json:"logo"`
}

type TokenStats struct {
	Symbol       string `json:"symbol"`
	TotalSupply  string `json:"total_supply"`
	HoldersCount int64  `json:"holders_count"`
}

func (c *Client) NetworkStats(ctx context.Context) (*NetworkStats, error) {
	var out NetworkStats
	if err := c.getJSON(ctx, "/network_stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TokenPrices(ctx context.Context) (*TokenPrices, error) {
	var out TokenPrices
	if err := c.getJSON(ctx, "/token/prices", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.getJSON(ctx, "/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestContracts returns the most recently deployed EVM contracts.
func (c *Client) LatestContracts(ctx context.Context) ([]Contract, error) {
	var out struct {
		Contracts []Contract `json:"contracts"`
	}
	if err := c.getJSON(ctx, "/evm/latest_contracts", &out); err != nil {
		return nil, err
	}
	return out.Contracts, nil
}

// TokenList returns every token registered on the network.
func (c *Client) TokenList(ctx context.Context) ([]Token, error) {
	var out []Token
	if err := c.getJSON(ctx, "/tokens/list", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TokenStatsBySymbol returns per-token supply and holder counts keyed by
// symbol. A failure here is not fatal to callers; they render N/A instead.
func (c *Client) TokenStatsBySymbol(ctx context.Context) (map[string]TokenStats, error) {
	var out []TokenStats
	if err := c.getJSON(ctx, "/tokens/stats", &out); err != nil {
		return nil, err
	}
	stats := make(map[string]TokenStats, len(out))
	for _, s := range out {
		stats[s.Symbol] = s
	}
	return stats, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	cacheKey := "thrapi:" + path
	if data.CachedJSON(ctx, c.rdb, cacheKey, v) {
		return nil
	}

	status, body, err := doWithRetry(ctx, 3, 2*time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return 0, nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		return resp.StatusCode, b, err
	})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", path, status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	data.CacheJSON(ctx, c.rdb, cacheKey, v, 90*time.Second)
	return nil
}

type attemptFunc func() (status int, body []byte, err error)

// doWithRetry retries the attempt function on transient errors (429/5xx) or
// non-nil errors.
func doWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn attemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}
	delay := initialDelay
	for i := 0; i < attempts; i++ {
		status, body, err := fn()
		if err == nil && status != 429 && status < 500 {
			return status, body, nil
		}
		if i == attempts-1 {
			return status, body, err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	return 0, nil, context.DeadlineExceeded
}
