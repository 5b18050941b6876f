package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientFetchesStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/network_stats":
			w.Write([]byte(`{"tx_count":1234,"block_count":567,"total_supply":1000000,"burned":42.5}`))
		case "/token/prices":
			w.Write([]byte(`{"thr_usd_rate":0.0123}`))
		case "/health":
			w.Write([]byte(`{"ok":true,"version":"1.4.0"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	stats, err := c.NetworkStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1234), stats.TxCount)
	require.Equal(t, 42.5, stats.Burned)

	prices, err := c.TokenPrices(ctx)
	require.NoError(t, err)
	require.Equal(t, 0.0123, prices.ThrUSDRate)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	require.True(t, health.OK)

	_, err = c.Dashboard(ctx)
	require.Error(t, err)
}

func TestClientFetchesContractsAndTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/evm/latest_contracts":
			w.Write([]byte(`{"contracts":[{"address":"0xaaa","deployer":"0x111"}]}`))
		case "/tokens/list":
			w.Write([]byte(`[{"symbol":"THR","name":"Thronos","decimals":18,"logo":""},{"symbol":"GOLD","name":"Gold Token","decimals":8,"logo":"https://example.test/gold.png"}]`))
		case "/tokens/stats":
			w.Write([]byte(`[{"symbol":"THR","total_supply":"1000000","holders_count":420}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	contracts, err := c.LatestContracts(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	require.Equal(t, "0xaaa", contracts[0].Address)
	require.Equal(t, "0x111", contracts[0].Deployer)

	tokens, err := c.TokenList(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	require.Equal(t, "THR", tokens[0].Symbol)
	require.Equal(t, 8, tokens[1].Decimals)

	stats, err := c.TokenStatsBySymbol(ctx)
	require.NoError(t, err)
	require.Equal(t, "1000000", stats["THR"].TotalSupply)
	require.Equal(t, int64(420), stats["THR"].HoldersCount)

	require.Equal(t, "1000000", supplyOf(stats, "THR"))
	require.Equal(t, "420", holdersOf(stats, "THR"))
	require.Equal(t, "N/A", supplyOf(stats, "GOLD"))
	require.Equal(t, "N/A", holdersOf(stats, "GOLD"))
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"tx_count":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.http.Timeout = time.Second

	start := time.Now()
	status, body, err := doWithRetry(context.Background(), 3, 5*time.Millisecond, func() (int, []byte, error) {
		resp, err := c.http.Get(srv.URL + "/network_stats")
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		return resp.StatusCode, []byte(`{"tx_count":1}`), nil
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, int32(3), calls.Load())
}

func TestRetryGivesUp(t *testing.T) {
	var calls int
	_, _, err := doWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 0, nil, errors.New("connection refused")
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := doWithRetry(ctx, 3, time.Minute, func() (int, []byte, error) {
		return http.StatusBadGateway, nil, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
