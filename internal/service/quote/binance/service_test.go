package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/KNICEX/price-alert-agent/pkg/decimalx"
	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) quote.Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cli := binance.NewClient("", "")
	cli.BaseURL = srv.URL
	return NewService(cli, WithRetryDelay(time.Millisecond))
}

func TestService_Fetch(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"BTCUSDT","price":"97000.5"},
			{"symbol":"ETHUSDT","price":"3500"},
			{"symbol":"ETHBTC","price":"0.036"}
		]`))
	})

	quotes, err := svc.Fetch(context.Background(), []string{"BTC", "ETH"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.True(t, quotes["BTC"].Price.Equal(decimalx.MustFromString("97000.5")))
	assert.True(t, quotes["ETH"].Price.Equal(decimalx.MustFromString("3500")))
}

func TestService_Fetch_EmptySymbols(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty symbol list")
	})

	quotes, err := svc.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestService_Fetch_ExhaustsRetries(t *testing.T) {
	var requests int
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Fetch(context.Background(), []string{"BTC"})
	assert.ErrorIs(t, err, quote.ErrFetchFailed)
	assert.Equal(t, 3, requests)
}
