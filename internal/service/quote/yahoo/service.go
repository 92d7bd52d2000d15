package yahoo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/go-resty/resty/v2"
	"github.com/jpillora/backoff"
	"github.com/shopspring/decimal"
)

const (
	defaultEndpoint = "https://query1.finance.yahoo.com/v7/finance/quote"
	maxAttempts     = 3
	defaultDelay    = time.Second
)

type Config struct {
	Endpoint string `mapstructure:"endpoint"`
	Crumb    string `mapstructure:"crumb"`
	Cookie   string `mapstructure:"cookie"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string          `json:"symbol"`
			RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

type Service struct {
	cli      *resty.Client
	endpoint string
	crumb    string
	delay    time.Duration
}

type Option func(svc *Service)

func WithRetryDelay(d time.Duration) Option {
	return func(svc *Service) {
		svc.delay = d
	}
}

func NewService(cfg Config, opts ...Option) quote.Service {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	cli := resty.New()
	if cfg.Cookie != "" {
		cli.SetHeader("Cookie", cfg.Cookie)
	}
	svc := &Service{
		cli:      cli,
		endpoint: endpoint,
		crumb:    cfg.Crumb,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *Service) Fetch(ctx context.Context, symbols []string) (map[string]quote.Quote, error) {
	if len(symbols) == 0 {
		return map[string]quote.Quote{}, nil
	}

	wait := &backoff.Backoff{Min: svc.delay, Max: svc.delay}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait.Duration()):
			}
		}

		var parsed quoteResponse
		req := svc.cli.R().
			SetContext(ctx).
			SetQueryParam("symbols", strings.Join(symbols, ",")).
			SetQueryParam("fields", "regularMarketPrice").
			SetResult(&parsed)
		if svc.crumb != "" {
			req.SetQueryParam("crumb", svc.crumb)
		}

		resp, err := req.Get(svc.endpoint)
		if err != nil {
			lastErr = err
			slog.Error("quote request failed", "attempt", attempt, "error", err)
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode())
			slog.Warn("quote request rejected", "attempt", attempt, "status", resp.StatusCode())
			continue
		}

		res := make(map[string]quote.Quote, len(parsed.QuoteResponse.Result))
		for _, item := range parsed.QuoteResponse.Result {
			symbol := strings.ToUpper(item.Symbol)
			res[symbol] = quote.Quote{
				Symbol: symbol,
				Price:  item.RegularMarketPrice,
			}
		}
		return res, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", quote.ErrFetchFailed, maxAttempts, lastErr)
}
