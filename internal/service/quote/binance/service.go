package binance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	maxAttempts  = 3
	defaultDelay = time.Second
)

// Service resolves plain symbols as <SYMBOL>USDT spot pairs.
type Service struct {
	cli   *binance.Client
	delay time.Duration
}

type Option func(svc *Service)

func WithRetryDelay(d time.Duration) Option {
	return func(svc *Service) {
		svc.delay = d
	}
}

func NewService(cli *binance.Client, opts ...Option) quote.Service {
	svc := &Service{
		cli:   cli,
		delay: defaultDelay,
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

	// pair -> requested symbol
	wanted := lo.SliceToMap(symbols, func(item string) (string, string) {
		base := strings.ToUpper(item)
		return base + "USDT", base
	})

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(svc.delay):
			}
		}

		prices, err := svc.cli.NewListPricesService().Do(ctx)
		if err != nil {
			lastErr = err
			slog.Error("list prices failed", "attempt", attempt, "error", err)
			continue
		}

		res := make(map[string]quote.Quote, len(symbols))
		for _, item := range prices {
			base, ok := wanted[item.Symbol]
			if !ok {
				continue
			}
			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				slog.Error("fail to parse price", "symbol", item.Symbol, "price", item.Price, "error", err)
				continue
			}
			res[base] = quote.Quote{
				Symbol: base,
				Price:  price,
			}
		}
		return res, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", quote.ErrFetchFailed, maxAttempts, lastErr)
}
