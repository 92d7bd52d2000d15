package quote

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Quote is a transient price observation for one symbol during one run.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
}

// ErrFetchFailed reports that every fetch attempt was exhausted.
var ErrFetchFailed = errors.New("quote fetch failed")

// Service fetches current prices for a batch of upper-cased symbols.
// An empty input returns an empty map without touching the network.
// Symbols unknown to the provider are simply absent from the result.
type Service interface {
	Fetch(ctx context.Context, symbols []string) (map[string]Quote, error)
}
