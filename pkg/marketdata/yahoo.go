package marketdata

import (
	"context"
	"fmt"

	"github.com/piquette/finance-go/quote"
)

// Provider fetches the current quote for a symbol. Implementations block for
// the duration of the network call.
type Provider interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// YahooProvider fetches quotes from the public Yahoo Finance endpoint.
type YahooProvider struct{}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{}
}

// Quote fetches the current regular-market quote for the symbol. The
// underlying client manages its own HTTP timeout; ctx is accepted for
// interface symmetry with other providers.
func (p *YahooProvider) Quote(_ context.Context, symbol string) (Quote, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return Quote{}, fmt.Errorf("no quote returned for %s", symbol)
	}

	return Quote{
		Open:          q.RegularMarketOpen,
		High:          q.RegularMarketDayHigh,
		Low:           q.RegularMarketDayLow,
		Price:         q.RegularMarketPrice,
		PreviousClose: q.RegularMarketPreviousClose,
		Volume:        int64(q.RegularMarketVolume),
	}, nil
}
