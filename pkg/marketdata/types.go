package marketdata

import (
	"fmt"
	"math"
	"time"
)

// Quote holds the raw session values returned by the market data provider
// for a single symbol at one fetch instant.
type Quote struct {
	Open          float64
	High          float64
	Low           float64
	Price         float64 // latest trade price
	PreviousClose float64
	Volume        int64
}

// Validate checks that every field the record schema needs is present and
// numeric. Providers report missing values as zero or NaN, so a non-positive
// price or any non-finite field is treated as an incomplete quote.
func (q Quote) Validate() error {
	fields := map[string]float64{
		"open":           q.Open,
		"high":           q.High,
		"low":            q.Low,
		"price":          q.Price,
		"previous_close": q.PreviousClose,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("quote field %s is not a finite number", name)
		}
	}
	if q.Price <= 0 {
		return fmt.Errorf("quote has no market price (got %v)", q.Price)
	}
	if q.Volume < 0 {
		return fmt.Errorf("quote has negative volume (got %d)", q.Volume)
	}
	return nil
}

// Snapshot is the wire record published for one cycle. Field names are the
// contract with downstream consumers and must not change.
type Snapshot struct {
	Symbol        string    `json:"symbol"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewSnapshot derives the published record from a validated quote.
// change_percent falls back to 0 when the previous close is zero so the
// record never carries NaN or Inf. The timestamp is truncated to whole
// seconds so it marshals as RFC 3339 with a Z suffix and no fraction.
func NewSnapshot(symbol string, q Quote, at time.Time) Snapshot {
	change := q.Price - q.PreviousClose

	var changePercent float64
	if q.PreviousClose != 0 {
		changePercent = change / q.PreviousClose * 100
	}

	return Snapshot{
		Symbol:        symbol,
		Open:          q.Open,
		High:          q.High,
		Low:           q.Low,
		Price:         q.Price,
		PreviousClose: q.PreviousClose,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        q.Volume,
		Timestamp:     at.UTC().Truncate(time.Second),
	}
}
