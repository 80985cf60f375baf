package marketdata

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func TestNewSnapshotDerivesChange(t *testing.T) {
	q := Quote{
		Open:          232.51,
		High:          233.38,
		Low:           231.37,
		Price:         232.14,
		PreviousClose: 232.56,
		Volume:        39389400,
	}

	snap := NewSnapshot("AAPL", q, time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC))

	if got := round2(snap.Change); got != -0.42 {
		t.Errorf("change = %v, want -0.42", got)
	}
	if got := round2(snap.ChangePercent); got != -0.18 {
		t.Errorf("change_percent = %v, want -0.18", got)
	}
	if snap.Change != q.Price-q.PreviousClose {
		t.Errorf("change = %v, want exact price-previous_close %v", snap.Change, q.Price-q.PreviousClose)
	}
	if snap.Symbol != "AAPL" || snap.Volume != 39389400 {
		t.Errorf("unexpected snapshot identity fields: %+v", snap)
	}
}

func TestNewSnapshotZeroPreviousClose(t *testing.T) {
	q := Quote{Open: 10, High: 11, Low: 9, Price: 10.5, PreviousClose: 0, Volume: 100}

	snap := NewSnapshot("IPO", q, time.Now())

	if snap.ChangePercent != 0 {
		t.Errorf("change_percent = %v, want sentinel 0", snap.ChangePercent)
	}
	if math.IsNaN(snap.ChangePercent) || math.IsInf(snap.ChangePercent, 0) {
		t.Errorf("change_percent must be finite, got %v", snap.ChangePercent)
	}
	if snap.Change != 10.5 {
		t.Errorf("change = %v, want 10.5", snap.Change)
	}
}

func TestSnapshotJSONWireFormat(t *testing.T) {
	q := Quote{Open: 232.51, High: 233.38, Low: 231.37, Price: 232.14, PreviousClose: 232.56, Volume: 39389400}
	at := time.Date(2024, 3, 1, 15, 30, 0, 123456789, time.FixedZone("EST", -5*3600))

	payload, err := json.Marshal(NewSnapshot("AAPL", q, at))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{
		"symbol", "open", "high", "low", "price",
		"previous_close", "change", "change_percent", "volume", "timestamp",
	}
	for _, key := range want {
		if _, ok := fields[key]; !ok {
			t.Errorf("record is missing field %q", key)
		}
	}
	if len(fields) != len(want) {
		t.Errorf("record has %d fields, want %d: %s", len(fields), len(want), payload)
	}

	var ts string
	if err := json.Unmarshal(fields["timestamp"], &ts); err != nil {
		t.Fatalf("timestamp is not a string: %v", err)
	}
	if !strings.HasSuffix(ts, "Z") {
		t.Errorf("timestamp %q must be UTC with Z suffix", ts)
	}
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", ts, err)
	}
	if parsed.Nanosecond() != 0 {
		t.Errorf("timestamp %q must be truncated to whole seconds", ts)
	}
}

func TestQuoteValidate(t *testing.T) {
	valid := Quote{Open: 1, High: 2, Low: 0.5, Price: 1.5, PreviousClose: 1.2, Volume: 10}

	tests := []struct {
		name    string
		mutate  func(q *Quote)
		wantErr bool
	}{
		{"valid quote", func(q *Quote) {}, false},
		{"zero volume is valid", func(q *Quote) { q.Volume = 0 }, false},
		{"zero previous close is valid", func(q *Quote) { q.PreviousClose = 0 }, false},
		{"missing price", func(q *Quote) { q.Price = 0 }, true},
		{"negative price", func(q *Quote) { q.Price = -1 }, true},
		{"nan open", func(q *Quote) { q.Open = math.NaN() }, true},
		{"infinite high", func(q *Quote) { q.High = math.Inf(1) }, true},
		{"nan previous close", func(q *Quote) { q.PreviousClose = math.NaN() }, true},
		{"negative volume", func(q *Quote) { q.Volume = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
