package streamer

import (
	"quotestream/pkg/marketdata"
	"quotestream/pkg/stream"
)

// Outcome tags how one fetch-transform-publish cycle ended.
type Outcome int

const (
	CycleOK Outcome = iota
	CycleFetchFailed
	CyclePublishFailed
)

func (o Outcome) String() string {
	switch o {
	case CycleOK:
		return "ok"
	case CycleFetchFailed:
		return "fetch_failed"
	case CyclePublishFailed:
		return "publish_failed"
	default:
		return "unknown"
	}
}

// CycleResult reports the result of one cycle. Failures are values rather
// than panics so the driver's log-and-continue contract holds for every
// provider or destination error.
type CycleResult struct {
	Outcome  Outcome
	Snapshot marketdata.Snapshot // zero value when Outcome is CycleFetchFailed
	Ack      stream.Ack          // set only when Outcome is CycleOK
	Err      error               // set for failed outcomes
}
