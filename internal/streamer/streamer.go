package streamer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotestream/config"
	"quotestream/pkg/marketdata"
	"quotestream/pkg/stream"

	"go.uber.org/zap"
)

// Streamer drives an unbounded sequence of fetch-transform-publish cycles
// for a single symbol at a fixed cadence. Every record is published under a
// partition key equal to the symbol, which gives single-symbol ordering at
// the destination.
type Streamer struct {
	symbol    string
	interval  time.Duration
	provider  marketdata.Provider
	publisher stream.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func New(cfg config.QuoteConfig, provider marketdata.Provider, publisher stream.Publisher, logger *zap.Logger) *Streamer {
	return &Streamer{
		symbol:    cfg.Symbol,
		interval:  cfg.Interval,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes cycles until ctx is canceled. A failed cycle is logged and
// followed by the same inter-cycle delay as a successful one; there is no
// backoff state and no per-record retry, the next cycle publishes a fresh
// snapshot instead.
func (s *Streamer) Run(ctx context.Context) {
	s.logger.Info("streamer started",
		zap.String("symbol", s.symbol),
		zap.Duration("interval", s.interval),
	)

	for {
		res := s.RunCycle(ctx)
		s.logResult(res)

		select {
		case <-ctx.Done():
			s.logger.Info("streamer stopped", zap.String("symbol", s.symbol))
			return
		case <-time.After(s.interval):
		}
	}
}

// RunCycle performs one fetch-transform-publish cycle and reports the
// outcome as a value. Nothing is published unless the fetched quote carries
// every field the record schema needs.
func (s *Streamer) RunCycle(ctx context.Context) CycleResult {
	q, err := s.provider.Quote(ctx, s.symbol)
	if err != nil {
		return CycleResult{Outcome: CycleFetchFailed, Err: err}
	}
	if err := q.Validate(); err != nil {
		return CycleResult{Outcome: CycleFetchFailed, Err: err}
	}

	snap := marketdata.NewSnapshot(s.symbol, q, s.now())

	payload, err := json.Marshal(snap)
	if err != nil {
		return CycleResult{
			Outcome:  CyclePublishFailed,
			Snapshot: snap,
			Err:      fmt.Errorf("encode record: %w", err),
		}
	}

	ack, err := s.publisher.Publish(ctx, s.symbol, payload)
	if err != nil {
		return CycleResult{Outcome: CyclePublishFailed, Snapshot: snap, Err: err}
	}

	return CycleResult{Outcome: CycleOK, Snapshot: snap, Ack: ack}
}

func (s *Streamer) logResult(res CycleResult) {
	switch res.Outcome {
	case CycleOK:
		s.logger.Info("published quote",
			zap.String("symbol", res.Snapshot.Symbol),
			zap.Float64("price", res.Snapshot.Price),
			zap.Float64("change", res.Snapshot.Change),
			zap.Float64("change_percent", res.Snapshot.ChangePercent),
			zap.Int64("volume", res.Snapshot.Volume),
			zap.Time("timestamp", res.Snapshot.Timestamp),
			zap.String("sequence_number", res.Ack.SequenceNumber),
			zap.String("shard_id", res.Ack.ShardID),
		)
	case CycleFetchFailed:
		s.logger.Warn("quote fetch failed, retrying next cycle",
			zap.String("symbol", s.symbol),
			zap.Error(res.Err),
		)
	case CyclePublishFailed:
		s.logger.Warn("publish failed, snapshot dropped",
			zap.String("symbol", s.symbol),
			zap.Error(res.Err),
		)
	}
}
