package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"quotestream/config"
	"quotestream/internal/streamer"
	"quotestream/logger"
	"quotestream/pkg/marketdata"
	"quotestream/pkg/stream"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// local .env overrides, ignored when absent
	_ = godotenv.Load()

	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// stop on SIGINT/SIGTERM; a clean signal shutdown exits 0
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// destination must exist and be ACTIVE before the loop starts
	publisher, err := stream.NewKinesisPublisher(ctx, cfg.Stream, cfg.Log.Environment)
	if err != nil {
		log.Fatal("destination stream unavailable", zap.Error(err))
	}

	provider := marketdata.NewYahooProvider()

	streamer.New(cfg.Quote, provider, publisher, log).Run(ctx)
}
