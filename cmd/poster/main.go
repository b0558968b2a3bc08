// Command poster publishes one random image from the NASA Image and Video
// Library to Bluesky and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"nasa-poster/internal/adapters/archive"
	"nasa-poster/internal/adapters/bluesky"
	"nasa-poster/internal/adapters/httpclient"
	"nasa-poster/internal/adapters/imagefetch"
	"nasa-poster/internal/config"
	"nasa-poster/internal/domain"
	"nasa-poster/internal/usecases"
	"nasa-poster/pkg/log"
	"nasa-poster/pkg/log/transporters"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nasa-poster: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	log.SetDefault(logger)

	ctx := log.WithRunID(context.Background(), uuid.NewString())
	for _, w := range cfg.Warnings {
		log.GlobalWarnCtx(ctx, w)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	_, err = run(ctx, cfg)
	stop()

	if err != nil {
		log.GlobalFatalCtx(ctx, "run failed", "error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

// newLogger builds the process logger. cfg has already been validated.
func newLogger(cfg config.LogConfig) *log.Logger {
	var t log.Transporter = transporters.NewJSON(os.Stdout)
	if cfg.Format == "text" {
		t = transporters.NewText(os.Stderr)
	}
	return log.New(cfg.Level, t)
}

// run logs in, wires the adapters around the session and performs one posting pass.
func run(ctx context.Context, cfg *config.Config) (*domain.PublishedPost, error) {
	log.GlobalInfoCtx(ctx, "run started", "feed", cfg.Archive.FeedURL, "service", cfg.Bluesky.Service)

	httpClient := httpclient.New(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)

	session, err := bluesky.NewClient(cfg.Bluesky.Service, httpClient).
		Login(ctx, cfg.Bluesky.Username, cfg.Bluesky.Password)
	if err != nil {
		return nil, err
	}

	markers := usecases.VariantMarkers{
		Original:   cfg.Variants.Original,
		Thumbnail:  cfg.Variants.Thumbnail,
		JPEGSuffix: cfg.Variants.JPEGSuffix,
	}
	fetcher := imagefetch.NewFetcher(httpClient, session, cfg.Image.MaxBytes, cfg.Image.TypePrefix)

	publish := usecases.NewPublishAssetUseCase(
		archive.NewClient(httpClient, cfg.Archive.FeedURL),
		usecases.NewPickAssetUseCase(nil, domain.MediaKind(cfg.Archive.ExcludedMedia)),
		usecases.NewResolveImageUseCase(fetcher, markers),
		usecases.NewComposePostUseCase(session, cfg.Archive.DetailsURL, time.Now),
		session,
	)

	return publish.Execute(ctx)
}
