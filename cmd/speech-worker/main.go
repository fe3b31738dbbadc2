// main package for the speech-worker daemon.
//
// The worker subscribes to a NATS subject for synthesis requests, pulls the
// input text inline or from S3, synthesizes it and uploads the resulting MP3
// back to S3, replying with an audio-published event.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/book-expert/logger"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/speech-publisher/internal/config"
	"github.com/book-expert/speech-publisher/internal/objectstore"
	"github.com/book-expert/speech-publisher/internal/synth"
	"github.com/book-expert/speech-publisher/internal/worker"
)

const (
	logFileName    = "speech-worker.log"
	flagConfigDesc = "Path to the worker TOML configuration"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "speech-worker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "worker.toml", flagConfigDesc)
	flag.Parse()

	cfg, err := config.LoadWorker(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Paths.BaseLogsDir, logFileName)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() {
		closeErr := log.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	natsWorker, err := worker.NewNatsWorker(
		natsConnection,
		worker.Options{
			Subject:      cfg.NATS.Subject,
			Queue:        cfg.NATS.Queue,
			Bucket:       cfg.Storage.Bucket,
			DefaultVoice: cfg.Synthesis.Voice,
			Normalize:    cfg.Synthesis.Normalize,
		},
		objectstore.NewFromConfig(awsConfig, cfg.Storage.Bucket),
		synth.NewFromConfig(awsConfig),
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	log.System("Speech worker listening on subject: %s", cfg.NATS.Subject)

	err = natsWorker.Run(ctx)
	if err != nil {
		return fmt.Errorf("worker stopped with error: %w", err)
	}

	log.Info("Speech worker shut down cleanly.")

	return nil
}
