// main package for the one-shot speech-publisher CLI.
//
// The publisher reads a text file, synthesizes it to MP3 speech and uploads
// the audio to S3. Configuration comes entirely from the environment; see
// internal/config for the variable names and defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/book-expert/logger"

	"github.com/book-expert/speech-publisher/internal/config"
	"github.com/book-expert/speech-publisher/internal/core"
	"github.com/book-expert/speech-publisher/internal/input"
	"github.com/book-expert/speech-publisher/internal/objectstore"
	"github.com/book-expert/speech-publisher/internal/pipeline"
	"github.com/book-expert/speech-publisher/internal/synth"
)

const (
	logFileName      = "speech-publisher.log"
	emptyTextMessage = "Text file is empty."
)

func main() {
	report, err := run(context.Background())
	if err != nil {
		// Empty input is a controlled early exit, reported as a plain
		// message rather than an error.
		if errors.Is(err, input.ErrEmptyText) {
			fmt.Println(emptyTextMessage)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "speech-publisher: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Uploaded %s\n", report.Location())
}

func run(ctx context.Context) (core.UploadReport, error) {
	log, err := logger.New(os.TempDir(), logFileName)
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() {
		closeErr := log.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	cfg, err := config.FromEnv()
	if err != nil {
		return core.UploadReport{}, err
	}

	log.Info("Configuration resolved: bucket=%s key=%s voice=%s region=%s",
		cfg.Bucket, cfg.Key, cfg.Voice, cfg.Region)

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	pipe := pipeline.New(
		synth.NewFromConfig(awsConfig),
		objectstore.NewFromConfig(awsConfig, cfg.Bucket),
		cfg.Bucket,
		log,
	)

	report, err := pipe.Run(ctx, pipeline.Job{
		TextFile: cfg.TextFile,
		Key:      cfg.Key,
		Voice:    cfg.Voice,
	})
	if err != nil {
		return core.UploadReport{}, err
	}

	return report, nil
}
