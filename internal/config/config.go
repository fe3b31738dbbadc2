// Package config resolves configuration for the speech-publisher binaries.
//
// The one-shot CLI is configured entirely from the process environment. The
// worker daemon is configured from a TOML file, with the same storage and
// synthesis defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names forming the CLI configuration surface.
const (
	EnvTextFile = "TEXT_FILE"
	EnvBucket   = "S3_BUCKET"
	EnvKey      = "S3_KEY"
	EnvVoice    = "VOICE_ID"
	EnvRegion   = "AWS_REGION"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultTextFile = "speech.txt"
	DefaultVoice    = "Joanna"
	DefaultRegion   = "us-east-1"
)

// Static configuration errors.
var (
	// ErrBucketRequired indicates that S3_BUCKET is not set.
	ErrBucketRequired = errors.New("S3_BUCKET environment variable is required")
	// ErrKeyRequired indicates that S3_KEY is not set.
	ErrKeyRequired = errors.New("S3_KEY environment variable is required")
	// ErrNATSURLRequired indicates that the worker config has no NATS URL.
	ErrNATSURLRequired = errors.New("nats url is required")
	// ErrSubjectRequired indicates that the worker config has no subject.
	ErrSubjectRequired = errors.New("nats subject is required")
	// ErrWorkerBucketRequired indicates that the worker config has no bucket.
	ErrWorkerBucketRequired = errors.New("storage bucket is required")
)

// Config holds the resolved settings for a single publisher run.
type Config struct {
	TextFile string
	Bucket   string
	Key      string
	Voice    string
	Region   string
}

// FromEnv resolves the publisher configuration from the environment.
// S3_BUCKET and S3_KEY are mandatory; the rest fall back to defaults.
func FromEnv() (*Config, error) {
	bucket := os.Getenv(EnvBucket)
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	key := os.Getenv(EnvKey)
	if key == "" {
		return nil, ErrKeyRequired
	}

	return &Config{
		TextFile: getenvDefault(EnvTextFile, DefaultTextFile),
		Bucket:   bucket,
		Key:      key,
		Voice:    getenvDefault(EnvVoice, DefaultVoice),
		Region:   getenvDefault(EnvRegion, DefaultRegion),
	}, nil
}

func getenvDefault(name, fallback string) string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}

	return value
}

// NATSConfig holds the worker's messaging settings.
type NATSConfig struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
	Queue   string `toml:"queue"`
}

// StorageConfig holds the worker's object storage settings.
type StorageConfig struct {
	Bucket string `toml:"bucket"`
	Region string `toml:"region"`
}

// SynthesisConfig holds the worker's synthesis settings.
type SynthesisConfig struct {
	Voice     string `toml:"voice"`
	Normalize bool   `toml:"normalize"`
}

// WorkerConfig is the root configuration for the speech-worker daemon.
type WorkerConfig struct {
	NATS      NATSConfig      `toml:"nats"`
	Storage   StorageConfig   `toml:"storage"`
	Synthesis SynthesisConfig `toml:"synthesis"`
	Paths     PathsConfig     `toml:"paths"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
}

// LoadWorker parses and validates the worker configuration from a TOML file.
func LoadWorker(path string) (*WorkerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worker config '%s': %w", path, err)
	}

	var cfg WorkerConfig

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse worker config '%s': %w", path, err)
	}

	validationErr := cfg.validate()
	if validationErr != nil {
		return nil, validationErr
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *WorkerConfig) validate() error {
	if c.NATS.URL == "" {
		return ErrNATSURLRequired
	}

	if c.NATS.Subject == "" {
		return ErrSubjectRequired
	}

	if c.Storage.Bucket == "" {
		return ErrWorkerBucketRequired
	}

	return nil
}

func (c *WorkerConfig) applyDefaults() {
	if c.Storage.Region == "" {
		c.Storage.Region = DefaultRegion
	}

	if c.Synthesis.Voice == "" {
		c.Synthesis.Voice = DefaultVoice
	}

	if c.Paths.BaseLogsDir == "" {
		c.Paths.BaseLogsDir = os.TempDir()
	}
}
