// Package config_test tests configuration resolution for the speech-publisher.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/book-expert/speech-publisher/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(config.EnvBucket, "my-bucket")
	t.Setenv(config.EnvKey, "out/hello.mp3")
	t.Setenv(config.EnvTextFile, "")
	t.Setenv(config.EnvVoice, "")
	t.Setenv(config.EnvRegion, "")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "my-bucket", cfg.Bucket)
	assert.Equal(t, "out/hello.mp3", cfg.Key)
	assert.Equal(t, "speech.txt", cfg.TextFile)
	assert.Equal(t, "Joanna", cfg.Voice)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(config.EnvBucket, "other-bucket")
	t.Setenv(config.EnvKey, "announcements/today.mp3")
	t.Setenv(config.EnvTextFile, "input/today.txt")
	t.Setenv(config.EnvVoice, "Matthew")
	t.Setenv(config.EnvRegion, "eu-west-1")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "input/today.txt", cfg.TextFile)
	assert.Equal(t, "Matthew", cfg.Voice)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestFromEnv_MissingBucket(t *testing.T) {
	t.Setenv(config.EnvBucket, "")
	t.Setenv(config.EnvKey, "out/hello.mp3")

	_, err := config.FromEnv()
	require.ErrorIs(t, err, config.ErrBucketRequired)
}

func TestFromEnv_MissingKey(t *testing.T) {
	t.Setenv(config.EnvBucket, "my-bucket")
	t.Setenv(config.EnvKey, "")

	_, err := config.FromEnv()
	require.ErrorIs(t, err, config.ErrKeyRequired)
}

func writeWorkerConfig(t *testing.T, tomlData string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "worker.toml")
	err := os.WriteFile(path, []byte(tomlData), 0o600)
	require.NoError(t, err)

	return path
}

func TestLoadWorker(t *testing.T) {
	t.Parallel()

	tomlData := `
[nats]
url = "nats://127.0.0.1:4222"
subject = "speech.requested"
queue = "speech-workers"

[storage]
bucket = "audio-bucket"
region = "eu-central-1"

[synthesis]
voice = "Amy"
normalize = true
`

	cfg, err := config.LoadWorker(writeWorkerConfig(t, tomlData))
	require.NoError(t, err)

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "speech.requested", cfg.NATS.Subject)
	assert.Equal(t, "speech-workers", cfg.NATS.Queue)
	assert.Equal(t, "audio-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "eu-central-1", cfg.Storage.Region)
	assert.Equal(t, "Amy", cfg.Synthesis.Voice)
	assert.True(t, cfg.Synthesis.Normalize)
}

func TestLoadWorker_Defaults(t *testing.T) {
	t.Parallel()

	tomlData := `
[nats]
url = "nats://127.0.0.1:4222"
subject = "speech.requested"

[storage]
bucket = "audio-bucket"
`

	cfg, err := config.LoadWorker(writeWorkerConfig(t, tomlData))
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "Joanna", cfg.Synthesis.Voice)
	assert.False(t, cfg.Synthesis.Normalize)
}

func TestLoadWorker_MissingRequired(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		tomlData string
		wantErr  error
	}{
		{
			name:     "missing nats url",
			tomlData: "[nats]\nsubject = \"s\"\n[storage]\nbucket = \"b\"\n",
			wantErr:  config.ErrNATSURLRequired,
		},
		{
			name:     "missing subject",
			tomlData: "[nats]\nurl = \"nats://127.0.0.1:4222\"\n[storage]\nbucket = \"b\"\n",
			wantErr:  config.ErrSubjectRequired,
		},
		{
			name:     "missing bucket",
			tomlData: "[nats]\nurl = \"nats://127.0.0.1:4222\"\nsubject = \"s\"\n",
			wantErr:  config.ErrWorkerBucketRequired,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadWorker(writeWorkerConfig(t, testCase.tomlData))
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}
