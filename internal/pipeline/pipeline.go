// Package pipeline implements the synthesize-and-upload sequence behind the
// speech-publisher CLI.
package pipeline

import (
	"context"
	"fmt"

	"github.com/book-expert/logger"

	"github.com/book-expert/speech-publisher/internal/core"
	"github.com/book-expert/speech-publisher/internal/input"
)

// Job describes one publisher run.
type Job struct {
	TextFile string
	Key      string
	Voice    string
}

// Pipeline wires the input reader, the synthesizer and the object store into
// a strict sequence: read, trim, synthesize, upload. There is exactly one
// conditional exit (empty text) and no retries.
type Pipeline struct {
	synthesizer core.Synthesizer
	store       core.ObjectStore
	bucket      string
	log         *logger.Logger
}

// New creates a Pipeline. The bucket is recorded only for reporting; the
// store itself is already scoped to it.
func New(
	synthesizer core.Synthesizer,
	store core.ObjectStore,
	bucket string,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		synthesizer: synthesizer,
		store:       store,
		bucket:      bucket,
		log:         log,
	}
}

// Run executes the job and returns where the audio was written. Empty input
// surfaces as input.ErrEmptyText before any network call is made.
func (p *Pipeline) Run(ctx context.Context, job Job) (core.UploadReport, error) {
	text, err := input.ReadText(job.TextFile)
	if err != nil {
		return core.UploadReport{}, err
	}

	p.log.Info("Read %d characters from '%s'", len(text), job.TextFile)

	audioData, err := p.synthesizer.Synthesize(ctx, core.SpeechRequest{
		Text:  text,
		Voice: job.Voice,
	})
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("synthesis failed: %w", err)
	}

	p.log.Info("Synthesized %d bytes of audio with voice '%s'", len(audioData), job.Voice)

	err = p.store.Upload(ctx, job.Key, audioData, core.ContentTypeMPEG)
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("upload failed: %w", err)
	}

	report := core.UploadReport{
		Bucket: p.bucket,
		Key:    job.Key,
		Bytes:  len(audioData),
	}

	p.log.Info("Uploaded %s (%d bytes)", report.Location(), report.Bytes)

	return report, nil
}
