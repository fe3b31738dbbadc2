// Package synth provides the Polly-backed implementation of the Synthesizer
// interface.
package synth

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/book-expert/speech-publisher/internal/core"
)

// Static errors.
var (
	// ErrTextEmpty indicates that the request carried no text.
	ErrTextEmpty = errors.New("text cannot be empty")
	// ErrVoiceEmpty indicates that the request carried no voice id.
	ErrVoiceEmpty = errors.New("voice cannot be empty")
	// ErrEmptyAudio indicates that the service returned no audio data.
	ErrEmptyAudio = errors.New("received empty audio data")
)

// SpeechAPI is the subset of the Polly client used by this package. It exists
// so tests can substitute a fake client.
type SpeechAPI interface {
	SynthesizeSpeech(
		ctx context.Context,
		params *polly.SynthesizeSpeechInput,
		optFns ...func(*polly.Options),
	) (*polly.SynthesizeSpeechOutput, error)
}

// PollySynthesizer implements core.Synthesizer against the Polly service.
// Every call is a single attempt; no retry or backoff is performed here.
type PollySynthesizer struct {
	client SpeechAPI
}

// New creates a PollySynthesizer on top of an existing Polly client.
func New(client SpeechAPI) *PollySynthesizer {
	return &PollySynthesizer{client: client}
}

// NewFromConfig creates a PollySynthesizer from a resolved AWS configuration.
func NewFromConfig(awsConfig aws.Config) *PollySynthesizer {
	return &PollySynthesizer{client: polly.NewFromConfig(awsConfig)}
}

// Synthesize sends the text to the service, always requesting MP3 output,
// and reads the full audio stream into memory.
func (s *PollySynthesizer) Synthesize(
	ctx context.Context,
	req core.SpeechRequest,
) ([]byte, error) {
	validationErr := validateRequest(req)
	if validationErr != nil {
		return nil, validationErr
	}

	output, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(req.Text),
		OutputFormat: pollytypes.OutputFormatMp3,
		VoiceId:      pollytypes.VoiceId(req.Voice),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	audioData, readErr := io.ReadAll(output.AudioStream)
	closeErr := output.AudioStream.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", readErr)
	}

	if closeErr != nil {
		return nil, fmt.Errorf("failed to close audio stream: %w", closeErr)
	}

	if len(audioData) == 0 {
		return nil, ErrEmptyAudio
	}

	return audioData, nil
}

func validateRequest(req core.SpeechRequest) error {
	if req.Text == "" {
		return ErrTextEmpty
	}

	if req.Voice == "" {
		return ErrVoiceEmpty
	}

	return nil
}
