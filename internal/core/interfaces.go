// Package core defines the interfaces and value types shared by the
// speech-publisher pipeline and the NATS worker.
package core

import "context"

// ContentTypeMPEG is the content type recorded on uploaded audio objects.
const ContentTypeMPEG = "audio/mpeg"

// SpeechRequest describes a single synthesis call.
type SpeechRequest struct {
	// Text is the input to synthesize. Callers pass it already trimmed;
	// the synthesizer sends it verbatim.
	Text string

	// Voice selects the synthetic speaker (e.g. "Joanna").
	Voice string
}

// UploadReport describes where a successful run placed the audio.
type UploadReport struct {
	Bucket string
	Key    string
	Bytes  int
}

// Location returns the s3://bucket/key form of the destination.
func (r UploadReport) Location() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// Synthesizer converts text into an MP3 audio payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// ObjectStore is a key-value blob store with bucket scoping handled by the
// implementation.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}
