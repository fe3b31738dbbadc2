// Package events defines the JSON payloads exchanged with the speech-worker.
package events

import "time"

// EventHeader carries identity and tracing information common to all events.
type EventHeader struct {
	EventID    string    `json:"event_id"`
	WorkflowID string    `json:"workflow_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// SynthesisRequestedEvent asks the worker to synthesize one piece of text.
// Either Text carries the input inline, or TextKey names an object to
// download from the configured bucket. AudioKey is optional; when empty the
// worker generates a key.
type SynthesisRequestedEvent struct {
	Header   EventHeader `json:"header"`
	TextKey  string      `json:"text_key,omitempty"`
	Text     string      `json:"text,omitempty"`
	Voice    string      `json:"voice,omitempty"`
	AudioKey string      `json:"audio_key,omitempty"`
}

// AudioPublishedEvent is the worker's reply after a successful upload.
type AudioPublishedEvent struct {
	Header   EventHeader `json:"header"`
	Bucket   string      `json:"bucket"`
	AudioKey string      `json:"audio_key"`
	Bytes    int         `json:"bytes"`
}
