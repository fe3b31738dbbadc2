// Package worker provides a NATS worker that processes synthesis requests.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/book-expert/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/speech-publisher/internal/core"
	"github.com/book-expert/speech-publisher/internal/events"
	"github.com/book-expert/speech-publisher/internal/text"
)

const handleMessageTimeout = 30 * time.Second

const audioKeySuffix = ".mp3"

// ErrNoText indicates that a request carried neither inline text nor a text key.
var ErrNoText = errors.New("event must carry either text or a text key")

// Options configures a NatsWorker.
type Options struct {
	// Subject to subscribe on.
	Subject string
	// Queue group name; empty means a plain subscription.
	Queue string
	// Bucket the store writes to, reported back in reply events.
	Bucket string
	// DefaultVoice is used when a request does not name a voice.
	DefaultVoice string
	// Normalize enables input normalization before synthesis.
	Normalize bool
}

// NatsWorker listens for synthesis requests on a NATS subject, synthesizes
// the text and publishes the audio to the object store.
type NatsWorker struct {
	natsConnection *nats.Conn
	options        Options
	store          core.ObjectStore
	synthesizer    core.Synthesizer
	normalizer     *text.Normalizer
	log            *logger.Logger
}

// NewNatsWorker creates a new instance of a NATS worker.
func NewNatsWorker(
	natsConnection *nats.Conn,
	options Options,
	store core.ObjectStore,
	synthesizer core.Synthesizer,
	log *logger.Logger,
) (*NatsWorker, error) {
	var normalizer *text.Normalizer
	if options.Normalize {
		normalizer = text.NewNormalizer()
	}

	return &NatsWorker{
		natsConnection: natsConnection,
		options:        options,
		store:          store,
		synthesizer:    synthesizer,
		normalizer:     normalizer,
		log:            log,
	}, nil
}

// Run starts the worker and begins listening for messages. It blocks until
// the context is cancelled, then drains the subscription.
func (w *NatsWorker) Run(ctx context.Context) error {
	sub, err := w.subscribe()
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.options.Subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *NatsWorker) subscribe() (*nats.Subscription, error) {
	if w.options.Queue != "" {
		sub, err := w.natsConnection.QueueSubscribe(w.options.Subject, w.options.Queue, w.handleMessage)
		if err != nil {
			return nil, fmt.Errorf("queue subscribe failed: %w", err)
		}

		return sub, nil
	}

	sub, err := w.natsConnection.Subscribe(w.options.Subject, w.handleMessage)
	if err != nil {
		return nil, fmt.Errorf("subscribe failed: %w", err)
	}

	return sub, nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	var event events.SynthesisRequestedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		w.log.Error("Failed to unmarshal event: %v", err)

		return
	}

	report, processErr := w.processRequest(ctx, &event)
	if processErr != nil {
		w.log.Error("Failed to process synthesis request %s: %v", event.Header.EventID, processErr)

		return
	}

	replyErr := w.publishReply(msg, event.Header, report)
	if replyErr != nil {
		w.log.Error("Failed to publish reply for request %s: %v", event.Header.EventID, replyErr)
	}
}

// processRequest resolves the input text, synthesizes it and uploads the
// audio. No retry is performed; a failed message is logged and dropped.
func (w *NatsWorker) processRequest(
	ctx context.Context,
	event *events.SynthesisRequestedEvent,
) (core.UploadReport, error) {
	inputText, err := w.resolveText(ctx, event)
	if err != nil {
		return core.UploadReport{}, err
	}

	if w.normalizer != nil {
		inputText = w.normalizer.Normalize(inputText)
	}

	voice := event.Voice
	if voice == "" {
		voice = w.options.DefaultVoice
	}

	audioData, err := w.synthesizer.Synthesize(ctx, core.SpeechRequest{
		Text:  inputText,
		Voice: voice,
	})
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("failed to synthesize text: %w", err)
	}

	audioKey := event.AudioKey
	if audioKey == "" {
		audioKey = uuid.NewString() + audioKeySuffix
	}

	err = w.store.Upload(ctx, audioKey, audioData, core.ContentTypeMPEG)
	if err != nil {
		return core.UploadReport{}, fmt.Errorf("failed to upload audio for key '%s': %w", audioKey, err)
	}

	return core.UploadReport{
		Bucket: w.options.Bucket,
		Key:    audioKey,
		Bytes:  len(audioData),
	}, nil
}

func (w *NatsWorker) resolveText(
	ctx context.Context,
	event *events.SynthesisRequestedEvent,
) (string, error) {
	if event.Text != "" {
		return strings.TrimSpace(event.Text), nil
	}

	if event.TextKey == "" {
		return "", ErrNoText
	}

	textData, err := w.store.Download(ctx, event.TextKey)
	if err != nil {
		return "", fmt.Errorf("failed to download text for key '%s': %w", event.TextKey, err)
	}

	return strings.TrimSpace(string(textData)), nil
}

func (w *NatsWorker) publishReply(
	msg *nats.Msg,
	header events.EventHeader,
	report core.UploadReport,
) error {
	replyEvent := events.AudioPublishedEvent{
		Header: events.EventHeader{
			EventID:    uuid.NewString(),
			WorkflowID: header.WorkflowID,
			Timestamp:  time.Now().UTC(),
		},
		Bucket:   report.Bucket,
		AudioKey: report.Key,
		Bytes:    report.Bytes,
	}

	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		return fmt.Errorf("failed to marshal reply event: %w", err)
	}

	err = msg.Respond(replyData)
	if err != nil {
		return fmt.Errorf("failed to publish reply event: %w", err)
	}

	return nil
}
