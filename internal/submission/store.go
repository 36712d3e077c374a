// Package submission hands completed wizard payloads to JetStream.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/logger"
	"github.com/mark3labs/augur/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Default.Named("submission")

// Event is the envelope stored for every completed wizard.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	Feature   string       `json:"feature"`
	Type      string       `json:"type"`
	Source    string       `json:"source"` // tui, cli or mcp
	Payload   form.Payload `json:"payload"`
}

// Record is a stored event as read back from the stream.
type Record struct {
	Sequence  uint64          `json:"sequence"`
	Timestamp time.Time       `json:"timestamp"`
	Feature   string          `json:"feature"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
}

// Store publishes payloads to the submissions stream.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
	source string
}

// NewStore creates a store. source tags every event with the surface that
// collected it.
func NewStore(js jetstream.JetStream, stream jetstream.Stream, source string) *Store {
	return &Store{js: js, stream: stream, source: source}
}

// Publish appends a payload to the stream on augur.<feature>.submitted.
func (s *Store) Publish(ctx context.Context, p form.Payload) (*jetstream.PubAck, error) {
	event := Event{
		Timestamp: p.SubmittedAt(),
		Feature:   p.Definition(),
		Type:      nats.EventTypeSubmitted,
		Source:    s.source,
		Payload:   p,
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Feature, event.Type)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		log.Error("Failed to publish to %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug("Published %s submission: seq=%d", event.Feature, ack.Sequence)
	return ack, nil
}

// Sink adapts Publish to a form.OnComplete callback. Publish errors are
// logged and passed to onErr when it is non-nil.
func (s *Store) Sink(ctx context.Context, onErr func(error)) func(form.Payload) {
	return func(p form.Payload) {
		if _, err := s.Publish(ctx, p); err != nil {
			log.Warn("Submission for %s not stored: %v", p.Definition(), err)
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

// Last returns the most recent submission for a feature.
func (s *Store) Last(ctx context.Context, feature string) (*Record, error) {
	msg, err := s.stream.GetLastMsgForSubject(ctx, nats.SubjectForEvent(feature, nats.EventTypeSubmitted))
	if err != nil {
		return nil, fmt.Errorf("load last %s submission: %w", feature, err)
	}

	var rec Record
	if err := json.Unmarshal(msg.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	rec.Sequence = msg.Sequence
	return &rec, nil
}

// History returns up to limit submissions for a feature, oldest first.
// A limit of zero or less returns every stored submission.
func (s *Store) History(ctx context.Context, feature string, limit int) ([]Record, error) {
	cons, err := nats.CreateConsumer(ctx, s.stream, nats.SubjectForEvent(feature, nats.EventTypeSubmitted))
	if err != nil {
		return nil, fmt.Errorf("create %s consumer: %w", feature, err)
	}
	name := cons.CachedInfo().Name
	defer func() {
		if err := s.stream.DeleteConsumer(context.Background(), name); err != nil {
			log.Debug("Failed to delete consumer %s: %v", name, err)
		}
	}()

	pending := int(cons.CachedInfo().NumPending)
	if pending == 0 {
		return nil, nil
	}

	batch, err := cons.Fetch(pending, jetstream.FetchMaxWait(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("fetch %s submissions: %w", feature, err)
	}

	records := make([]Record, 0, pending)
	for msg := range batch.Messages() {
		var rec Record
		if err := json.Unmarshal(msg.Data(), &rec); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		if meta, err := msg.Metadata(); err == nil {
			rec.Sequence = meta.Sequence.Stream
		}
		records = append(records, rec)
	}
	if err := batch.Error(); err != nil {
		return nil, fmt.Errorf("fetch %s submissions: %w", feature, err)
	}

	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}
