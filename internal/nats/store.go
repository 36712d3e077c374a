package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding completed wizard payloads.
	StreamName = "augur_submissions"

	subjectRoot = "augur"

	// Event types
	EventTypeSubmitted = "submitted"
)

// SubjectForEvent returns the subject for one event type of a feature.
// Example: "augur.birth-chart.submitted"
func SubjectForEvent(feature, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, token(feature), token(eventType))
}

// token turns an arbitrary name into a single subject token. Slugs never
// contain '.', '*', '>' or whitespace.
func token(name string) string {
	t := slug.Make(name)
	if t == "" {
		return "_"
	}
	return t
}

// SetupStream creates or updates the submissions stream with 30-day retention.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{subjectRoot + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
}

// CreateConsumer creates an ephemeral consumer that replays every stored
// event on subject. It is removed by the server after a minute of inactivity.
func CreateConsumer(ctx context.Context, stream jetstream.Stream, subject string) (jetstream.Consumer, error) {
	return stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject:     subject,
		AckPolicy:         jetstream.AckNonePolicy,
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		InactiveThreshold: time.Minute,
	})
}
