package nats

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "augur.birth-chart.submitted", SubjectForEvent("birth-chart", EventTypeSubmitted))
	assert.Equal(t, "augur.career-reading.submitted", SubjectForEvent("Career Reading", EventTypeSubmitted))
	assert.Equal(t, "augur._.submitted", SubjectForEvent("", EventTypeSubmitted))
}

func TestOpen(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e, err := Open(ctx, t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, e.Close()) }()

	_, err = e.JS.Publish(ctx, SubjectForEvent("tarot", EventTypeSubmitted), []byte(`{}`))
	require.NoError(t, err)

	info, err := e.Stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, StreamName, info.Config.Name)
	assert.Equal(t, uint64(1), info.State.Msgs)

	cons, err := CreateConsumer(ctx, e.Stream, SubjectForEvent("tarot", EventTypeSubmitted))
	require.NoError(t, err)
	msg, err := cons.Next(jetstream.FetchMaxWait(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, "augur.tarot.submitted", msg.Subject())
}
