package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *nats.Embedded) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e, err := nats.Open(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	return NewStore(e.JS, e.Stream, "test"), e
}

func submitTarot(t *testing.T, opts ...form.Option) form.Payload {
	t.Helper()
	def, ok := features.Lookup("tarot")
	require.True(t, ok)

	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	opts = append(opts, form.WithClock(func() time.Time { return at }))
	w, err := form.New(def, opts...)
	require.NoError(t, err)

	require.NoError(t, w.Set("question", form.String("What does the season hold?")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("spread", form.String("celtic_cross")))
	p, err := w.Submit()
	require.NoError(t, err)
	return p
}

func TestStore_Sink(t *testing.T) {
	store, e := setupStore(t)
	ctx := context.Background()

	submitTarot(t, form.OnComplete(store.Sink(ctx, func(err error) {
		t.Errorf("unexpected publish error: %v", err)
	})))

	info, err := e.Stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)

	rec, err := store.Last(ctx, "tarot")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Sequence)
	assert.Equal(t, "tarot", rec.Feature)
	assert.Equal(t, nats.EventTypeSubmitted, rec.Type)
	assert.Equal(t, "test", rec.Source)
	assert.True(t, rec.Timestamp.Equal(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)))
	assert.JSONEq(t, `{
		"definition": "tarot",
		"submitted_at": "2026-10-01T12:00:00Z",
		"fields": {
			"question": "What does the season hold?",
			"spread": "celtic_cross",
			"reversed_cards": false
		}
	}`, string(rec.Payload))
}

func TestStore_LastMissing(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Last(context.Background(), "numerology")
	require.Error(t, err)
	assert.True(t, errors.Is(err, jetstream.ErrMsgNotFound))
}

func TestStore_History(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	recs, err := store.History(ctx, "tarot", 0)
	require.NoError(t, err)
	assert.Empty(t, recs)

	for range 3 {
		submitTarot(t, form.OnComplete(store.Sink(ctx, nil)))
	}

	recs, err = store.History(ctx, "tarot", 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{recs[0].Sequence, recs[1].Sequence, recs[2].Sequence})

	recs, err = store.History(ctx, "tarot", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(2), recs[0].Sequence)
	assert.Equal(t, "tarot", recs[1].Feature)

	recs, err = store.History(ctx, "numerology", 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_SinkReportsErrors(t *testing.T) {
	store, e := setupStore(t)
	require.NoError(t, e.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got error
	submitTarot(t, form.OnComplete(store.Sink(ctx, func(err error) { got = err })))
	require.Error(t, got)
}
