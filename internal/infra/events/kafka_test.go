package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaSinkWrite(t *testing.T) {
	w := &recordingWriter{}
	sink := &KafkaSink{writer: w}
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	err := sink.Write(context.Background(), audit.Event{
		ShopSlug: "demo",
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: "b1",
		At:       at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "demo", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	assert.Equal(t, "booking_completed", string(msg.Headers[0].Value))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "b1", decoded.EntityID)
}

func TestKafkaSinkWrapsWriterError(t *testing.T) {
	cause := errors.New("no brokers")
	sink := &KafkaSink{writer: &recordingWriter{err: cause}}

	err := sink.Write(context.Background(), audit.Event{ShopSlug: "demo"})
	assert.ErrorIs(t, err, cause)
}
