package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"business-directory/directory-svc/internal/domain"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)
	event := domain.Event{
		Type:       domain.EventReviewCreated,
		BusinessID: "b1",
		ReviewID:   "r1",
		Rating:     5,
		Timestamp:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte("b1"), msg.Key)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, []byte(domain.EventReviewCreated), msg.Headers[0].Value)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("leader not available")})
	err := publisher.Publish(context.Background(), domain.Event{Type: domain.EventBusinessDeleted, BusinessID: "b1"})
	assert.Error(t, err)
}
