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

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/ptr"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func rejected() *domain.Reservation {
	return &domain.Reservation{
		ID:           15,
		RoomID:       2,
		Date:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "10:30",
		State:        domain.StateRejected,
		RejectReason: ptr.Ptr("room is closed"),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, logger.NewNop())
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), NewEvent(EventRejected, rejected(), 99, at))
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "15", string(msg.Key))
	assert.Equal(t, "reservation.rejected", string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "2024-03-05", decoded.Date)
	assert.Equal(t, "09:00", decoded.StartTime)
	assert.Equal(t, int64(99), decoded.ActorID)
	require.NotNil(t, decoded.Reason)
	assert.Equal(t, "room is closed", *decoded.Reason)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, logger.NewNop())

	err := p.Publish(context.Background(), NewEvent(EventCreated, rejected(), 1, time.Now()))
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(Config{Topic: "reservations"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewKafkaPublisher(Config{Brokers: []string{"localhost:9092"}}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := NewKafkaPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "reservations"}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestNewEvent_ReasonOnlyForDecisions(t *testing.T) {
	e := NewEvent(EventAccepted, rejected(), 1, time.Now())
	assert.Nil(t, e.Reason)
}
