package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"service-courier-tracking/internal/service/orders"
	"service-courier-tracking/internal/testutil/testlog"
)

type stubSession struct {
	sarama.ConsumerGroupSession

	mu     sync.Mutex
	marked []int64
}

func (s *stubSession) Context() context.Context { return context.Background() }
func (s *stubSession) MemberID() string         { return "member-1" }

func (s *stubSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *stubSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.marked...)
}

type stubClaim struct {
	sarama.ConsumerGroupClaim
	ch chan *sarama.ConsumerMessage
}

func (c stubClaim) Messages() <-chan *sarama.ConsumerMessage { return c.ch }

func claimOf(values ...[]byte) stubClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: "orders", Offset: int64(i), Value: v}
	}
	close(ch)
	return stubClaim{ch: ch}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestConsumeClaim_MarksEveryMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     func(t *testing.T) []byte
		handleErr error
		wantCalls int
		wantEvent string
	}{
		{
			name:      "bad json",
			value:     func(*testing.T) []byte { return []byte("not-json") },
			wantEvent: "kafka_bad_event",
		},
		{
			name:      "missing order id",
			value:     func(t *testing.T) []byte { return mustJSON(t, EventDTO{Status: "PENDING"}) },
			wantEvent: "kafka_bad_event",
		},
		{
			name:      "handler failure",
			value:     func(t *testing.T) []byte { return mustJSON(t, EventDTO{OrderID: 1, Status: "PENDING"}) },
			handleErr: errors.New("db down"),
			wantCalls: 1,
			wantEvent: "kafka_handle_failed",
		},
		{
			name:      "permanent failure",
			value:     func(t *testing.T) []byte { return mustJSON(t, EventDTO{OrderID: 1, Status: "PENDING"}) },
			handleErr: Permanent(errors.New("restaurant location missing")),
			wantCalls: 1,
			wantEvent: "kafka_event_rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := testlog.New()
			calls := 0
			c := &Consumer{
				logger: rec.Logger(),
				handler: func(context.Context, orders.Event) error {
					calls++
					return tt.handleErr
				},
			}
			sess := &stubSession{}

			require.NoError(t, c.ConsumeClaim(sess, claimOf(tt.value(t))))
			require.Equal(t, []int64{0}, sess.markedOffsets())
			require.Equal(t, tt.wantCalls, calls)
			require.True(t, rec.HasEvent(tt.wantEvent))
		})
	}
}

func TestConsumeClaim_DeliversDecodedEvent(t *testing.T) {
	t.Parallel()

	var got []orders.Event
	c := &Consumer{
		logger: testlog.New().Logger(),
		handler: func(_ context.Context, ev orders.Event) error {
			got = append(got, ev)
			return nil
		},
	}
	sess := &stubSession{}

	first := mustJSON(t, EventDTO{
		OrderID:         1,
		Status:          " PENDING ",
		CustomerID:      7,
		Restaurant:      &LocationDTO{Lat: 55.75, Lng: 37.61},
		PrepTimeMinutes: 12,
	})
	second := mustJSON(t, EventDTO{OrderID: 2, Status: "CANCELLED"})

	require.NoError(t, c.ConsumeClaim(sess, claimOf(first, second)))
	require.Equal(t, []int64{0, 1}, sess.markedOffsets())
	require.Len(t, got, 2)

	require.Equal(t, int64(1), got[0].OrderID)
	require.Equal(t, "PENDING", got[0].Status)
	require.Equal(t, int64(7), got[0].CustomerID)
	require.NotNil(t, got[0].Restaurant)
	require.InDelta(t, 55.75, got[0].Restaurant.Lat, 1e-9)
	require.Equal(t, int64(12*60), int64(got[0].PrepTime.Seconds()))
	require.Equal(t, "CANCELLED", got[1].Status)
}

func TestSetup_LogsSession(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{logger: rec.Logger()}

	require.NoError(t, c.Setup(&stubSession{}))
	require.NoError(t, c.Cleanup(&stubSession{}))
	require.True(t, rec.HasEvent("kafka_session_started"))
}

func TestPermanent(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad payload")
	err := Permanent(cause)
	require.ErrorIs(t, err, ErrPermanent)
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, Permanent(nil), ErrPermanent)
}
