package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"service-courier-tracking/internal/domain"
)

func TestNewStatusProducer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	p, err := NewStatusProducer(nil, "order-status")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = NewStatusProducer([]string{"b:9092"}, " ")
	require.NoError(t, err)
	require.Nil(t, p)

	require.NoError(t, p.Close())
}

func TestNewStatusProducer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newSyncProducer
	t.Cleanup(func() { newSyncProducer = orig })

	sentinel := errors.New("no brokers")
	newSyncProducer = func([]string, *sarama.Config) (sarama.SyncProducer, error) {
		return nil, sentinel
	}

	p, err := NewStatusProducer([]string{"b:9092"}, "order-status")
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, p)
}

func TestStatusProducer_PublishStatus_KeyedByOrder(t *testing.T) {
	t.Parallel()

	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "42", string(key))
		require.Equal(t, "order-status", msg.Topic)

		raw, err := msg.Value.Encode()
		require.NoError(t, err)
		var dto StatusEventDTO
		require.NoError(t, json.Unmarshal(raw, &dto))
		require.Equal(t, int64(42), dto.OrderID)
		require.Equal(t, "IN_TRANSIT", dto.Status)
		return nil
	})

	p := &StatusProducer{producer: mp, topic: "order-status"}
	err := p.PublishStatus(context.Background(), domain.StatusChange{
		OrderID:   42,
		From:      domain.OrderPickedUp,
		To:        domain.OrderInTransit,
		ChangedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestStatusProducer_PublishStatus_WrapsSendError(t *testing.T) {
	t.Parallel()

	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	p := &StatusProducer{producer: mp, topic: "order-status"}
	err := p.PublishStatus(context.Background(), domain.StatusChange{OrderID: 1, To: domain.OrderConfirmed})
	require.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, p.Close())
}
