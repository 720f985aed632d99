package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"responsagility-be/internal/dto"
	"responsagility-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumer_StampsClientActivityOnMirrorReady(t *testing.T) {
	factory := &fakeFactory{store: newFakeStore()}
	bus := &fakeEventBus{}

	clientId := uuid.New()
	factory.store.clients[clientId] = &entity.Client{
		Id:        clientId,
		Email:     "client@example.com",
		Active:    false,
		CreatedAt: time.Now(),
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "MIRROR_READY"
	consumer := NewConsumerService(pubSub, topic, factory, bus, nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(topic, pubSub)
	payload, err := json.Marshal(dto.PublishMirrorReadyMessage{ClientId: clientId, Date: "2026-03-02"})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		c := factory.store.getClient(clientId)
		return c != nil && c.Active && c.LastPracticeAt != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(bus.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	published := bus.snapshot()
	assert.Equal(t, "reflection.completed", published[0].EventType())
	assert.Equal(t, "2026-03-02", published[0].Payload()["date"])
}

func TestConsumer_MalformedPayloadIsDropped(t *testing.T) {
	factory := &fakeFactory{store: newFakeStore()}
	bus := &fakeEventBus{}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "MIRROR_READY"
	consumer := NewConsumerService(pubSub, topic, factory, bus, nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(topic, pubSub)
	require.NoError(t, publisher.Publish(context.Background(), []byte("not json")))

	// The malformed message is acked away without touching anything.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, bus.snapshot())
	assert.Zero(t, factory.store.clientCount())
}
