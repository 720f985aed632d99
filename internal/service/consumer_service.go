package service

import (
	"context"
	"encoding/json"
	"time"

	"responsagility-be/internal/dto"
	"responsagility-be/internal/pkg/logger"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher is the outbound (NATS) side of the event flow. It may be
// absent when the bus is unreachable; consumers must tolerate nil.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService reacts to mirror-ready events: it stamps the client's
// practice activity (which keeps them eligible for the weekly batch) and
// forwards a best-effort event to the external bus.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	eventBus   EventPublisher
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventBus EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		eventBus:   eventBus,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishMirrorReadyMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal mirror ready message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: payload.ClientId})
	if err != nil {
		cs.log.Error("consumer", "Failed to get client", map[string]interface{}{
			"client_id": payload.ClientId.String(),
			"error":     err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if client == nil {
		cs.log.Error("consumer", "Client not found", map[string]interface{}{
			"client_id": payload.ClientId.String(),
		})
		msg.Ack()
		return
	}

	now := time.Now()
	client.Active = true
	client.LastPracticeAt = &now
	if err := uow.ClientRepository().Update(ctx, client); err != nil {
		cs.log.Error("consumer", "Failed to stamp practice activity", map[string]interface{}{
			"client_id": payload.ClientId.String(),
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.eventBus != nil {
		event := events.NewReflectionCompletedEvent(payload.ClientId.String(), payload.Date)
		if err := cs.eventBus.Publish(ctx, event); err != nil {
			// Outbound bus is best-effort; the activity stamp already landed.
			cs.log.Warn("consumer", "Failed to publish reflection.completed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
