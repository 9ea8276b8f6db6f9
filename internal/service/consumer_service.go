package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/pkg/analytics"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the analytics topic and feeds the in-memory
// collector.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	collector *analytics.Collector
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	collector *analytics.Collector,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		collector: collector,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.ChatInteractionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal interaction event: %v", err)
		// Ack malformed messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.collector.Record(analytics.Interaction{
		SessionID:            event.SessionId,
		Question:             event.Question,
		Category:             event.Category,
		ContextRelevance:     event.ContextRelevance,
		ClarificationNeeded:  event.ClarificationNeeded,
		NeedsRefinement:      event.NeedsRefinement,
		NeedsHumanAssistance: event.NeedsHumanAssistance,
		DurationMs:           event.DurationMs,
		Timestamp:            event.Timestamp,
	})

	msg.Ack()
}
