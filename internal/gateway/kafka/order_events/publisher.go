package order_events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/IBM/sarama"
)

const (
	serviceName = "kafka"

	headerEvent = "event"
)

// Publisher streams realtime order events to a Kafka topic, keyed by
// order id so that events of one order stay in one partition.
type Publisher struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event entities.RealtimeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(dto.RealtimeFrame{
		Event: dto.RealtimeFrameEvent(event.Name),
		Data:  event.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEvent), Value: []byte(event.Name)},
		},
	}

	start := time.Now()
	_, _, err = p.producer.SendMessage(msg)
	if err = gateway.Observe(serviceName, "send_message", start, err); err != nil {
		return fmt.Errorf("gateway kafka, publish %s for %s: %w", event.Name, event.OrderID, err)
	}
	return nil
}
