package events

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	brokers []string
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{brokers: brokers}
}

func (k *KafkaPublisher) Publish(ctx context.Context, topic, key string, event any) error {
	w := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafkaGo.LeastBytes{},
	}
	defer w.Close()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return w.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
