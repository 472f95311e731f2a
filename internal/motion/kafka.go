package motion

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSampler consumes device-published vectors from a Kafka topic. Each
// subscription owns its own consumer-group reader.
type KafkaSampler struct {
	Brokers []string
	Topic   string
	GroupID string
}

type kafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

var newKafkaReader = func(brokers []string, topic, group string) kafkaReader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  group,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
}

func (s *KafkaSampler) Subscribe(h Handler) (Subscription, error) {
	if len(s.Brokers) == 0 || s.Topic == "" {
		return nil, errors.New("kafka brokers and topic required")
	}

	reader := newKafkaReader(s.Brokers, s.Topic, s.GroupID)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("kafka motion read error: %v", err)
				}
				return
			}
			var v Vector
			if err := json.Unmarshal(msg.Value, &v); err != nil {
				log.Printf("kafka motion payload discarded: %v", err)
				continue
			}
			h(v)
		}
	}()

	return &kafkaSubscription{cancel: cancel, reader: reader}, nil
}

type kafkaSubscription struct {
	once   sync.Once
	cancel context.CancelFunc
	reader kafkaReader
}

func (s *kafkaSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		_ = s.reader.Close()
	})
}
