package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
)

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaWriteCloser interface {
	Close() error
}

// KafkaSink publishes punch events as JSON, keyed by user id so one user's
// events stay ordered within a partition.
type KafkaSink struct {
	topic  string
	writer kafkaMessageWriter
	closer kafkaWriteCloser
}

func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("kafka topic must not be empty")
	}
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}
	return newKafkaSinkWithWriter(topic, w, w), nil
}

func newKafkaSinkWithWriter(topic string, writer kafkaMessageWriter, closer kafkaWriteCloser) *KafkaSink {
	return &KafkaSink{topic: topic, writer: writer, closer: closer}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Send(ctx context.Context, e notification.PunchEvent) error {
	value, err := json.Marshal(notification.NewPunchMessage(e))
	if err != nil {
		return fmt.Errorf("encoding punch event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.UserID, 10)),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(notification.EventTypePunchRecorded)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing to topic %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (s *KafkaSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
