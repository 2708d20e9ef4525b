package publisher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"card_market/internal/domain/entity"
	"card_market/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	batchTimeout = 100 * time.Millisecond
	headerTable  = "table"
	headerPassID = "pass-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes GameScored events keyed by app id, so every update of one
// game lands on the same partition.
type Kafka struct {
	writer messageWriter
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: batchTimeout,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func NewKafkaWithWriter(writer messageWriter) *Kafka {
	return &Kafka{writer: writer}
}

func (k *Kafka) PublishScored(ctx context.Context, event entity.GameScored) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AppID, 10)),
		Value: payload,
		Time:  event.ScoredAt,
		Headers: []kafka.Header{
			{Key: headerTable, Value: []byte(event.Table.String())},
		},
	}

	if passID, err := contextx.PassIDFromContext(ctx); err == nil {
		msg.Headers = append(msg.Headers, kafka.Header{Key: headerPassID, Value: []byte(passID.String())})
	}

	if err = k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("writer.Close: %w", err)
	}

	return nil
}
