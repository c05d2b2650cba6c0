package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// Writer publishes forecast results to a Kafka topic.
// It implements pipeline.ResultPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the forecast sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one forecast result. Messages are keyed by
// location so a compacted topic retains the latest forecast per site.
func (w *Writer) Publish(ctx context.Context, result *domain.ForecastResult) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write forecast message: %w", err)
	}
	w.logger.Debug("published forecast result",
		"location", result.Location.Name,
		"generated_at", result.GeneratedAt,
	)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ForecastResult into a Kafka message.
func serializeToMessage(result *domain.ForecastResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Location.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location", Value: []byte(result.Location.Name)},
			{Key: "generated_at", Value: []byte(result.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
