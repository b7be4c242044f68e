// Package kafka publishes normalized district records to a Kafka topic so
// downstream consumers can follow refresh cycles without polling the API.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sejal-1604/MGNREGA/internal/domain"
	"github.com/sejal-1604/MGNREGA/internal/observability"
)

// Exporter produces normalized MetricRecords to the export topic.
type Exporter struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewExporter creates a Kafka producer for the configured export topic.
func NewExporter(brokers []string, topic string, metrics *observability.Metrics, logger *slog.Logger) *Exporter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Exporter{writer: w, metrics: metrics, logger: logger}
}

// Export serializes and publishes a refresh cycle's district records in a
// single WriteMessages call.
func (e *Exporter) Export(ctx context.Context, records []domain.DistrictData) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := e.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("export district records: %w", err)
	}
	e.metrics.RecordsExported.Add(float64(len(records)))
	return nil
}

func (e *Exporter) Close() error {
	return e.writer.Close()
}

// serializeToMessage marshals a district record into a Kafka message keyed
// by region ID, with provenance carried in headers.
func serializeToMessage(data domain.DistrictData) (kafkago.Message, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize district record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(data.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "data_source", Value: []byte(data.DataSource)},
			{Key: "fetched_at", Value: []byte(data.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
