package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/office-picker/internal/config"
	"github.com/couchcryptid/office-picker/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

const eventTypeBinding = "notification_binding"

// messageWriter is the subset of *kafkago.Writer the binder needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Binder publishes token-to-facility bindings to a Kafka topic.
// It implements domain.Binder.
type Binder struct {
	writer messageWriter
	logger *slog.Logger
}

// NewBinder creates a Kafka producer for the configured binding topic.
func NewBinder(cfg *config.Config, logger *slog.Logger) *Binder {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaBindingTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Binder{writer: w, logger: logger}
}

// bindingRecord is the message value consumed by the notification backend.
type bindingRecord struct {
	OfficeID     string    `json:"officeId"`
	Token        string    `json:"token"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// BindToken publishes a single binding keyed by facility ID so all bindings
// for one facility land on the same partition.
func (b *Binder) BindToken(ctx context.Context, facilityID, token string) error {
	msg, err := serializeBinding(bindingRecord{
		OfficeID:     facilityID,
		Token:        token,
		RegisteredAt: domain.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish binding for %s: %w", facilityID, err)
	}
	b.logger.Debug("binding published", "facility_id", facilityID)
	return nil
}

func (b *Binder) Close() error {
	return b.writer.Close()
}

func serializeBinding(rec bindingRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize binding: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.OfficeID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventTypeBinding)},
			{Key: "registered_at", Value: []byte(rec.RegisteredAt.Format(time.RFC3339))},
		},
	}, nil
}
