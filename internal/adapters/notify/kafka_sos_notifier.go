package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the subset of *kafka.Writer used by the notifier.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaSOSNotifier publishes SOS alerts as JSON onto a Kafka topic,
// keyed by alert id.
type KafkaSOSNotifier struct {
	writer messageWriter
	topic  string
}

func NewKafkaSOSNotifier(brokers []string, topic string) (*KafkaSOSNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka sos notifier: at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("kafka sos notifier: topic is required")
	}

	// One synchronous write per alert: flush immediately instead of
	// waiting for the default one second batch window.
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaSOSNotifier{writer: w, topic: topic}, nil
}

func (k *KafkaSOSNotifier) Notify(ctx context.Context, alert ports.SOSAlert) (err error) {
	defer obs.Time(ctx, "kafka.sos.Notify")(&err)

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("notify sos: encode alert %s: %w", alert.ID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(alert.ID),
		Value: payload,
		Time:  alert.SentAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify sos: publish to %s: %w", k.topic, err)
	}
	return nil
}

func (k *KafkaSOSNotifier) Close() error {
	return k.writer.Close()
}

// LogSOSNotifier only records the alert. Used when no broker is configured.
type LogSOSNotifier struct {
	Logger *zap.Logger
}

func (l LogSOSNotifier) Notify(ctx context.Context, alert ports.SOSAlert) error {
	logger := l.Logger
	if logger == nil {
		logger = obs.L()
	}
	logger.Warn("SOS alert triggered",
		zap.String("alert_id", alert.ID),
		zap.String("emergency_type", alert.EmergencyType),
		zap.String("location", alert.Location),
		zap.Bool("precise", alert.Precise),
		zap.String("req_id", obs.RequestID(ctx)),
	)
	return nil
}
