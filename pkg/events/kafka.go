package events

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/noah-isme/batch-intake-api/pkg/config"
)

// Producer writes submission events to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a synchronous producer. SASL/TLS is enabled when a username is configured.
func NewProducer(cfg config.EventsConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("events: no kafka brokers configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("events: kafka topic is empty")
	}

	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Transport:    transport,
			WriteTimeout: timeout,
		},
	}, nil
}

// Publish writes one message keyed by key.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now().UTC(),
	})
}

// Close flushes pending writes and releases connections.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
