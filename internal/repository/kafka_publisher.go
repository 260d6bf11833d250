package repository

import (
	"context"
	"strings"

	"RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	pkgkafka "RiskPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Events are keyed by
// the joined symbol list so a portfolio's events stay in order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, ev *models.AnalysisEvent) error {
	key := []byte(strings.Join(ev.Symbols, ","))
	return p.producer.Publish(ctx, p.topic, key, ev)
}

// PublishMessage implements logger.Publisher so aggregated error logs
// ride the same producer.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
