package repository

import (
	"context"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
	pkgkafka "GeoPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher over the Kafka producer wrapper.
// Feed and alert events go to separate topics, keyed by region so a
// region's events stay ordered within a partition.
type KafkaPublisher struct {
	producer   *pkgkafka.Producer
	feedTopic  string
	alertTopic string
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, feedTopic, alertTopic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, feedTopic: feedTopic, alertTopic: alertTopic}
}

func (p *KafkaPublisher) PublishFeed(ctx context.Context, ev models.FeedEvent) error {
	return p.producer.Publish(ctx, p.feedTopic, []byte(ev.RegionID), ev)
}

func (p *KafkaPublisher) PublishAlert(ctx context.Context, ev models.AlertEvent) error {
	return p.producer.Publish(ctx, p.alertTopic, []byte(ev.RegionID), ev)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
