package usecase

import (
	"context"
	"fmt"

	pkgkafka "GeoPulse/pkg/kafka"
	"GeoPulse/pkg/logger"
	"GeoPulse/pkg/queue"
)

// LogBatchJobType is the queue message type the log collector publishes
// aggregated batches under. CollectionConfig.Topic must use this value.
const LogBatchJobType = "geopulse.logs"

// LogBatchJob drains aggregated error batches off the queue. With a Kafka
// producer the batch ships to the logs topic; on the log backend each entry
// is re-emitted once as a summary line. Only Error calls feed the
// collector, so the summaries cannot be re-collected.
type LogBatchJob struct {
	producer *pkgkafka.Producer
	topic    string
	log      *logger.Logger
}

func NewLogBatchJob(producer *pkgkafka.Producer, topic string, log *logger.Logger) *LogBatchJob {
	return &LogBatchJob{producer: producer, topic: topic, log: log}
}

func (j *LogBatchJob) Name() string { return "log_batch" }
func (j *LogBatchJob) Type() string { return LogBatchJobType }

func (j *LogBatchJob) Handle(ctx context.Context, payload interface{}) error {
	entries, err := queue.ParsePayload[[]logger.AggregatedLogEntry](payload)
	if err != nil {
		return fmt.Errorf("log batch payload: %w", err)
	}

	if j.producer != nil {
		if err := j.producer.Publish(ctx, j.topic, nil, *entries); err != nil {
			return fmt.Errorf("publish log batch: %w", err)
		}
		return nil
	}

	for _, e := range *entries {
		j.log.Info("aggregated errors",
			logger.String("message", e.Message),
			logger.String("caller", e.Caller),
			logger.Int("count", e.Count))
	}
	return nil
}

var _ queue.Job = (*LogBatchJob)(nil)
