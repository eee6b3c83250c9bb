package usecase

import (
	"context"
	"testing"
	"time"

	"GeoPulse/pkg/logger"
)

func TestLogBatchJobType(t *testing.T) {
	j := NewLogBatchJob(nil, "geopulse.logs", testLogger(t))
	if j.Type() != LogBatchJobType {
		t.Fatalf("type = %s, want %s", j.Type(), LogBatchJobType)
	}
}

func TestLogBatchJobHandle(t *testing.T) {
	j := NewLogBatchJob(nil, "geopulse.logs", testLogger(t))

	batch := []logger.AggregatedLogEntry{
		{Level: "error", Message: "feed event publish failed", Count: 4, FirstSeen: time.Now(), LastSeen: time.Now()},
		{Level: "error", Message: "market snapshot unavailable", Count: 1},
	}
	if err := j.Handle(context.Background(), batch); err != nil {
		t.Fatalf("typed batch: %v", err)
	}

	// payloads dequeued from redis arrive as generic slices
	generic := []interface{}{
		map[string]interface{}{"level": "error", "message": "consumer handler error", "count": float64(2)},
	}
	if err := j.Handle(context.Background(), generic); err != nil {
		t.Fatalf("generic batch: %v", err)
	}
}

func TestLogBatchJobBadPayload(t *testing.T) {
	j := NewLogBatchJob(nil, "geopulse.logs", testLogger(t))
	if err := j.Handle(context.Background(), 42); err == nil {
		t.Fatalf("expected error for unsupported payload")
	}
}
