package middleware

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"GeoPulse/internal/domain/models"
)

type stubMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newStubMetrics() *stubMetrics { return &stubMetrics{errors: map[string]int{}} }

func (m *stubMetrics) RecordFeedGenerated(string) {}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *stubMetrics) RecordDivergence(string, float64) {}
func (m *stubMetrics) RecordLatency(string, float64)    {}

func (m *stubMetrics) count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[kind]
}

type countingProc struct {
	mu  sync.Mutex
	n   int
	err error
}

func (p *countingProc) Process(context.Context, *models.RawReading) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	return p.err
}

func (p *countingProc) processed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

func validReading(region string) *models.RawReading {
	return &models.RawReading{
		RegionID:       region,
		ActivityDelta:  10,
		Sentiment:      0.2,
		Diversity:      0.5,
		HeadlineVolume: 40,
		Hype:           20,
		Timestamp:      time.Now().Unix(),
	}
}

func TestPipelineConcurrentProcess(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, newStubMetrics(), WithMaxRPS(0))
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r := validReading(fmt.Sprintf("region_%d", i%5))
				if err := p.Process(ctx, r); err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := proc.processed(); got != 8*50 {
		t.Fatalf("processed = %d, want %d", got, 8*50)
	}
}

func TestPipelineConcurrentThrottle(t *testing.T) {
	proc := &countingProc{}
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m, WithMaxRPS(1))
	ctx := context.Background()

	// same region from many goroutines inside one throttle interval:
	// exactly one reading passes, the rest drop without error
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Process(ctx, validReading("shanghai_port")); err != nil {
				t.Errorf("process: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := proc.processed(); got != 1 {
		t.Fatalf("processed = %d, want 1", got)
	}
	if got := m.count("pipeline_throttle"); got != 7 {
		t.Fatalf("throttled = %d, want 7", got)
	}
}

func TestPipelineValidateRejects(t *testing.T) {
	proc := &countingProc{}
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m)

	if err := p.Process(context.Background(), &models.RawReading{}); err == nil {
		t.Fatalf("invalid reading should error")
	}
	if proc.processed() != 0 {
		t.Fatalf("invalid reading must not reach downstream")
	}
	if m.count("pipeline_validate") != 1 {
		t.Fatalf("expected validate metric, got %v", m.errors)
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &countingProc{err: errors.New("fusion down")}
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m, WithMaxRPS(0), WithBufferSize(4))

	if err := p.Process(context.Background(), validReading("la_port")); err == nil {
		t.Fatalf("downstream error should propagate")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("reading should be buffered, depth = %d", len(p.bufCh))
	}
	if m.count("pipeline_process") != 1 {
		t.Fatalf("expected process error metric, got %v", m.errors)
	}
}
