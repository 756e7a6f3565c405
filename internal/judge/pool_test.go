package judge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

type scriptedJudge struct {
	id string
	mu sync.Mutex
	// statuses consumed one per call; the last one repeats.
	statuses []models.VerdictStatus
	calls    int
	delay    time.Duration
	active   int32
	peak     int32
}

func (s *scriptedJudge) ID() string { return s.id }

func (s *scriptedJudge) Evaluate(ctx context.Context, transcript models.Transcript) models.JudgeVerdict {
	current := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	for {
		peak := atomic.LoadInt32(&s.peak)
		if current <= peak || atomic.CompareAndSwapInt32(&s.peak, peak, current) {
			break
		}
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	status := s.statuses[min(s.calls, len(s.statuses)-1)]
	s.calls++
	s.mu.Unlock()

	verdict := models.JudgeVerdict{
		JudgeID:    s.id,
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
		Status:     status,
	}
	if status == models.StatusOk {
		verdict.Scores = map[string]int{"task_performance": 4}
	}
	return verdict
}

func poolConfig() config.PoolConfig {
	return config.PoolConfig{
		MaxConcurrentPerJudge: 1,
		RetriesPerJudge:       1,
		RetryDelay:            config.Duration(time.Millisecond),
		PerCallTimeout:        config.Duration(time.Second),
	}
}

func TestPoolEvaluateAll_OrderAndCompleteness(t *testing.T) {
	judges := []Judge{
		&scriptedJudge{id: "judge_c", statuses: []models.VerdictStatus{models.StatusOk}},
		&scriptedJudge{id: "judge_a", statuses: []models.VerdictStatus{models.StatusParseFailure}},
		&scriptedJudge{id: "judge_b", statuses: []models.VerdictStatus{models.StatusOk}},
	}
	pool := NewPool(judges, poolConfig(), nil, nil, zerolog.Nop())

	verdicts := pool.EvaluateAll(context.Background(), testTranscript())

	if len(verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(verdicts))
	}
	for i, want := range []string{"judge_c", "judge_a", "judge_b"} {
		if verdicts[i].JudgeID != want {
			t.Errorf("verdict %d: expected %s, got %s", i, want, verdicts[i].JudgeID)
		}
	}
	if verdicts[1].Status != models.StatusParseFailure {
		t.Errorf("failed verdict must be retained, got %s", verdicts[1].Status)
	}
}

func TestPoolRetry_CallFailureThenSuccess(t *testing.T) {
	j := &scriptedJudge{id: "flaky", statuses: []models.VerdictStatus{models.StatusCallFailure, models.StatusOk}}
	pool := NewPool([]Judge{j}, poolConfig(), nil, nil, zerolog.Nop())

	verdicts := pool.EvaluateAll(context.Background(), testTranscript())

	if verdicts[0].Status != models.StatusOk {
		t.Fatalf("expected ok after retry, got %s", verdicts[0].Status)
	}
	if j.calls != 2 {
		t.Errorf("expected 2 calls, got %d", j.calls)
	}
}

func TestPoolRetry_NoRetryOnParseFailure(t *testing.T) {
	j := &scriptedJudge{id: "confused", statuses: []models.VerdictStatus{models.StatusParseFailure, models.StatusOk}}
	pool := NewPool([]Judge{j}, poolConfig(), nil, nil, zerolog.Nop())

	verdicts := pool.EvaluateAll(context.Background(), testTranscript())

	if verdicts[0].Status != models.StatusParseFailure {
		t.Fatalf("expected parse_failure to be terminal, got %s", verdicts[0].Status)
	}
	if j.calls != 1 {
		t.Errorf("parse failure must not be retried, got %d calls", j.calls)
	}
}

func TestPoolRetry_Exhausted(t *testing.T) {
	j := &scriptedJudge{id: "down", statuses: []models.VerdictStatus{models.StatusCallFailure}}
	cfg := poolConfig()
	cfg.RetriesPerJudge = 2
	pool := NewPool([]Judge{j}, cfg, nil, nil, zerolog.Nop())

	verdicts := pool.EvaluateAll(context.Background(), testTranscript())

	if verdicts[0].Status != models.StatusCallFailure {
		t.Fatalf("expected call_failure after exhausted retries, got %s", verdicts[0].Status)
	}
	if j.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", j.calls)
	}
}

func TestPoolSerializesSameJudgeAcrossTranscripts(t *testing.T) {
	j := &scriptedJudge{id: "serial", statuses: []models.VerdictStatus{models.StatusOk}, delay: 20 * time.Millisecond}
	pool := NewPool([]Judge{j}, poolConfig(), nil, nil, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.EvaluateAll(context.Background(), testTranscript())
		}()
	}
	wg.Wait()

	if peak := atomic.LoadInt32(&j.peak); peak > 1 {
		t.Errorf("expected at most 1 concurrent call per judge, saw %d", peak)
	}
}

func TestPoolDifferentJudgesRunConcurrently(t *testing.T) {
	a := &scriptedJudge{id: "a", statuses: []models.VerdictStatus{models.StatusOk}, delay: 50 * time.Millisecond}
	b := &scriptedJudge{id: "b", statuses: []models.VerdictStatus{models.StatusOk}, delay: 50 * time.Millisecond}
	pool := NewPool([]Judge{a, b}, poolConfig(), nil, nil, zerolog.Nop())

	start := time.Now()
	pool.EvaluateAll(context.Background(), testTranscript())
	elapsed := time.Since(start)

	// Sequential execution would take at least 100ms.
	if elapsed > 90*time.Millisecond {
		t.Errorf("expected concurrent judge calls, took %v", elapsed)
	}
}

func TestPoolPerCallTimeout(t *testing.T) {
	slow := &timeoutJudge{id: "slow"}
	cfg := poolConfig()
	cfg.PerCallTimeout = config.Duration(10 * time.Millisecond)
	cfg.RetriesPerJudge = 1
	pool := NewPool([]Judge{slow}, cfg, nil, nil, zerolog.Nop())

	start := time.Now()
	verdicts := pool.EvaluateAll(context.Background(), testTranscript())
	elapsed := time.Since(start)

	if verdicts[0].Status != models.StatusTimeout {
		t.Fatalf("expected timeout, got %s", verdicts[0].Status)
	}
	// Two attempts of 10ms each plus one 1ms retry delay.
	if elapsed > 500*time.Millisecond {
		t.Errorf("timeouts took too long: %v", elapsed)
	}
}

type timeoutJudge struct {
	id string
}

func (j *timeoutJudge) ID() string { return j.id }

func (j *timeoutJudge) Evaluate(ctx context.Context, transcript models.Transcript) models.JudgeVerdict {
	<-ctx.Done()
	return models.JudgeVerdict{
		JudgeID:    j.id,
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
		Status:     models.StatusTimeout,
		Error:      ctx.Err().Error(),
	}
}

type countingPacer struct {
	mu   sync.Mutex
	keys []string
}

func (p *countingPacer) Wait(ctx context.Context, key string) error {
	p.mu.Lock()
	p.keys = append(p.keys, key)
	p.mu.Unlock()
	return nil
}

func TestPoolPacerKeys(t *testing.T) {
	j := &scriptedJudge{id: "judge_a", statuses: []models.VerdictStatus{models.StatusOk}}
	pacer := &countingPacer{}
	pool := NewPool([]Judge{j}, poolConfig(), pacer, map[string]string{"judge_a": "openrouter"}, zerolog.Nop())

	pool.EvaluateAll(context.Background(), testTranscript())

	if len(pacer.keys) != 1 || pacer.keys[0] != "openrouter" {
		t.Errorf("expected pacer keyed by provider, got %v", pacer.keys)
	}
}
