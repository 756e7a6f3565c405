package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

const (
	runKeyPrefix    = "benchmark:run:"
	recordKeyPrefix = "benchmark:record:"
	runIndexKey     = "benchmark:runs"
)

// RedisStore keeps runs and records as JSON values. The run index is a
// sorted set scored by start time, so listings come back newest first.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// ConnectRedis dials Redis with retry and returns a store backed by it.
func ConnectRedis(ctx context.Context, addr string, password string, maxRetries int, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			time.Sleep(backoff)
		}

		logger.Info().Int("attempt", i+1).Int("max_retries", maxRetries).Msg("Connecting to Redis")

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return &RedisStore{client: client, logger: logger}, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

func (s *RedisStore) SaveRun(ctx context.Context, run *models.RunRecord) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKeyPrefix+run.RunID, data, 0)
	pipe.ZAdd(ctx, runIndexKey, redis.Z{Score: float64(run.StartTime.Unix()), Member: run.RunID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.RunID, err)
	}
	return nil
}

func (s *RedisStore) SaveRecord(ctx context.Context, runID string, record models.EvaluationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := fmt.Sprintf("%s%s:%s:%s", recordKeyPrefix, runID, record.ModelID, record.ScenarioID)
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record %s: %w", record.Key(), err)
	}
	return nil
}

func (s *RedisStore) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	ids, err := s.client.ZRevRange(ctx, runIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var runs []models.RunRecord
	for _, id := range ids {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			s.logger.Warn().Str("run_id", id).Err(err).Msg("skipping unreadable run")
			continue
		}
		run.Records = nil
		runs = append(runs, *run)
	}
	return runs, nil
}

func (s *RedisStore) GetRun(ctx context.Context, runID string) (*models.RunRecord, error) {
	data, err := s.client.Get(ctx, runKeyPrefix+runID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	var run models.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", runID, err)
	}
	return &run, nil
}

func (s *RedisStore) GetRecord(ctx context.Context, runID, modelID, scenarioID string) (*models.EvaluationRecord, error) {
	key := fmt.Sprintf("%s%s:%s:%s", recordKeyPrefix, runID, modelID, scenarioID)
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	var record models.EvaluationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	return &record, nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
