// Package setup wires the benchmark pipeline from configuration: rubric,
// provider clients, judge ensemble, executor, store and coordinator.
package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/consensus"
	"github.com/arturpietrzak/customer-service-llm/internal/executor"
	"github.com/arturpietrzak/customer-service-llm/internal/judge"
	"github.com/arturpietrzak/customer-service-llm/internal/llm"
	"github.com/arturpietrzak/customer-service-llm/internal/llm/bedrock"
	"github.com/arturpietrzak/customer-service-llm/internal/llm/openrouter"
	"github.com/arturpietrzak/customer-service-llm/internal/llm/replicate"
	"github.com/arturpietrzak/customer-service-llm/internal/products"
	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
	"github.com/arturpietrzak/customer-service-llm/internal/runner"
	"github.com/arturpietrzak/customer-service-llm/internal/store"
)

// Env holds the process-level settings read from the environment. Everything
// about the evaluation itself lives in the YAML config.
type Env struct {
	OpenRouterKey     string
	OpenRouterBaseURL string
	ReplicateToken    string
	AWSRegion         string
	RedisAddr         string
	RedisPassword     string
	RedisMaxRetries   int
}

type Dependencies struct {
	Config      *config.Config
	Rubric      *rubric.Rubric
	Catalog     *products.Store
	Pool        *judge.Pool
	Aggregator  *consensus.Aggregator
	Executor    *executor.Executor
	Store       store.Store
	Reader      store.Reader
	Coordinator *runner.Coordinator
	Logger      *zerolog.Logger
}

func LoadEnv() *Env {
	return &Env{
		OpenRouterKey:     getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", ""),
		ReplicateToken:    getEnv("REPLICATE_API_TOKEN", ""),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisMaxRetries:   getEnvInt("REDIS_MAX_RETRIES", 5),
	}
}

// Wire builds the full pipeline. The catalog path may be empty when only the
// store and reader are needed (serve, re-judge).
func Wire(ctx context.Context, cfg *config.Config, env *Env, catalogPath string, logger *zerolog.Logger) (*Dependencies, error) {
	rub, err := rubric.Load(cfg.Rubric)
	if err != nil {
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}

	clients, err := createClients(ctx, cfg, env)
	if err != nil {
		return nil, err
	}

	pacer := runner.NewPacer(cfg.Run.RateLimit.Std())

	judges, pacerKeys, err := buildJudges(cfg, clients, rub, logger)
	if err != nil {
		return nil, err
	}
	pool := judge.NewPool(judges, cfg.Pool, pacer, pacerKeys, *logger)

	agg := consensus.NewAggregator(rub, *logger)

	var catalog *products.Store
	if catalogPath != "" {
		catalog, err = products.LoadStore(catalogPath)
		if err != nil {
			return nil, err
		}
	} else {
		catalog = products.NewStore(nil)
	}
	exec := executor.NewExecutor(clients, catalog, pacer, cfg.Run.PerTestTimeout.Std(), *logger)

	recordStore, reader, err := createStore(ctx, cfg, env, logger)
	if err != nil {
		return nil, err
	}

	coordinator := runner.NewCoordinator(exec, pool, agg, recordStore, cfg.Run, rub.Version(), *logger)

	return &Dependencies{
		Config:      cfg,
		Rubric:      rub,
		Catalog:     catalog,
		Pool:        pool,
		Aggregator:  agg,
		Executor:    exec,
		Store:       recordStore,
		Reader:      reader,
		Coordinator: coordinator,
		Logger:      logger,
	}, nil
}

// createClients builds one client per provider mentioned by the config.
func createClients(ctx context.Context, cfg *config.Config, env *Env) (map[string]llm.Client, error) {
	providers := make(map[string]bool)
	for _, j := range cfg.EnabledJudges() {
		providers[j.Provider] = true
	}
	for _, m := range cfg.Models {
		providers[m.Provider] = true
	}

	clients := make(map[string]llm.Client, len(providers))
	for provider := range providers {
		switch provider {
		case "openrouter":
			clients[provider] = openrouter.NewClient(env.OpenRouterKey, env.OpenRouterBaseURL)
		case "replicate":
			clients[provider] = replicate.NewClient(env.ReplicateToken, "")
		case "bedrock":
			client, err := bedrock.NewClient(ctx, env.AWSRegion)
			if err != nil {
				return nil, fmt.Errorf("failed to create bedrock client: %w", err)
			}
			clients[provider] = client
		default:
			return nil, fmt.Errorf("unknown provider %q", provider)
		}
	}
	return clients, nil
}

func buildJudges(cfg *config.Config, clients map[string]llm.Client, rub *rubric.Rubric, logger *zerolog.Logger) ([]judge.Judge, map[string]string, error) {
	var judges []judge.Judge
	pacerKeys := make(map[string]string)
	for _, jc := range cfg.EnabledJudges() {
		client, ok := clients[jc.Provider]
		if !ok {
			return nil, nil, fmt.Errorf("judge %s: no client for provider %q", jc.ID, jc.Provider)
		}
		judges = append(judges, judge.NewAdapter(jc, client, rub, *logger))
		pacerKeys[jc.ID] = jc.Provider
	}
	return judges, pacerKeys, nil
}

// createStore prefers Redis when REDIS_ADDR is set, otherwise the JSON file
// store under the configured output dir.
func createStore(ctx context.Context, cfg *config.Config, env *Env, logger *zerolog.Logger) (store.Store, store.Reader, error) {
	if env.RedisAddr != "" {
		redisStore, err := store.ConnectRedis(ctx, env.RedisAddr, env.RedisPassword, env.RedisMaxRetries, *logger)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, redisStore, nil
	}

	fileStore, err := store.NewFileStore(cfg.Run.OutputDir, *logger)
	if err != nil {
		return nil, nil, err
	}
	return fileStore, fileStore, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
