package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/ai/gemini"
	"github.com/spigell/ats-scorer/internal/ai/huggingface"
	"github.com/spigell/ats-scorer/internal/embedcache"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/secrets"
)

const (
	providerGemini      = "gemini"
	providerHuggingFace = "huggingface"
)

// buildEngine wires the embedder, the role cache store and the engine. The
// returned cleanup releases the cache connection.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) (*scoring.Engine, func(), error) {
	embedder, err := newEmbedder(ctx, config.AI, logger)
	if err != nil {
		return nil, nil, err
	}

	store, cleanup := newStore(ctx, config.Cache, logger)

	engine := scoring.NewEngine(embedder,
		scoring.WithLogger(logger),
		scoring.WithParallelSections(config.AI.ParallelSections),
		scoring.WithRoleCache(scoring.NewRoleCache(scoring.DefaultRoles(), store, logger)),
	)

	return engine, cleanup, nil
}

// newEmbedder returns nil when semantic scoring is disabled or no credential
// is configured. Unreadable credential files are errors.
func newEmbedder(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Embedder, error) {
	if config == nil || !config.Enabled {
		logger.Info("semantic scoring disabled", zap.String("reason", "ai.enabled is false"))
		return nil, nil
	}

	var (
		embedder ai.Embedder
		err      error
	)

	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case providerGemini:
		embedder, err = newGeminiEmbedder(ctx, config, logger)
	case providerHuggingFace:
		embedder, err = newHuggingFaceEmbedder(config, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", config.Provider)
	}

	if errors.Is(err, secrets.ErrNotConfigured) || errors.Is(err, ai.ErrUnavailable) {
		logger.Warn("semantic scoring disabled, using keyword scoring only",
			zap.String("provider", config.Provider),
			zap.Error(err),
		)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s embedder: %w", config.Provider, err)
	}

	logger.Info("semantic scoring enabled",
		zap.String("provider", embedder.Provider()),
		zap.String("model", embedder.Model()),
	)

	return ai.NewLimited(embedder, config.RequestsPerSecond, config.Burst, config.Timeout), nil
}

func newGeminiEmbedder(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Embedder, error) {
	cfg := config.Gemini
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   []string{"GEMINI_API_KEY"},
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewEmbedder(ctx, key, gemini.Options{
		Model:        cfg.Model,
		Dimensions:   cfg.OutputDimensionality,
		MaxLogLength: config.MaxLogLength,
		Logger:       logger,
	})
}

func newHuggingFaceEmbedder(config *AIConfig, logger *zap.Logger) (ai.Embedder, error) {
	cfg := config.HuggingFace
	if cfg == nil {
		cfg = &HuggingFaceConfig{}
	}

	token, err := secrets.Load(secrets.Source{
		Name:  "hugging face token",
		Value: cfg.Token,
		File:  cfg.TokenFile,
		Env:   []string{"HF_TOKEN", "HF_API_KEY"},
	})
	if err != nil {
		return nil, err
	}

	return huggingface.New(token, huggingface.Options{
		URL:          cfg.URL,
		Model:        cfg.Model,
		MaxLogLength: config.MaxLogLength,
		Logger:       logger,
	})
}

// newStore prefers Redis when configured and reachable and falls back to an
// in-process store otherwise.
func newStore(ctx context.Context, config *CacheConfig, logger *zap.Logger) (embedcache.Store, func()) {
	noop := func() {}
	if config == nil {
		return embedcache.NewMemory(0), noop
	}

	memory := embedcache.NewMemory(config.TTL)
	if strings.TrimSpace(config.RedisURL) == "" {
		return memory, noop
	}

	store, err := embedcache.NewRedis(config.RedisURL, config.TTL, logger)
	if err != nil {
		logger.Warn("redis cache disabled", zap.Error(err))
		return memory, noop
	}

	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis cache unreachable, using in-memory cache", zap.Error(err))
		_ = store.Close()
		return memory, noop
	}

	logger.Info("role embeddings cached in redis")
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing redis cache", zap.Error(err))
		}
	}
}
