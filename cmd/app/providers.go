package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/postforge/postforge/internal/domain/auth"
	"github.com/postforge/postforge/internal/domain/campaigns"
	"github.com/postforge/postforge/internal/domain/generator"
	"github.com/postforge/postforge/internal/domain/posts"
	"github.com/postforge/postforge/internal/infra/campaignrepo"
	"github.com/postforge/postforge/internal/infra/config"
	"github.com/postforge/postforge/internal/infra/llm/chatgpt"
	"github.com/postforge/postforge/internal/infra/postrepo"
	"github.com/postforge/postforge/internal/infra/previewcache"
)

func provideGeneratorConfig(cfg *config.Config) generator.Config {
	return generator.Config{
		Model:           cfg.LLM.Model,
		EmbeddingModel:  cfg.LLM.EmbeddingModel,
		Temperature:     cfg.LLM.Temperature,
		HistoryLimit:    cfg.Generation.HistoryLimit,
		TopSimilar:      cfg.Generation.TopSimilar,
		MaxTopics:       cfg.Generation.MaxTopics,
		MaxPreviewChars: cfg.Generation.MaxPreviewChars,
		PreviewTTL:      cfg.Generation.PreviewTTL,
	}
}

func providePostsConfig(cfg *config.Config) posts.Config {
	return posts.Config{
		RecentLimit: cfg.Generation.HistoryLimit,
		ListLimit:   cfg.Generation.ListLimit,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func providePreviewCache(cfg *config.Config, logger *slog.Logger) generator.PreviewCache {
	if cfg.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return previewcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return previewcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey preview cache enabled", "addr", cfg.Redis.Addr)
			return previewcache.NewValkeyCache(client, "preview")
		}
	}
	return previewcache.NewMemoryCache()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

// providePgxPool returns nil when Postgres is not configured or not
// reachable; repositories fall back to memory in that case.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func providePostRepository(pool *pgxpool.Pool) posts.Repository {
	if pool == nil {
		return postrepo.NewMemoryRepository()
	}
	return postrepo.NewPostgresRepository(pool)
}

func provideCampaignRepository(pool *pgxpool.Pool) campaigns.Repository {
	if pool == nil {
		return campaignrepo.NewMemoryRepository()
	}
	return campaignrepo.NewPostgresRepository(pool)
}
