package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/evanlin/lifeboard/internal/domain/auth"
	"github.com/evanlin/lifeboard/internal/domain/content"
	"github.com/evanlin/lifeboard/internal/domain/dashboard"
	"github.com/evanlin/lifeboard/internal/domain/habits"
	"github.com/evanlin/lifeboard/internal/domain/profile"
	"github.com/evanlin/lifeboard/internal/infra/config"
	"github.com/evanlin/lifeboard/internal/infra/contentrepo"
	"github.com/evanlin/lifeboard/internal/infra/embed"
	"github.com/evanlin/lifeboard/internal/infra/eventrepo"
	"github.com/evanlin/lifeboard/internal/infra/mediastore"
	"github.com/evanlin/lifeboard/internal/infra/profilerepo"
	"github.com/evanlin/lifeboard/internal/infra/seriescache"
	"github.com/evanlin/lifeboard/internal/infra/userrepo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		Google: auth.GoogleConfig{
			ClientID:     cfg.Auth.Google.ClientID,
			ClientSecret: cfg.Auth.Google.ClientSecret,
			RedirectURL:  cfg.Auth.Google.RedirectURL,
		},
	}
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		CacheTTL:  cfg.Dashboard.CacheTTL,
		MaxWindow: time.Duration(cfg.Dashboard.MaxWindowDays) * 24 * time.Hour,
	}
}

func provideContentConfig(cfg *config.Config) content.Config {
	return content.Config{
		SearchLimit:   cfg.Content.SearchLimit,
		MaxMediaBytes: cfg.Content.MaxMediaBytes,
	}
}

// providePostgresPool returns nil when Postgres is not configured or not
// reachable; repository providers fall back to memory in that case.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
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

func provideEventRepository(pool *pgxpool.Pool) habits.Repository {
	if pool == nil {
		return eventrepo.NewMemoryRepository()
	}
	return eventrepo.NewPostgresRepository(pool)
}

func provideProfileRepository(pool *pgxpool.Pool) profile.Repository {
	if pool == nil {
		return profilerepo.NewMemoryRepository()
	}
	return profilerepo.NewPostgresRepository(pool)
}

func provideContentRepository(pool *pgxpool.Pool) content.Repository {
	if pool == nil {
		return contentrepo.NewMemoryRepository()
	}
	return contentrepo.NewPostgresRepository(pool)
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideSeriesStore(cfg *config.Config, logger *slog.Logger) dashboard.SeriesStore {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return seriescache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return seriescache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey series cache enabled", "addr", cfg.Valkey.Addr)
			return seriescache.NewValkeyStore(client, "caffeine")
		}
	}
	return seriescache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideMediaStorage(cfg *config.Config, logger *slog.Logger) content.ObjectStorage {
	if strings.TrimSpace(cfg.Media.Endpoint) == "" {
		logger.Info("media endpoint not set, using memory storage")
		return mediastore.NewMemoryStore()
	}
	store, err := mediastore.NewS3Store(cfg.Media.Endpoint, cfg.Media.AccessKey, cfg.Media.SecretKey, cfg.Media.Bucket, cfg.Media.Region, logger)
	if err != nil {
		logger.Error("failed to initialize media storage, using memory storage", "error", err)
		return mediastore.NewMemoryStore()
	}
	logger.Info("s3 media storage enabled", "bucket", cfg.Media.Bucket)
	return store
}

func provideEmbedder(cfg *config.Config) content.Embedder {
	return embed.NewDeterministicEmbedder(cfg.Content.EmbeddingDim)
}

func provideEventSource(svc habits.Service) dashboard.EventSource {
	return svc
}

func provideProfileSource(svc profile.Service) dashboard.ProfileSource {
	return svc
}
