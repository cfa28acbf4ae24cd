package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"socialboard/internal/config"
	"socialboard/internal/database"
	"socialboard/internal/repository"
	"socialboard/internal/service"
	"socialboard/internal/storage"
)

// App wires the stores, repositories and services. Callers close the returned DB.
func App(cfg *config.Config, log *zap.Logger) (*database.DB, *storage.MinIOClient, *service.Service, error) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg.MinIO, log)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, fmt.Errorf("init minio: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := minioClient.EnsureBucket(ctx); err != nil {
		db.CloseDB()
		return nil, nil, nil, fmt.Errorf("ensure bucket: %w", err)
	}

	revoked := revocationStore(ctx, cfg.Redis, log)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, revoked, db, log)

	return db, minioClient, services, nil
}

// revocationStore prefers Redis so logouts survive restarts and are shared
// between instances; without it revoked tokens live in process memory.
func revocationStore(ctx context.Context, cfg config.Redis, log *zap.Logger) storage.RevocationStore {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, keeping revoked tokens in memory")
		return storage.NewMemoryRevocationStore()
	}

	client := storage.NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, keeping revoked tokens in memory", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return storage.NewMemoryRevocationStore()
	}

	log.Info("connected to redis", zap.String("addr", cfg.Addr))
	return storage.NewRedisRevocationStore(client)
}
