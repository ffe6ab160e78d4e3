package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Vishal-43/img-craft/internal/config"
	"github.com/Vishal-43/img-craft/internal/infrastructure/dynamo"
	"github.com/Vishal-43/img-craft/internal/infrastructure/memory"
	"github.com/Vishal-43/img-craft/internal/infrastructure/postgres"
	"github.com/Vishal-43/img-craft/internal/infrastructure/smtp"
	"github.com/Vishal-43/img-craft/internal/pkg/token"
	"github.com/Vishal-43/img-craft/internal/session"
	transporthttp "github.com/Vishal-43/img-craft/internal/transport/http"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

func buildUserRepo(ctx context.Context, cfg *config.Config) (transporthttp.UserRepository, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case config.StoreBackendDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewUserRepo(client, cfg.DynamoTables.Users), noop, nil
	case config.StoreBackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return postgres.NewUserRepo(db), func() { db.Close() }, nil
	default:
		slog.Warn("using in-memory user store; accounts are lost on restart")
		return memory.NewUserRepo(), noop, nil
	}
}

func buildSessions(ctx context.Context, cfg *config.Config) (*session.Manager, func(), error) {
	noop := func() {}
	secret := cfg.SessionSecret
	if secret == "" {
		s, err := token.NewSecret(32)
		if err != nil {
			return nil, noop, err
		}
		secret = s
		slog.Warn("SESSION_SECRET not set; using a random key, sessions will not survive a restart")
	}
	opts := session.Options(cfg.SessionMaxAge, cfg.Production())
	hashKey, blockKey := session.DeriveKeys([]byte(secret))

	var store sessions.Store
	closer := noop
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(redisOpts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		store = session.NewRedisStore(rdb, opts, hashKey, blockKey)
		closer = func() { rdb.Close() }
	default:
		store = session.NewCookieStore([]byte(secret), opts)
	}
	return session.NewManager(store, cfg.SessionName), closer, nil
}

func buildMailer(cfg *config.Config) smtp.Mailer {
	if cfg.MailDriver == config.MailDriverSMTP {
		return smtp.NewMailer(cfg)
	}
	return smtp.NewLogMailer(slog.Default())
}
