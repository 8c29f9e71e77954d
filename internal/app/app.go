package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/auth"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/config"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/db"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/paystack"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/repository"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/service"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/storage"
)

const (
	// redisKeyPrefix namespaces the submissions list in a shared Redis.
	redisKeyPrefix = "formdesk"

	mongoPingTimeout = 5 * time.Second
)

// App holds everything a running server shares across requests.
type App struct {
	Config  *config.Config
	Store   repository.SubmissionStore
	Uploads *storage.LocalStorage

	Submissions service.SubmissionService
	Auth        service.AuthService
	Payments    service.PaymentService

	closers []func(context.Context) error
}

// New connects the configured store and builds the services on top of it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}
	if err := a.openStore(ctx); err != nil {
		return nil, err
	}
	a.wire()
	return a, nil
}

// NewWithStore builds an App around an already opened store.
func NewWithStore(cfg *config.Config, store repository.SubmissionStore) *App {
	a := &App{Config: cfg, Store: store}
	a.wire()
	return a
}

func (a *App) wire() {
	a.Uploads = storage.NewLocalStorage(a.Config.UploadDir)
	a.Submissions = service.NewSubmissionService(a.Store, a.Uploads)
	a.Auth = service.NewAuthService(Credentials(a.Config), a.Config.JWTSecret)
	a.Payments = service.NewPaymentService(paystack.NewClient(a.Config.PaystackSecretKey, a.Config.PaystackBaseURL))
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		repo := repository.NewMongoSubmissionRepo(client.Database(cfg.MongoDB))
		a.Store = repo
		a.closers = append(a.closers, client.Disconnect)
		pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
		err = repo.Ping(pingCtx)
		cancel()
		if err != nil {
			slog.Warn("MongoDB not reachable yet, serving anyway", "database", cfg.MongoDB, "err", err)
		} else {
			slog.Info("connected to MongoDB", "database", cfg.MongoDB)
		}

	case config.BackendOxiDB:
		pool, err := db.NewPool(ctx, cfg.OxiDBAddr(), cfg.OxiDBPoolSize)
		if err != nil {
			return fmt.Errorf("connect to OxiDB: %w", err)
		}
		repo := repository.NewOxiSubmissionRepo(pool)
		if err := repo.EnsureCollection(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("ensure submissions collection: %w", err)
		}
		a.Store = repo
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		slog.Info("connected to OxiDB", "addr", cfg.OxiDBAddr(), "poolSize", pool.Size())

	case config.BackendRedis:
		rdb, err := repository.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		a.Store = repository.NewRedisSubmissionRepo(rdb, redisKeyPrefix)
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		slog.Info("connected to Redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return nil
}

// Credentials picks the admin verifier: bcrypt when a hash is configured,
// the plaintext pair otherwise.
func Credentials(cfg *config.Config) auth.CredentialVerifier {
	if cfg.AdminPasswordHash != "" {
		return auth.BcryptCredentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	}
	return auth.StaticCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
}

// Close releases store connections in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
