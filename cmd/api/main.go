package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/gym-scheduler/internal/db"
	"github.com/BruksfildServices01/gym-scheduler/internal/identity"
	infraRepo "github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/jobs"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/media"
	"github.com/BruksfildServices01/gym-scheduler/internal/routes"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	firestorestore "github.com/BruksfildServices01/gym-scheduler/internal/store/firestore"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/memory"
	mongostore "github.com/BruksfildServices01/gym-scheduler/internal/store/mongo"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
	pgstore "github.com/BruksfildServices01/gym-scheduler/internal/store/postgres"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logs.Log.WithError(err).Fatal("invalid configuration")
	}

	logs.Init(cfg.LogLevel, cfg.IsProduction())
	if !timezone.SetDefault(cfg.Timezone) {
		logs.Log.WithField("timezone", cfg.Timezone).Warn("unknown GYM_TIMEZONE, keeping default")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	var app *firebase.App
	if cfg.UsesFirebase() {
		app, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			logs.Log.WithError(err).Fatal("firebase init failed")
		}
	}

	docs, closeStore, err := openStore(ctx, cfg, app)
	if err != nil {
		logs.Log.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("store init failed")
	}
	closers = append(closers, closeStore)

	provider, err := openIdentity(ctx, cfg, app, docs)
	if err != nil {
		logs.Log.WithError(err).WithField("provider", cfg.IdentityProvider).Fatal("identity init failed")
	}

	repo := infraRepo.NewGymStoreRepository(docs)

	auditLogger := audit.New(docs)
	auditDispatcher := audit.NewDispatcher(auditLogger)
	closers = append(closers, auditDispatcher.Close)

	var uploader media.Uploader
	if cfg.S3.Enabled() {
		uploader = media.NewS3Uploader(cfg.S3)
	}

	// ======================================================
	// JOBS
	// ======================================================
	scheduler, err := jobs.NewScheduler(cfg.OverdueSweepCron, jobs.NewOverdueSweep(repo, auditDispatcher))
	if err != nil {
		logs.Log.WithError(err).Fatal("invalid OVERDUE_SWEEP_CRON")
	}
	scheduler.Start()
	closers = append(closers, func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	})

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	err = routes.RegisterRoutes(r, routes.Dependencies{
		Config:      cfg,
		Store:       docs,
		Repo:        repo,
		Identity:    provider,
		AuditLogger: auditLogger,
		Audit:       auditDispatcher,
		Uploader:    uploader,
	})
	if err != nil {
		logs.Log.WithError(err).Fatal("route setup failed")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logs.Log.WithFields(logrus.Fields{
			"addr":     cfg.Addr(),
			"store":    cfg.StoreDriver,
			"identity": cfg.IdentityProvider,
		}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logs.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.Log.WithError(err).Warn("forced shutdown")
	}
}

func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
	}
	return firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
}

// openStore returns the configured document store and a function releasing
// its connections.
func openStore(ctx context.Context, cfg *config.Config, app *firebase.App) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return firestorestore.New(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		notifier, closeNotifier, err := openNotifier(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		gdb, err := dbpkg.NewDB(cfg.DBUrl, cfg.IsProduction())
		if err != nil {
			closeNotifier()
			return nil, nil, err
		}
		return pgstore.New(gdb, notifier), func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
			closeNotifier()
		}, nil

	case config.StoreMongo:
		notifier, closeNotifier, err := openNotifier(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			closeNotifier()
			return nil, nil, err
		}
		s, err := mongostore.New(ctx, client.Database(cfg.MongoDB), notifier)
		if err != nil {
			_ = client.Disconnect(context.Background())
			closeNotifier()
			return nil, nil, err
		}
		return s, func() {
			_ = client.Disconnect(context.Background())
			closeNotifier()
		}, nil

	default:
		return memory.New(), func() {}, nil
	}
}

// openNotifier picks the change fan-out shared by every API instance.
func openNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, func(), error) {
	switch cfg.NotifyDriver {
	case config.NotifyRedis:
		n, err := notify.NewRedisFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return n, func() { _ = n.Close() }, nil

	case config.NotifyPostgres:
		n, err := notify.NewPostgres(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return n, n.Close, nil

	default:
		return notify.NewLocal(), func() {}, nil
	}
}

func openIdentity(ctx context.Context, cfg *config.Config, app *firebase.App, docs store.Store) (identity.Provider, error) {
	if cfg.IdentityProvider == config.IdentityFirebase {
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, err
		}
		return identity.NewFirebase(client), nil
	}
	return identity.NewLocal(docs, cfg.JWTSecret, cfg.JWTExpiry), nil
}
