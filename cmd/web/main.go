package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alhyra_organics/internal/config"
	"alhyra_organics/internal/logger"
	"alhyra_organics/internal/metrics"
	"alhyra_organics/internal/models"
	"alhyra_organics/internal/notify"
	"alhyra_organics/internal/orders"
	"alhyra_organics/internal/repository"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
)

type application struct {
	logger        *zap.Logger
	session       *scs.SessionManager
	store         models.Store
	users         *repository.UserRepository
	orders        *orders.Service
	metrics       *metrics.Metrics
	templateCache map[string]*template.Template
	notifyQueue   chan notify.Message
	publisher     notify.Publisher
	businessPhone string
	now           func() time.Time
}

func newApplication(zlog *zap.Logger, store models.Store, users *repository.UserRepository, session *scs.SessionManager, publisher notify.Publisher, businessPhone string) (*application, error) {
	templateCache, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	app := &application{
		logger:        zlog,
		session:       session,
		store:         store,
		users:         users,
		metrics:       metrics.New(),
		templateCache: templateCache,
		notifyQueue:   make(chan notify.Message, notifyQueueSize),
		publisher:     publisher,
		businessPhone: businessPhone,
		now:           time.Now,
	}
	app.orders = &orders.Service{
		Store:   store,
		Logger:  zlog,
		Metrics: app.metrics,
		Notify:  app.enqueue,
		Now:     func() time.Time { return app.now() },
	}
	return app, nil
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Store.Seed {
		if err := models.Seed(ctx, store, time.Now()); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		zlog.Info("store seeded")
	}

	users, err := repository.NewUserRepository(store, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name, cfg.Login.Delay)
	if err != nil {
		return err
	}

	session := scs.New()
	session.Lifetime = cfg.Session.Lifetime
	session.Cookie.Secure = cfg.Session.Secure
	session.Cookie.SameSite = http.SameSiteLaxMode

	var publisher notify.Publisher = notify.LogPublisher{Logger: zlog}
	if cfg.Kafka.Enabled() {
		publisher = notify.NewKafkaPublisher(notify.KafkaConfig{
			Brokers:    cfg.Kafka.Brokers,
			Topic:      cfg.Kafka.Topic,
			MaxRetries: cfg.Kafka.MaxRetries,
		}, zlog)
	}
	defer publisher.Close()

	app, err := newApplication(zlog, store, users, session, publisher, cfg.Business.WhatsApp)
	if err != nil {
		return err
	}

	workerDone := make(chan struct{})
	go app.notificationWorker(workerDone)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		ErrorLog:     zap.NewStdLog(zlog),
		Handler:      app.routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("starting Al Hyra Organics", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		zlog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	close(app.notifyQueue)
	<-workerDone
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (models.Store, func(), error) {
	if cfg.Store.Driver != "mongo" {
		zlog.Info("using in-memory store")
		return models.NewMemoryDB(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()
	db, client, err := models.OpenMongo(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	zlog.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))

	return db, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			zlog.Error("mongo disconnect", zap.Error(err))
		}
	}, nil
}
