// Command server runs the CID registry: HTTP surface, lifecycle engine, and
// the in-process collaborators (asset issuer, payments, admin parameters).
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"cidreg/internal/adminconfig"
	adminhandler "cidreg/internal/adminconfig/handler"
	"cidreg/internal/authtoken"
	"cidreg/internal/issuer"
	"cidreg/internal/payments"
	"cidreg/internal/platform/config"
	"cidreg/internal/platform/httpserver"
	"cidreg/internal/platform/logger"
	platformmetrics "cidreg/internal/platform/metrics"
	platformredis "cidreg/internal/platform/redis"
	"cidreg/internal/registry/cache"
	"cidreg/internal/registry/events"
	"cidreg/internal/registry/genesis"
	registryhandler "cidreg/internal/registry/handler"
	registrymetrics "cidreg/internal/registry/metrics"
	"cidreg/internal/registry/ports"
	"cidreg/internal/registry/service"
	eventstore "cidreg/internal/registry/store/event"
	recordstore "cidreg/internal/registry/store/record"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/tx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cidreg: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	treasury, err := domain.ParseAddress(cfg.Registry.Treasury)
	if err != nil {
		return fmt.Errorf("treasury address: %w", err)
	}
	vaultAddr, err := domain.ParseAddress(cfg.Registry.VaultAddress)
	if err != nil {
		return fmt.Errorf("vault address: %w", err)
	}

	// Stores: postgres when configured, in-memory otherwise.
	var (
		records  ports.RecordStore = recordstore.NewInMemoryStore()
		eventLog ports.EventStore  = eventstore.NewInMemoryStore()
		marker   genesis.Store     = genesis.NewInMemoryStore()
		txRunner ports.TxRunner
	)
	if cfg.Postgres.URL != "" {
		db, err := sql.Open("pgx", cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		records = recordstore.NewPostgresStore(db)
		eventLog = eventstore.NewPostgresStore(db)
		marker = genesis.NewPostgresStore(db)
		txRunner = tx.NewRunner(db)
		log.Info("using postgres stores")
	} else {
		log.Info("using in-memory stores")
	}

	clock := genesis.NewClock(marker)

	configStore, err := adminconfig.NewStore(adminconfig.Params{
		Enabled:      cfg.Registry.Enabled,
		BasePrice:    cfg.Registry.BasePrice,
		Treasury:     treasury,
		CIDTypeLabel: cfg.Registry.CIDTypeLabel,
	})
	if err != nil {
		return fmt.Errorf("config store: %w", err)
	}

	authority := ports.GrantMintAuthority()
	certLedger, err := issuer.NewLedger(authority, vaultAddr)
	if err != nil {
		return fmt.Errorf("issuer: %w", err)
	}
	payLedger := payments.NewLedger()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(registrymetrics.New()),
	}
	if txRunner != nil {
		opts = append(opts, service.WithTxRunner(txRunner))
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithResolveCache(
			cache.NewRedisResolveCache(redisClient.Client, cache.WithTTL(cfg.Redis.CacheTTL))))
		log.Info("resolve cache enabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.Brokers...),
			kgo.DefaultProduceTopic(cfg.Kafka.Topic),
		)
		if err != nil {
			return fmt.Errorf("kafka client: %w", err)
		}
		sink, err := events.NewKafkaSink(kafkaClient, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("kafka sink: %w", err)
		}
		defer sink.Close()
		opts = append(opts, service.WithEventSink(sink))
		log.Info("event sink enabled", "topic", cfg.Kafka.Topic)
	}

	registry, err := service.New(records, eventLog, configStore, payLedger, certLedger, authority, clock, opts...)
	if err != nil {
		return fmt.Errorf("registry service: %w", err)
	}

	tokens := authtoken.NewService(cfg.Server.JWTSigningKey, "cidreg", "cidreg")
	httpMetrics := platformmetrics.New()

	router := chi.NewRouter()
	registryhandler.New(registry, log, httpMetrics, tokens).Register(router)
	adminhandler.New(configStore, clock, log, cfg.Server.AdminSecretHash).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting cidreg", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return httpserver.Shutdown(srv, cfg.Server.ShutdownTimeout)
	})
	return group.Wait()
}
