package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/health"
	"github.com/vladislavdragonenkov/pizzeria/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/pizzeria/internal/metrics"
	"github.com/vladislavdragonenkov/pizzeria/internal/service/orders"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/file"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/memory"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/orderstore"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/postgres"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/redis"
	"github.com/vladislavdragonenkov/pizzeria/internal/version"
)

// runtimeDependencies содержит всё, что нужно командам CLI.
type runtimeDependencies struct {
	config   Config
	slots    domain.SlotStorage
	store    *orderstore.Store
	service  *orders.Service
	producer *kafka.Producer
	registry *prometheus.Registry
	metrics  *metrics.OrderMetrics
	health   *health.Reporter
	logger   *log.Entry
}

// initRuntimeDependencies открывает хранилище выбранного драйвера и собирает сервис.
// Ошибка Kafka не фатальна: сервис работает без событий.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry, opts ...orders.Option) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots, err := openSlotStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	orderMetrics := metrics.NewOrderMetricsWithRegisterer(registry)
	store := orderstore.New(slots, cfg.SlotKey, logger.WithField("layer", "store"), orderMetrics)

	brokers := cfg.Brokers()
	producer, _ := initKafkaProducer(brokers, cfg.KafkaTopic, logger.WithField("layer", "kafka"))

	serviceOpts := []orders.Option{
		orders.WithMetrics(orderMetrics),
		orders.WithLogger(logger.WithField("layer", "service")),
	}
	if producer != nil {
		serviceOpts = append(serviceOpts, orders.WithPublisher(producer))
	}
	serviceOpts = append(serviceOpts, opts...)

	reporter := health.NewReporter(version.GetVersion())
	reporter.SetBuild(version.GetCommit(), version.GetDate())
	reporter.RegisterChecker("storage", health.NewSimpleChecker("storage", slots.Ping))
	if len(brokers) > 0 {
		reporter.RegisterChecker("kafka", health.NewOptionalChecker("kafka", func(ctx context.Context) error {
			return kafka.CheckBrokers(ctx, brokers)
		}))
	}

	return &runtimeDependencies{
		config:   cfg,
		slots:    slots,
		store:    store,
		service:  orders.NewService(store, serviceOpts...),
		producer: producer,
		registry: registry,
		metrics:  orderMetrics,
		health:   reporter,
		logger:   logger,
	}, nil
}

func openSlotStorage(ctx context.Context, cfg Config, logger *log.Entry) (domain.SlotStorage, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Debug("using in-memory storage")
		return memory.NewSlotStorage(), nil
	case StorageDriverFile:
		slots, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.WithField("dir", slots.Dir()).Debug("using file storage")
		return slots, nil
	case StorageDriverRedis:
		slots, err := redis.Open(ctx, redis.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		logger.WithField("addr", cfg.RedisAddr).Debug("using redis storage")
		return slots, nil
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("migrate postgres storage: %w", err)
			}
		}
		logger.Debug("using postgres storage")
		return postgres.NewSlotStorage(store), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// close освобождает хранилище и producer.
func (d *runtimeDependencies) close() error {
	if d == nil {
		return nil
	}
	closeKafka(d.producer, d.logger)
	if d.slots == nil {
		return nil
	}
	if err := d.slots.Close(); err != nil && !errors.Is(err, domain.ErrStorageNotInitialized) {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// flushMetrics выгружает метрики текущего запуска в textfile, если путь задан.
func (d *runtimeDependencies) flushMetrics(path string) error {
	if d == nil || path == "" {
		return nil
	}
	return metrics.WriteTextfile(path, d.registry)
}
