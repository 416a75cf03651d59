package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vladislavdragonenkov/pizzeria/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/orderstore"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

// Переменные окружения конфигурации.
const (
	envStorageDriver       = "PIZZERIA_STORAGE_DRIVER"
	envDataDir             = "PIZZERIA_DATA_DIR"
	envSlotKey             = "PIZZERIA_SLOT_KEY"
	envRedisAddr           = "PIZZERIA_REDIS_ADDR"
	envRedisPassword       = "PIZZERIA_REDIS_PASSWORD"
	envRedisDB             = "PIZZERIA_REDIS_DB"
	envRedisKeyPrefix      = "PIZZERIA_REDIS_KEY_PREFIX"
	envPostgresDSN         = "PIZZERIA_POSTGRES_DSN"
	envPostgresAutoMigrate = "PIZZERIA_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "PIZZERIA_KAFKA_BROKERS"
	envKafkaTopic          = "PIZZERIA_KAFKA_TOPIC"
	envMetricsTextfile     = "PIZZERIA_METRICS_TEXTFILE"
	envLogLevel            = "PIZZERIA_LOG_LEVEL"
	envLogFormat           = "PIZZERIA_LOG_FORMAT"
)

// Config описывает настройки запуска приложения.
type Config struct {
	StorageDriver string
	DataDir       string
	SlotKey       string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	PostgresDSN         string
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пустое значение отключает события.
	KafkaBrokers string
	KafkaTopic   string

	// MetricsTextfile — путь для выгрузки метрик после каждой команды.
	MetricsTextfile string

	LogLevel  string
	LogFormat string
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		StorageDriver: StorageDriverFile,
		DataDir:       "./data",
		SlotKey:       orderstore.DefaultSlotKey,
		RedisAddr:     "localhost:6379",
		KafkaTopic:    kafka.TopicOrderEvents,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadConfig читает настройки из окружения поверх DefaultConfig.
// Перед этим подгружаются envFiles (по умолчанию .env); отсутствующие файлы пропускаются,
// а уже заданные переменные окружения не перезаписываются.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	setString(&cfg.StorageDriver, envStorageDriver)
	setString(&cfg.DataDir, envDataDir)
	setString(&cfg.SlotKey, envSlotKey)
	setString(&cfg.RedisAddr, envRedisAddr)
	setSecret(&cfg.RedisPassword, envRedisPassword)
	setString(&cfg.RedisKeyPrefix, envRedisKeyPrefix)
	setString(&cfg.PostgresDSN, envPostgresDSN)
	setString(&cfg.KafkaBrokers, envKafkaBrokers)
	setString(&cfg.KafkaTopic, envKafkaTopic)
	setString(&cfg.MetricsTextfile, envMetricsTextfile)
	setString(&cfg.LogLevel, envLogLevel)
	setString(&cfg.LogFormat, envLogFormat)

	if v := strings.TrimSpace(os.Getenv(envRedisDB)); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envRedisDB, err)
		}
		cfg.RedisDB = db
	}
	if v := strings.TrimSpace(os.Getenv(envPostgresAutoMigrate)); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envPostgresAutoMigrate, err)
		}
		cfg.PostgresAutoMigrate = autoMigrate
	}

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек выбранного драйвера.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("%s is required for file storage", envDataDir)
		}
	case StorageDriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("%s is required for redis storage", envRedisAddr)
		}
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("%s is required for postgres storage", envPostgresDSN)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q (use %s|%s|%s|%s)",
			c.StorageDriver, StorageDriverMemory, StorageDriverFile, StorageDriverRedis, StorageDriverPostgres)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("%s must not be negative", envRedisDB)
	}
	return nil
}

// Brokers возвращает список брокеров Kafka без пустых элементов.
func (c Config) Brokers() []string {
	if strings.TrimSpace(c.KafkaBrokers) == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// setSecret читает значение без TrimSpace: пробелы по краям могут быть частью пароля.
func setSecret(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
