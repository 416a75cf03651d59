package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

const (
	defaultConnTimeout = 3 * time.Second
	opTimeout          = 5 * time.Second
)

// Options задаёт параметры подключения к Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix добавляется к ключу каждого слота (например, "pizzeria:").
	KeyPrefix string
}

// SlotStorage хранит слоты как строковые ключи Redis без TTL.
type SlotStorage struct {
	client *goredis.Client
	prefix string
}

// Open подключается к Redis и проверяет доступность сервера.
func Open(ctx context.Context, opts Options) (*SlotStorage, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewSlotStorage(client, opts.KeyPrefix), nil
}

// NewSlotStorage оборачивает готовый клиент.
func NewSlotStorage(client *goredis.Client, keyPrefix string) *SlotStorage {
	return &SlotStorage{client: client, prefix: keyPrefix}
}

// Get читает слот; redis.Nil означает, что слот ещё не записан.
func (s *SlotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domain.ErrSlotKeyRequired
	}
	if s == nil || s.client == nil {
		return "", false, domain.ErrStorageNotInitialized
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	value, err := s.client.Get(opCtx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set перезаписывает слот без срока жизни.
func (s *SlotStorage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return domain.ErrSlotKeyRequired
	}
	if s == nil || s.client == nil {
		return domain.ErrStorageNotInitialized
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(opCtx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping проверяет доступность Redis.
func (s *SlotStorage) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return domain.ErrStorageNotInitialized
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

// Close закрывает клиент Redis.
func (s *SlotStorage) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ domain.SlotStorage = (*SlotStorage)(nil)
