package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

const (
	connectTimeout = 5 * time.Second
	// opTimeout ограничивает одно чтение или запись слота.
	opTimeout = 5 * time.Second
)

// PoolOptions задаёт размер пула. Нулевые поля заменяются значениями по умолчанию.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolOptions рассчитаны на CLI: одна команда делает одно чтение и одну запись слота.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

func (o PoolOptions) withDefaults() PoolOptions {
	def := DefaultPoolOptions()
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = def.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = def.MaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if o.ConnMaxIdleTime <= 0 {
		o.ConnMaxIdleTime = def.ConnMaxIdleTime
	}
	return o
}

// Store держит пул подключений к PostgreSQL, в котором лежат таблица kv_slots и schema_migrations.
type Store struct {
	db *sql.DB
}

// Open подключается через pgx с пулом по умолчанию.
func Open(ctx context.Context, dsn string) (*Store, error) {
	return OpenWithPool(ctx, dsn, DefaultPoolOptions())
}

// OpenWithPool подключается через pgx и сразу проверяет доступность базы.
func OpenWithPool(ctx context.Context, dsn string, pool PoolOptions) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	pool = pool.withDefaults()
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	store := &Store{db: db}
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return store, nil
}

// conn возвращает пул или ErrStorageNotInitialized для пустого Store.
func (s *Store) conn() (*sql.DB, error) {
	if s == nil || s.db == nil {
		return nil, domain.ErrStorageNotInitialized
	}
	return s.db, nil
}

// withTimeout выполняет fn с пулом и контекстом, ограниченным timeout.
func (s *Store) withTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context, *sql.DB) error) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(opCtx, db)
}

// DB отдаёт пул для тестов и ручных запросов.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.withTimeout(ctx, connectTimeout, func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	})
}

// EnsureSchema применяет все up-миграции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// Close закрывает пул. Повторный Close и Close пустого Store ничего не делают.
func (s *Store) Close() error {
	db, err := s.conn()
	if err != nil {
		return nil
	}
	s.db = nil
	return db.Close()
}
