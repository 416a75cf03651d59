// Package orderstore хранит всю коллекцию заказов одним JSON-значением в слоте SlotStorage.
package orderstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/metrics"
)

// DefaultSlotKey — имя слота, под которым хранится коллекция заказов.
const DefaultSlotKey = "pizza"

// Store реализует domain.OrderStore поверх одного слота.
type Store struct {
	slots   domain.SlotStorage
	key     string
	logger  *log.Entry
	metrics *metrics.OrderMetrics
}

// New создаёт хранилище заказов. Пустой key заменяется на DefaultSlotKey,
// nil-логгер на логгер компонента. nil-метрики отключают учёт.
func New(slots domain.SlotStorage, key string, logger *log.Entry, m *metrics.OrderMetrics) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	if logger == nil {
		logger = log.WithField("component", "order-store")
	}
	return &Store{
		slots:   slots,
		key:     key,
		logger:  logger,
		metrics: m,
	}
}

// Key возвращает имя используемого слота.
func (s *Store) Key() string {
	return s.key
}

// Load возвращает сохранённую коллекцию. Пустой или нечитаемый слот даёт пустую коллекцию
// без ошибки; ошибку возвращает только недоступное хранилище.
func (s *Store) Load(ctx context.Context) ([]domain.Order, error) {
	start := time.Now()
	raw, found, err := s.slots.Get(ctx, s.key)
	s.metrics.RecordStoreOperation(metrics.StoreOpLoad, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if !found || raw == "" {
		return []domain.Order{}, nil
	}

	orders, err := Decode(raw)
	if err != nil {
		s.metrics.RecordStoreCorrupt()
		s.logger.WithError(err).WithField("slot", s.key).Warn("сохранённые заказы не читаются, считаем коллекцию пустой")
		return []domain.Order{}, nil
	}
	return orders, nil
}

// Save сериализует и целиком перезаписывает слот.
func (s *Store) Save(ctx context.Context, orders []domain.Order) error {
	raw, err := Encode(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	start := time.Now()
	err = s.slots.Set(ctx, s.key, raw)
	s.metrics.RecordStoreOperation(metrics.StoreOpSave, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save orders: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"slot":   s.key,
		"orders": len(orders),
	}).Debug("коллекция заказов сохранена")
	return nil
}

// Encode сериализует коллекцию в JSON-массив; nil сохраняется как [].
func Encode(orders []domain.Order) (string, error) {
	if orders == nil {
		orders = []domain.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode разбирает JSON-массив заказов. Значение null даёт пустую коллекцию.
func Decode(raw string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

var _ domain.OrderStore = (*Store)(nil)
