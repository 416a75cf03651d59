package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

// slotStorageInMemory — простая in-memory реализация SlotStorage.
type slotStorageInMemory struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewSlotStorage возвращает in-memory хранилище слотов для локальной разработки и тестов.
func NewSlotStorage() domain.SlotStorage {
	return &slotStorageInMemory{
		slots: make(map[string]string),
	}
}

// Get возвращает значение слота, если оно было записано.
func (s *slotStorageInMemory) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domain.ErrSlotKeyRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	return value, ok, nil
}

// Set перезаписывает значение слота.
func (s *slotStorageInMemory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return domain.ErrSlotKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}

// Ping всегда успешен: память доступна, пока жив процесс.
func (s *slotStorageInMemory) Ping(context.Context) error {
	return nil
}

func (s *slotStorageInMemory) Close() error {
	return nil
}

var _ domain.SlotStorage = (*slotStorageInMemory)(nil)
