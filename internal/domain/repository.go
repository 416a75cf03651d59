package domain

import "context"

// SlotStorage — постоянная key-value область, где каждый слот хранит одну строку.
type SlotStorage interface {
	// Get возвращает значение слота; found=false, если слот ещё не записан.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set целиком перезаписывает значение слота.
	Set(ctx context.Context, key, value string) error
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
	// Close освобождает ресурсы хранилища.
	Close() error
}

// OrderStore хранит всю коллекцию заказов одним сериализованным значением.
type OrderStore interface {
	// Load возвращает сохранённую коллекцию. Нечитаемое значение трактуется как пустая коллекция.
	Load(ctx context.Context) ([]Order, error)
	// Save перезаписывает коллекцию целиком (последняя запись побеждает).
	Save(ctx context.Context, orders []Order) error
}
