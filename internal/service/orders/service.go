// Package orders реализует операции приёма заказов поверх хранилища заказов.
package orders

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/metrics"
)

// Service загружает коллекцию из хранилища, меняет её в памяти и записывает целиком обратно.
// Блокировок нет: при параллельных писателях выигрывает последний.
type Service struct {
	store     domain.OrderStore
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
	now       func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPublisher включает отправку событий о заказах.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithMetrics включает учёт метрик.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger задаёт логгер сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService конструирует сервис с зависимостями.
func NewService(store domain.OrderStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: log.WithField("component", "order-service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterResult — итог регистрации заказа.
type RegisterResult struct {
	// Orders — коллекция после добавления заказа.
	Orders []domain.Order
	// Order — созданный заказ.
	Order domain.Order
	// Form — сброшенная форма, в которой сохранено только имя клиента.
	Form domain.OrderForm
}

// Register создаёт заказ из формы, дописывает его в конец коллекции и сохраняет.
func (s *Service) Register(ctx context.Context, form domain.OrderForm) (RegisterResult, error) {
	if err := form.Validate(); err != nil {
		return RegisterResult{}, err
	}

	if !form.Size.Known() {
		s.metrics.RecordUnknownSize()
		s.logger.WithFields(log.Fields{
			"name": form.Name,
			"size": form.Size,
		}).Warn("неизвестный размер пиццы, базовая цена 0")
	}

	order := domain.NewOrder(form, s.now())

	orders, err := s.store.Load(ctx)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("register order: %w", err)
	}
	orders = append(orders, order)
	if err := s.store.Save(ctx, orders); err != nil {
		return RegisterResult{}, fmt.Errorf("register order: %w", err)
	}

	s.metrics.RecordOrderRegistered(order.Subtotal)
	s.logger.WithFields(log.Fields{
		"name":     order.Name,
		"size":     order.Size,
		"quantity": order.Quantity,
		"subtotal": order.Subtotal,
	}).Info("заказ зарегистрирован")
	s.publish(ctx, domain.OrderEventRegistered, order)

	return RegisterResult{
		Orders: orders,
		Order:  order,
		Form:   domain.NewOrderForm(order.Name),
	}, nil
}

// LoadIntoForm находит первый заказ с указанным именем и заполняет по нему форму.
// Хранилище не читается; при отсутствии совпадения возвращает false.
func (s *Service) LoadIntoForm(name string, orders []domain.Order) (domain.OrderForm, bool) {
	idx := domain.IndexByName(orders, name)
	if idx < 0 {
		return domain.OrderForm{}, false
	}
	return domain.FormFromOrder(orders[idx]), true
}

// Delete удаляет из переданной коллекции первый заказ с указанным именем и сохраняет результат.
// Если совпадения нет, коллекция возвращается как есть и хранилище не трогается.
func (s *Service) Delete(ctx context.Context, name string, orders []domain.Order) ([]domain.Order, bool, error) {
	idx := domain.IndexByName(orders, name)
	if idx < 0 {
		return orders, false, nil
	}

	removed := orders[idx]
	remaining := make([]domain.Order, 0, len(orders)-1)
	remaining = append(remaining, orders[:idx]...)
	remaining = append(remaining, orders[idx+1:]...)

	if err := s.store.Save(ctx, remaining); err != nil {
		return orders, false, fmt.Errorf("delete order: %w", err)
	}

	s.metrics.RecordOrderDeleted()
	s.logger.WithFields(log.Fields{
		"name":      removed.Name,
		"timestamp": removed.Timestamp,
	}).Info("заказ удалён")
	s.publish(ctx, domain.OrderEventDeleted, removed)

	return remaining, true, nil
}

// ListAll возвращает сохранённую коллекцию.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// TotalsByName суммирует subtotal сохранённых заказов по именам.
func (s *Service) TotalsByName(ctx context.Context) (domain.Totals, error) {
	orders, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals by name: %w", err)
	}
	return domain.SumByName(orders), nil
}

// TotalForName возвращает сумму всех заказов клиента.
func (s *Service) TotalForName(ctx context.Context, name string) (int64, error) {
	orders, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("total for name: %w", err)
	}
	return domain.SumSubtotals(orders, func(o domain.Order) bool {
		return o.Name == name
	}), nil
}

// TotalSalesToday суммирует заказы, созданные в текущие сутки по UTC.
func (s *Service) TotalSalesToday(ctx context.Context) (int64, error) {
	orders, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("total sales today: %w", err)
	}
	today := domain.DateOf(s.now())
	return domain.SumSubtotals(orders, func(o domain.Order) bool {
		return o.PlacedOn(today)
	}), nil
}

func (s *Service) publish(ctx context.Context, eventType domain.OrderEventType, order domain.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:       eventType,
		Order:      order,
		OccurredAt: s.now().UTC(),
	})
	s.metrics.RecordEventPublished(err)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"name":       order.Name,
		}).Warn("не удалось отправить событие о заказе")
	}
}
