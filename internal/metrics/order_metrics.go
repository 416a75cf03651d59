package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции хранилища для меток store_operation.
const (
	StoreOpLoad = "load"
	StoreOpSave = "save"
)

// OrderMetrics содержит метрики операций с заказами.
// Все методы безопасны для nil-получателя: метрики необязательны.
type OrderMetrics struct {
	ordersRegistered prometheus.Counter
	ordersDeleted    prometheus.Counter
	unknownSize      prometheus.Counter
	subtotal         prometheus.Histogram

	storeCorrupt  prometheus.Counter
	storeDuration *prometheus.HistogramVec
	storeErrors   *prometheus.CounterVec

	eventsPublished prometheus.Counter
	eventsFailed    prometheus.Counter
}

// NewOrderMetrics регистрирует метрики в DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном реестре.
// Повторная регистрация переиспользует уже существующие коллекторы.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersRegistered: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_orders_registered_total",
			Help: "Total number of registered orders",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_orders_deleted_total",
			Help: "Total number of deleted orders",
		}),
		unknownSize: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_unknown_size_total",
			Help: "Total number of orders registered with an unrecognized size (priced at base 0)",
		}),
		subtotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pizzeria_order_subtotal",
			Help:    "Subtotal of registered orders in currency units",
			Buckets: []float64{40, 80, 120, 160, 280, 560, 1120},
		}),
		storeCorrupt: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_store_corrupt_total",
			Help: "Total number of unreadable stored collections treated as empty",
		}),
		storeDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "pizzeria_store_operation_duration_seconds",
			Help:    "Duration of order store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"operation"}),
		storeErrors: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pizzeria_store_errors_total",
			Help: "Total number of failed order store operations",
		}, []string{"operation"}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_events_published_total",
			Help: "Total number of order events published",
		}),
		eventsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pizzeria_events_failed_total",
			Help: "Total number of order events that failed to publish",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderRegistered учитывает новый заказ и его subtotal.
func (m *OrderMetrics) RecordOrderRegistered(subtotal int64) {
	if m == nil {
		return
	}
	m.ordersRegistered.Inc()
	m.subtotal.Observe(float64(subtotal))
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

// RecordUnknownSize увеличивает счётчик заказов с неизвестным размером.
func (m *OrderMetrics) RecordUnknownSize() {
	if m == nil {
		return
	}
	m.unknownSize.Inc()
}

// RecordStoreCorrupt увеличивает счётчик нечитаемых коллекций.
func (m *OrderMetrics) RecordStoreCorrupt() {
	if m == nil {
		return
	}
	m.storeCorrupt.Inc()
}

// RecordStoreOperation записывает длительность операции хранилища и её ошибку, если была.
func (m *OrderMetrics) RecordStoreOperation(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(operation).Inc()
	}
}

// RecordEventPublished учитывает результат публикации события.
func (m *OrderMetrics) RecordEventPublished(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.eventsFailed.Inc()
		return
	}
	m.eventsPublished.Inc()
}
