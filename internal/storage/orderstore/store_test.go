package orderstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/metrics"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/memory"
	"github.com/vladislavdragonenkov/pizzeria/internal/storage/orderstore"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func sampleOrders() []domain.Order {
	return []domain.Order{
		{
			Name:      "Ana",
			Size:      domain.SizeLarge,
			Toppings:  []string{"Ham", "Pineapple", "Mushrooms"},
			Quantity:  2,
			Subtotal:  280,
			Timestamp: "2024-05-17T19:45:30.123Z",
		},
		{
			Name:      "Luis",
			Size:      domain.SizeSmall,
			Toppings:  []string{},
			Quantity:  1,
			Subtotal:  40,
			Timestamp: "2024-05-18T08:00:00.000Z",
		},
	}
}

func counterValue(t *testing.T, gatherer prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := gatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

// failingSlots отдаёт заранее заданные ошибки.
type failingSlots struct {
	getErr error
	setErr error
}

func (f failingSlots) Get(context.Context, string) (string, bool, error) { return "", false, f.getErr }
func (f failingSlots) Set(context.Context, string, string) error         { return f.setErr }
func (f failingSlots) Ping(context.Context) error                        { return nil }
func (f failingSlots) Close() error                                      { return nil }

func TestStore_LoadEmptySlot(t *testing.T) {
	store := orderstore.New(memory.NewSlotStorage(), "", loggerForTests(), nil)

	orders, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.Equal(t, orderstore.DefaultSlotKey, store.Key())
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStorage()
	store := orderstore.New(slots, "pizza", loggerForTests(), nil)

	require.NoError(t, store.Save(ctx, sampleOrders()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleOrders(), loaded)

	raw, found, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"name":"Ana"`)
	assert.Contains(t, raw, `"toppings":["Ham","Pineapple","Mushrooms"]`)
	assert.Contains(t, raw, `"timestamp":"2024-05-17T19:45:30.123Z"`)
}

func TestStore_SaveLoadIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStorage()
	store := orderstore.New(slots, "pizza", loggerForTests(), nil)

	require.NoError(t, store.Save(ctx, sampleOrders()))
	before, _, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	after, _, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_ExternalValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStorage()
	stored := `[{"name":"Ana","size":"Medium","toppings":["Ham"],"quantity":1,"subtotal":90,"timestamp":"2024-05-17T19:45:30.123Z"}]`
	require.NoError(t, slots.Set(ctx, "pizza", stored))
	store := orderstore.New(slots, "pizza", loggerForTests(), nil)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	after, _, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Equal(t, stored, after)
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStorage()
	store := orderstore.New(slots, "pizza", loggerForTests(), nil)

	require.NoError(t, store.Save(ctx, nil))

	raw, _, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStore_CorruptValueLoadsEmpty(t *testing.T) {
	cases := map[string]string{
		"garbage":      "not json at all",
		"object":       `{"name":"Ana"}`,
		"wrong types":  `[{"name":"Ana","quantity":"two"}]`,
		"truncated":    `[{"name":"Ana"`,
		"null literal": "null",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slots := memory.NewSlotStorage()
			require.NoError(t, slots.Set(ctx, "pizza", raw))

			registry := prometheus.NewRegistry()
			m := metrics.NewOrderMetricsWithRegisterer(registry)
			store := orderstore.New(slots, "pizza", loggerForTests(), m)

			orders, err := store.Load(ctx)
			require.NoError(t, err)
			assert.NotNil(t, orders)
			assert.Empty(t, orders)

			corrupt := counterValue(t, registry, "pizzeria_store_corrupt_total")
			if raw == "null" {
				assert.Equal(t, 0.0, corrupt, "null is a valid empty collection")
			} else {
				assert.Equal(t, 1.0, corrupt)
			}
		})
	}
}

func TestStore_BackendErrorsAreReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend unavailable")
	store := orderstore.New(failingSlots{getErr: boom, setErr: boom}, "pizza", loggerForTests(), nil)

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, boom))

	err = store.Save(ctx, sampleOrders())
	assert.True(t, errors.Is(err, boom))
}

func TestStore_UsesConfiguredKey(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStorage()
	store := orderstore.New(slots, "pizza-test", loggerForTests(), nil)

	require.NoError(t, store.Save(ctx, sampleOrders()))

	_, found, err := slots.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = slots.Get(ctx, "pizza-test")
	require.NoError(t, err)
	assert.True(t, found)
}
