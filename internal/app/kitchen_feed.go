package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vladislavdragonenkov/pizzeria/internal/messaging/kafka"
)

const defaultKitchenGroup = "pizzeria-kitchen"

// runKitchenFeed печатает события о заказах из Kafka до отмены ctx.
func runKitchenFeed(ctx context.Context, deps *runtimeDependencies, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("kitchen-feed", stderr)
	group := fs.String("group", defaultKitchenGroup, "kafka consumer group")
	fromBeginning := fs.Bool("from-beginning", false, "read the topic from the oldest offset")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg := deps.config
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return fmt.Errorf("%w: kitchen-feed: %s is required", ErrUsage, envKafkaBrokers)
	}

	consumer, err := kafka.NewConsumer(brokers, *group, cfg.KafkaTopic, *fromBeginning, kitchenPrinter(stdout))
	if err != nil {
		return err
	}
	if err := consumer.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return consumer.Stop()
}

// kitchenPrinter возвращает обработчик, печатающий одну строку на событие.
func kitchenPrinter(w io.Writer) kafka.OrderEventHandler {
	var mu sync.Mutex
	return func(_ context.Context, event *kafka.OrderEventMessage) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s x%d\t%s\n",
			event.OccurredAt.Format("15:04:05"), event.EventType, event.Name,
			event.Size, event.Quantity, formatToppings(event.Toppings))
		return err
	}
}
