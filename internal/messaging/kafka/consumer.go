package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// OrderEventHandler обрабатывает событие о заказе.
type OrderEventHandler func(ctx context.Context, event *OrderEventMessage) error

// Consumer читает события о заказах из Kafka (лента для кухни).
type Consumer struct {
	consumer sarama.ConsumerGroup
	topics   []string
	handler  OrderEventHandler
	logger   *log.Entry
	wg       sync.WaitGroup
}

// NewConsumer создает consumer group. fromOldest включает чтение топика с начала.
func NewConsumer(brokers []string, groupID, topic string, fromOldest bool, handler OrderEventHandler) (*Consumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("order event handler is required")
	}
	if topic == "" {
		topic = TopicOrderEvents
	}

	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	if fromOldest {
		config.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return &Consumer{
		consumer: group,
		topics:   []string{topic},
		handler:  handler,
		logger:   log.WithField("component", "kafka-consumer"),
	}, nil
}

// Start запускает чтение в фоне до отмены ctx.
func (c *Consumer) Start(ctx context.Context) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			// при rebalance Consume завершается, поэтому вызывается в цикле
			if err := c.consumer.Consume(ctx, c.topics, c); err != nil {
				c.logger.WithError(err).Error("error from consumer")
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.consumer.Errors() {
			c.logger.WithError(err).Error("consumer error")
		}
	}()

	c.logger.WithField("topics", c.topics).Info("kafka consumer started")
	return nil
}

// Stop закрывает consumer group и дожидается фоновых горутин.
func (c *Consumer) Stop() error {
	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.wg.Wait()
	c.logger.Info("kafka consumer stopped")
	return nil
}

// Setup вызывается при старте consumer session.
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup вызывается при завершении consumer session.
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim обрабатывает сообщения партиции. Нечитаемые сообщения пропускаются,
// сообщения с ошибкой обработчика не помечаются и будут прочитаны повторно.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			fields := log.Fields{
				"topic":     message.Topic,
				"partition": message.Partition,
				"offset":    message.Offset,
			}

			event, err := ParseOrderEvent(message)
			if err != nil {
				c.logger.WithError(err).WithFields(fields).Warn("skipping unreadable order event")
				session.MarkMessage(message, "")
				continue
			}

			if err := c.handler(session.Context(), event); err != nil {
				c.logger.WithError(err).WithFields(fields).Error("order event processing failed")
				continue
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
