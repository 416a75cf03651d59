package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// CheckBrokers проверяет, что хотя бы один брокер отвечает на запрос метаданных.
func CheckBrokers(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("kafka brokers are not configured")
	}

	config := sarama.NewConfig()
	config.Net.DialTimeout = 3 * time.Second
	config.Metadata.Retry.Max = 0
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < config.Net.DialTimeout {
			config.Net.DialTimeout = remaining
		}
	}

	client, err := sarama.NewClient(brokers, config)
	if err != nil {
		return fmt.Errorf("connect to kafka: %w", err)
	}
	defer client.Close()

	if len(client.Brokers()) == 0 {
		return errors.New("kafka cluster has no reachable brokers")
	}
	return nil
}
