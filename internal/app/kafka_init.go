package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/messaging/kafka"
)

// initKafkaProducer создаёт producer, если заданы брокеры.
// Возвращает nil, nil для пустого списка брокеров.
func initKafkaProducer(brokers []string, topic string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers, topic)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"brokers": brokers,
		"topic":   producer.Topic(),
	}).Info("kafka producer initialized")
	return producer, nil
}

// closeKafka закрывает producer, если он был создан.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Debug("kafka producer closed")
	}
}
