package database

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"short_video_service/pkg/logger"
)

// NewKafkaWriterWithRetry 先確認 broker 可連線再建立 Writer, topic 不存在時自動建立
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	if len(k.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	var err error
	for attempt := 1; attempt <= retries(k.RetryCount); attempt++ {
		err = pingKafka(k.Brokers[0])
		if err == nil {
			logger.Log.Info("Kafka connected", zap.Strings("brokers", k.Brokers), zap.Int("attempt", attempt))
			return &kafka.Writer{
				Addr:                   kafka.TCP(k.Brokers...),
				Topic:                  k.Topic,
				Balancer:               &kafka.Hash{},
				AllowAutoTopicCreation: true,
			}, nil
		}

		logger.Log.Warn("Kafka connect failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(k.RetryInterval * time.Second)
	}
	return nil, fmt.Errorf("無法建立 Kafka Writer, 經過 %d 次嘗試: %w", retries(k.RetryCount), err)
}

func pingKafka(broker string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Brokers()
	return err
}
