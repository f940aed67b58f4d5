package database

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"short_video_service/pkg/logger"
)

// RabbitRepo definition rabbit repo
type RabbitRepo interface {
	DeclareQueue(name string) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitRepo struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitRepository create a RabbitRepository
func NewRabbitRepository(conn *amqp.Connection, ch *amqp.Channel) RabbitRepo {
	return &rabbitRepo{conn: conn, channel: ch}
}

// ConnectRabbitMQWithRetry 連線到 RabbitMQ, 失敗時固定間隔重試
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := 1; attempt <= retries(d.RetryCount); attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			logger.Log.Info("RabbitMQ connected", zap.Int("attempt", attempt))
			return conn, nil
		}

		logger.Log.Warn("RabbitMQ connect failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(d.RetryInterval * time.Second)
	}
	return nil, fmt.Errorf("無法連線 RabbitMQ, 經過 %d 次嘗試: %w", retries(d.RetryCount), err)
}

// GetRabbitMQChannelWithRetry 使用已有的 RabbitMQ 連線嘗試取得 Channel
func GetRabbitMQChannelWithRetry(conn *amqp.Connection, maxRetries int, baseDelay time.Duration) (*amqp.Channel, error) {
	var (
		ch  *amqp.Channel
		err error
	)

	for attempt := 1; attempt <= retries(maxRetries); attempt++ {
		ch, err = conn.Channel()
		if err == nil {
			return ch, nil
		}

		logger.Log.Warn("RabbitMQ channel failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(baseDelay * time.Second)
	}
	return nil, fmt.Errorf("無法取得 RabbitMQ Channel, 經過 %d 次嘗試: %w", retries(maxRetries), err)
}

// DeclareQueue durable queue
func (r *rabbitRepo) DeclareQueue(name string) error {
	_, err := r.channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (r *rabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return r.channel.Publish(exchange, key, mandatory, immediate, msg)
}

func (r *rabbitRepo) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
