// Package event 發布社交互動事件 (影片, 按讚, 留言, 追蹤).
// 發布失敗只記錄, 不影響已完成的寫入.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"short_video_service/pkg/config"
	"short_video_service/pkg/database"
	"short_video_service/pkg/logger"
)

// Type 事件種類
type Type string

const (
	VideoCreated   Type = "video.created"
	VideoUpdated   Type = "video.updated"
	VideoDeleted   Type = "video.deleted"
	VideoLiked     Type = "video.liked"
	VideoUnliked   Type = "video.unliked"
	CommentCreated Type = "comment.created"
	CommentDeleted Type = "comment.deleted"
	UserFollowed   Type = "user.followed"
	UserUnfollowed Type = "user.unfollowed"
	UserRegistered Type = "user.registered"
)

// Event 事件內容
type Event struct {
	Type       Type      `json:"type"`
	ActorID    string    `json:"actorId"`
	SubjectID  string    `json:"subjectId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New 以目前時間建立事件
func New(t Type, actorID, subjectID string) Event {
	return Event{Type: t, ActorID: actorID, SubjectID: subjectID, OccurredAt: time.Now().UTC()}
}

// Publisher 事件發布
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Emit 發布事件, 失敗只寫 log
func Emit(ctx context.Context, p Publisher, evt Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		logger.Log.Warn("publish event failed",
			zap.String("type", string(evt.Type)),
			zap.String("subject_id", evt.SubjectID),
			zap.Error(err),
		)
	}
}

type nopPublisher struct{}

// NewNop 不發布任何事件
func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error {
	return nil
}

type rabbitPublisher struct {
	repo  database.RabbitRepo
	queue string
}

// NewRabbitPublisher 以 default exchange 送到 durable queue
func NewRabbitPublisher(repo database.RabbitRepo, queue string) (Publisher, error) {
	if err := repo.DeclareQueue(queue); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &rabbitPublisher{repo: repo, queue: queue}, nil
}

func (p *rabbitPublisher) Publish(_ context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.repo.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(evt.Type),
		Timestamp:    evt.OccurredAt,
		Body:         body,
	})
}

// KafkaWriter *kafka.Writer 的最小介面
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaPublisher struct {
	writer KafkaWriter
}

// NewKafkaPublisher 以 SubjectID 為 key, 同一物件的事件保持順序
func NewKafkaPublisher(writer KafkaWriter) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.SubjectID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
		Time: evt.OccurredAt,
	})
}

// NewFromConfig 依 driver 建立 Publisher, 回傳的 close 於程式結束時呼叫
func NewFromConfig(cfg config.EventConfig) (Publisher, func() error, error) {
	switch cfg.Driver {
	case "", "none":
		return NewNop(), func() error { return nil }, nil

	case "rabbitmq":
		r := cfg.RabbitMQ
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port),
			RetryCount:    r.RetryCount,
			RetryInterval: time.Duration(r.RetryInterval),
		})
		if err != nil {
			return nil, nil, err
		}
		ch, err := database.GetRabbitMQChannelWithRetry(conn, r.RetryCount, time.Duration(r.RetryInterval))
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		repo := database.NewRabbitRepository(conn, ch)
		p, err := NewRabbitPublisher(repo, r.Queue)
		if err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		return p, repo.Close, nil

	case "kafka":
		k := cfg.Kafka
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       k.Brokers,
			Topic:         k.Topic,
			RetryCount:    k.RetryCount,
			RetryInterval: time.Duration(k.RetryInterval),
		})
		if err != nil {
			return nil, nil, err
		}
		return NewKafkaPublisher(writer), writer.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown event driver %q", cfg.Driver)
	}
}
