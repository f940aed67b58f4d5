package config

import "time"

// VideoService definition video_service YAML structure
type VideoService struct {
	Port       string        `mapstructure:"port"`
	IP         string        `mapstructure:"ip"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	MaxUsers   int           `mapstructure:"max_users"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Events     EventConfig    `mapstructure:"events"`
	Feed       FeedConfig     `mapstructure:"feed"`
	RateLimit  RateLimit      `mapstructure:"rate_limit"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
	// Addr 未設定 sentinel 時使用的單機位址
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// StorageConfig 上傳檔案的存放位置
type StorageConfig struct {
	Driver       string      `mapstructure:"driver"` // local | minio
	UploadDir    string      `mapstructure:"upload_dir"`
	PublicPrefix string      `mapstructure:"public_prefix"`
	MaxFileSize  int64       `mapstructure:"max_file_size"`
	MinIO        MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	BucketName    string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicURL     string `mapstructure:"public_url"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// EventConfig 社交事件發布
type EventConfig struct {
	Driver   string         `mapstructure:"driver"` // none | rabbitmq | kafka
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Queue         string `mapstructure:"queue"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// FeedConfig 分頁預設值
type FeedConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	CommentLimit int `mapstructure:"comment_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// RateLimit 每個 IP 在 Expiration 內可呼叫的次數, Max 為 0 表示不限制
type RateLimit struct {
	Max        int           `mapstructure:"max"`
	Expiration time.Duration `mapstructure:"expiration"`
}

const (
	defaultMaxUsers     = 30
	defaultMaxFileSize  = 52428800
	defaultFeedLimit    = 10
	defaultCommentLimit = 20
	defaultMaxLimit     = 100
	defaultQueue        = "social_events"
)

// ApplyDefaults 補上 YAML 未設定的欄位
func (c *VideoService) ApplyDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 60
	}
	if c.MaxUsers <= 0 {
		c.MaxUsers = defaultMaxUsers
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "./uploads"
	}
	if c.Storage.PublicPrefix == "" {
		c.Storage.PublicPrefix = "/uploads"
	}
	if c.Storage.MaxFileSize <= 0 {
		c.Storage.MaxFileSize = defaultMaxFileSize
	}
	if c.Events.Driver == "" {
		c.Events.Driver = "none"
	}
	if c.Events.RabbitMQ.Queue == "" {
		c.Events.RabbitMQ.Queue = defaultQueue
	}
	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = defaultQueue
	}
	if c.Feed.DefaultLimit <= 0 {
		c.Feed.DefaultLimit = defaultFeedLimit
	}
	if c.Feed.CommentLimit <= 0 {
		c.Feed.CommentLimit = defaultCommentLimit
	}
	if c.Feed.MaxLimit <= 0 {
		c.Feed.MaxLimit = defaultMaxLimit
	}
}
