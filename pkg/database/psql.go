package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"short_video_service/pkg/logger"
)

// NewDatabaseConnection create a new postgreSQL pgx pool
func NewDatabaseConnection(d Connection) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(d.ConnectStr)
	if err != nil {
		return nil, fmt.Errorf("parse pg config: %w", err)
	}

	var pool *pgxpool.Pool
	for i := 0; i < retries(d.RetryCount); i++ {
		pool, err = pgxpool.ConnectConfig(context.Background(), dbConfig)
		if err == nil {
			return pool, nil
		}
		logger.Log.Warn(
			"Failed to connect to postgreSQL database, retrying...",
			zap.Int("attempt", i+1),
			zap.String("host", dbConfig.ConnConfig.Host),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval * time.Second)
	}
	return nil, err
}

// NewPGConnection create a new postgreSQL gorm connection.
// TranslateError 讓 unique violation 變成 gorm.ErrDuplicatedKey
func NewPGConnection(d Connection) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < retries(d.RetryCount); i++ {
		db, err = gorm.Open(postgres.Open(d.ConnectStr), NewGormConfig())
		if err == nil {
			return db, nil
		}
		logger.Log.Warn(
			"Failed to open gorm postgreSQL connection, retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval * time.Second)
	}
	return nil, err
}

// NewGormConfig 服務與測試共用的 gorm 設定
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// PostgresDSN 組出 postgres 連線字串
func PostgresDSN(user, password, host string, port int, database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", user, password, host, port, database)
}
