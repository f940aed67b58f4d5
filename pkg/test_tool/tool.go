package testtool

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"short_video_service/pkg/database"
)

// SetupContainer 通用函式來啟動測試容器, 回傳第一個 ExposedPorts 的 host 與對外 port
func SetupContainer(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", "", err
	}

	natPort, err := nat.NewPort("tcp", strings.TrimSuffix(req.ExposedPorts[0], "/tcp"))
	if err != nil {
		return nil, "", "", err
	}

	port, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return nil, "", "", err
	}

	return container, host, port.Port(), nil
}

// SetupPostgres 啟動 postgres 容器並回傳連線設定
func SetupPostgres(ctx context.Context) (testcontainers.Container, database.Connection, error) {
	const (
		dbName   = "short_video_test"
		user     = "test"
		password = "test"
	)

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       dbName,
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, host, port, err := SetupContainer(ctx, req)
	if err != nil {
		return nil, database.Connection{}, err
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return container, database.Connection{}, err
	}
	return container, database.Connection{
		ConnectStr:    database.PostgresDSN(user, password, host, p, dbName),
		RetryCount:    5,
		RetryInterval: 1,
	}, nil
}

// NewMockGorm gorm + sqlmock, 用於檢查 repository 產生的 SQL
func NewMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.NewGormConfig())
	require.NoError(t, err)
	return db, mock
}
