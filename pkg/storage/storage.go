// Package storage 保存上傳的影片檔, 回傳可公開存取的 URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"short_video_service/pkg/config"
	"short_video_service/pkg/database"
)

// Storage 上傳檔案的存放位置
type Storage interface {
	Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// LocalStorage 寫入本機目錄, 由 HTTP server 以 prefix 提供靜態檔
type LocalStorage struct {
	fs     afero.Fs
	dir    string
	prefix string
}

// NewLocalStorage fs 於測試時可替換為 afero.NewMemMapFs()
func NewLocalStorage(fs afero.Fs, dir, prefix string) (*LocalStorage, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{fs: fs, dir: dir, prefix: prefix}, nil
}

func (s *LocalStorage) Save(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	name := filepath.Base(objectName)
	f, err := s.fs.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = s.fs.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join("/", s.prefix, name), nil
}

// MinIOStorage 寫入 MinIO bucket
type MinIOStorage struct {
	client    database.MinIOClientRepo
	publicURL string
}

// NewMinIOStorage publicURL 為對外的 MinIO 位址, 例如 http://cdn.example.com
func NewMinIOStorage(client database.MinIOClientRepo, publicURL string) *MinIOStorage {
	return &MinIOStorage{client: client, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *MinIOStorage) Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.client.PutObject(ctx, objectName, r, size, contentType); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicURL + "/" + s.client.Bucket() + "/" + objectName, nil
}

// New 依 driver 建立 Storage
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(afero.NewOsFs(), cfg.UploadDir, cfg.PublicPrefix)
	case "minio":
		m := cfg.MinIO
		client, err := database.NewMinIOConnection(database.MinIOConnection{
			Endpoint:      fmt.Sprintf("%s:%d", m.Host, m.Port),
			User:          m.User,
			Password:      m.Password,
			BucketName:    m.BucketName,
			UseSSL:        m.UseSSL,
			RetryCount:    m.RetryCount,
			RetryInterval: time.Duration(m.RetryInterval),
		})
		if err != nil {
			return nil, err
		}
		return NewMinIOStorage(client, m.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
