package storage

import (
	"fmt"
	"mime/multipart"

	"blog-backend/config"
)

// Storage 定义媒体文件存储接口，返回可访问的文件URL
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// NewFromConfig 根据配置选择存储后端
func NewFromConfig(cfg config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSBucketName, cfg.GCSCredentialsFile)
	case "local":
		return NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
