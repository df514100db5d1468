package util

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"blog-backend/internal/model"

	"github.com/google/uuid"
)

// GenerateUniqueFilename 生成唯一的文件名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return uuid.NewString() + ext
}

// DetectMediaType 根据上传文件的 Content-Type 判断媒体类型
func DetectMediaType(file *multipart.FileHeader) string {
	contentType := file.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "video/") {
		return model.MediaTypeVideo
	}
	return model.MediaTypeImage
}
