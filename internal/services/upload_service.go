package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/storage"

	"github.com/google/uuid"
)

// UploadConfig bounds what the photo store accepts.
type UploadConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type UploadService interface {
	// StoreCasePhoto validates and stores an uploaded photo, returning the
	// stable reference the case record keeps.
	StoreCasePhoto(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type uploadService struct {
	storage storage.Storage
	config  UploadConfig
}

func NewUploadService(st storage.Storage, config UploadConfig) UploadService {
	if config.MaxSize == 0 {
		config.MaxSize = 5 * 1024 * 1024
	}
	if len(config.AllowedTypes) == 0 {
		config.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}
	}
	return &uploadService{
		storage: st,
		config:  config,
	}
}

func (s *uploadService) StoreCasePhoto(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.config.MaxSize {
		return "", apperrors.ValidationError(map[string]string{
			"photo": fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxSize),
		})
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedPhotoExtensions[ext] {
		return "", apperrors.ValidationError(map[string]string{
			"photo": "only image files are allowed",
		})
	}

	contentType := fh.Header.Get("Content-Type")
	if !s.typeAllowed(contentType) {
		return "", apperrors.ValidationError(map[string]string{
			"photo": "only image files are allowed",
		})
	}

	file, err := fh.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer file.Close()

	path := fmt.Sprintf("cases/%s%s", uuid.NewString(), ext)
	if err := s.storage.Save(ctx, path, file, contentType); err != nil {
		return "", apperrors.StoreError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.StoreError(err)
	}
	return url, nil
}

func (s *uploadService) typeAllowed(contentType string) bool {
	for _, t := range s.config.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
