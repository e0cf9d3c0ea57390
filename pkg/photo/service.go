// Package photo uploads profile photos to an object store and records
// the resulting URL on the user's profile.
package photo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Extensions lists the accepted file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(contentTypes))
	for ext := range contentTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Profiles is the store operation the service needs.
type Profiles interface {
	UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error
}

// Service validates and uploads photos.
type Service struct {
	objects  ObjectStore
	profiles Profiles
	maxBytes int64
	log      *zap.Logger
	newID    func() uuid.UUID
}

// NewService creates a Service. maxBytes caps the upload size.
func NewService(objects ObjectStore, profiles Profiles, maxBytes int64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		objects:  objects,
		profiles: profiles,
		maxBytes: maxBytes,
		log:      log,
		newID:    uuid.New,
	}
}

// Upload stores the image at path under avatars/<user>/ and saves its URL
// as the user's photo.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, path string) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("photo.Upload: %w", models.ErrUnauthorized)
	}

	ext := strings.ToLower(filepath.Ext(path))
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", models.NewValidationError("photo", fmt.Sprintf("unsupported file type %q", ext))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("photo.Upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("photo.Upload: %w", err)
	}
	switch {
	case info.IsDir():
		return "", models.NewValidationError("photo", "is a directory")
	case info.Size() == 0:
		return "", models.NewValidationError("photo", "file is empty")
	case info.Size() > s.maxBytes:
		return "", models.NewValidationError("photo", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, s.newID(), ext)
	url, err := s.objects.Put(ctx, key, f, info.Size(), contentType)
	if err != nil {
		return "", fmt.Errorf("photo.Upload: %w", err)
	}

	if err := s.profiles.UpdateFields(ctx, userID, models.Fields{models.FieldPhotoURL: url}); err != nil {
		return "", fmt.Errorf("photo.Upload: %w", err)
	}

	s.log.Info("profile photo uploaded",
		zap.String("user_id", userID.String()),
		zap.String("key", key),
		zap.Int64("bytes", info.Size()),
	)
	return url, nil
}
