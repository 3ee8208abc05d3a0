// internal/adapters/storage/source.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// MaxImageBytes caps the size of an uploaded product image
const MaxImageBytes int64 = 5 << 20

var (
	ErrImageTooLarge = errors.New("image too large")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrNoRemote      = errors.New("s3 image source is not configured")
)

// LocalSource reads images from the local filesystem
type LocalSource struct {
	maxBytes int64
	logger   *slog.Logger
}

var _ ports.ImageSource = (*LocalSource)(nil)

// NewLocalSource creates a filesystem image source
func NewLocalSource(logger *slog.Logger) *LocalSource {
	return &LocalSource{
		maxBytes: MaxImageBytes,
		logger:   logger.With(slog.String("storage", "local")),
	}
}

// Open reads the file at ref
func (s *LocalSource) Open(ctx context.Context, ref string) (*domain.Image, error) {
	info, err := os.Stat(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open image: %s is a directory", ref)
	}
	if info.Size() > s.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, ref, info.Size())
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	contentType, err := detectImageType(ref, data)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "image loaded",
		slog.String("path", ref),
		slog.Int("size", len(data)))

	return &domain.Image{
		Filename:    filepath.Base(ref),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Resolver dispatches s3:// references to the S3 source and everything
// else to the filesystem.
type Resolver struct {
	local  ports.ImageSource
	remote ports.ImageSource
}

var _ ports.ImageSource = (*Resolver)(nil)

// NewResolver creates a resolver; remote may be nil
func NewResolver(local, remote ports.ImageSource) *Resolver {
	return &Resolver{local: local, remote: remote}
}

func (r *Resolver) Open(ctx context.Context, ref string) (*domain.Image, error) {
	if strings.HasPrefix(ref, "s3://") {
		if r.remote == nil {
			return nil, ErrNoRemote
		}
		return r.remote.Open(ctx, ref)
	}
	return r.local.Open(ctx, ref)
}

// detectImageType sniffs the content and falls back to the extension
func detectImageType(name string, data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if strings.HasPrefix(contentType, "image/") {
		return contentType, nil
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); strings.HasPrefix(byExt, "image/") {
		return byExt, nil
	}

	return "", fmt.Errorf("%w: %s (%s)", ErrNotAnImage, name, contentType)
}
