// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// S3Config points the image source at AWS or an S3-compatible endpoint
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
}

// S3Source loads product images from s3://bucket/key references
type S3Source struct {
	downloader *manager.Downloader
	maxBytes   int64
	logger     *slog.Logger
}

var _ ports.ImageSource = (*S3Source)(nil)

// NewS3Source creates an image source backed by the AWS SDK. Static keys in
// cfg win over the default credential chain.
func NewS3Source(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Source, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Debug("S3 image source initialized",
		slog.String("region", cfg.Region),
		slog.String("endpoint", cfg.Endpoint))

	return NewS3SourceFromClient(client, logger), nil
}

// NewS3SourceFromClient wraps an existing GetObject client
func NewS3SourceFromClient(client manager.DownloadAPIClient, logger *slog.Logger) *S3Source {
	return &S3Source{
		downloader: manager.NewDownloader(client),
		maxBytes:   MaxImageBytes,
		logger:     logger.With(slog.String("storage", "s3")),
	}
}

// Open downloads the object named by ref
func (s *S3Source) Open(ctx context.Context, ref string) (*domain.Image, error) {
	bucket, key, err := ParseS3URI(ref)
	if err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer([]byte{})
	n, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", ref, err)
	}
	if n > s.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, ref, n)
	}

	data := buf.Bytes()
	contentType, err := detectImageType(key, data)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "image downloaded",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int64("size", n))

	return &domain.Image{
		Filename:    path.Base(key),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ParseS3URI splits s3://bucket/key
func ParseS3URI(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 reference %q: %w", ref, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid S3 reference %q: scheme must be s3", ref)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 reference %q: expected s3://bucket/key", ref)
	}
	return u.Host, key, nil
}
