package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/celebnet/backend/internal/modules/filestorage/domain"
)

// S3Config holds configuration for S3 or an S3-compatible store such as MinIO.
type S3Config struct {
	BucketName     string
	Region         string
	Endpoint       string // empty for AWS
	PublicEndpoint string // host clients use to fetch objects; defaults to Endpoint
	AccessKey      string
	SecretKey      string
}

// S3Storage implements domain.FileStorage
type S3Storage struct {
	client *s3.Client
	config S3Config
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.Endpoint))
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, config: cfg}, nil
}

// UploadFile implements domain.FileStorage
func (s *S3Storage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return s.publicPrefix() + key, nil
}

// DeleteFile implements domain.FileStorage
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

// GetKeyFromURL accepts URLs under the public or the internal endpoint.
func (s *S3Storage) GetKeyFromURL(fileURL string) (string, error) {
	prefixes := []string{s.publicPrefix()}
	if s.config.Endpoint != "" {
		prefixes = append(prefixes, s.endpointPrefix(s.config.Endpoint))
	}
	for _, prefix := range prefixes {
		if key, ok := strings.CutPrefix(fileURL, prefix); ok && key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrForeignURL, fileURL)
}

// publicPrefix is the URL prefix objects are served under, ending in "/".
func (s *S3Storage) publicPrefix() string {
	switch {
	case s.config.PublicEndpoint != "":
		return s.endpointPrefix(s.config.PublicEndpoint)
	case s.config.Endpoint != "":
		return s.endpointPrefix(s.config.Endpoint)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.BucketName, s.config.Region)
	}
}

func (s *S3Storage) endpointPrefix(endpoint string) string {
	return fmt.Sprintf("%s/%s/", strings.TrimRight(withScheme(endpoint), "/"), s.config.BucketName)
}

// withScheme defaults bare host:port endpoints to http, as MinIO is usually run.
func withScheme(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "http://" + endpoint
}
