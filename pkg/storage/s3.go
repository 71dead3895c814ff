package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type S3Storage struct {
	client        *s3.Client
	region        string
	endpoint      string
	publicBaseURL string
	log           *zap.Logger
}

// NewS3Storage builds a client from the default AWS credential chain. A
// non-empty endpoint targets an S3 compatible store with path-style URLs.
func NewS3Storage(ctx context.Context, region, endpoint, publicBaseURL string, log *zap.Logger) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:        client,
		region:        region,
		endpoint:      strings.TrimRight(endpoint, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log.With(zap.String("component", "storage")),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket string, req *UploadRequest) (*UploadResponse, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(req.Key),
		Body:        req.Reader,
		ContentType: aws.String(req.ContentType),
	}
	if req.Size > 0 {
		input.ContentLength = aws.Int64(req.Size)
	}

	resp, err := s.client.PutObject(ctx, input)
	if err != nil {
		s.log.Error("Failed to upload object",
			zap.Error(err),
			zap.String("bucket", bucket),
			zap.String("key", req.Key),
		)
		return nil, fmt.Errorf("upload %s/%s: %w", bucket, req.Key, err)
	}

	return &UploadResponse{
		Bucket: bucket,
		Key:    req.Key,
		URL:    s.PublicURL(bucket, req.Key),
		Size:   req.Size,
		ETag:   aws.ToString(resp.ETag),
	}, nil
}

func (s *S3Storage) Remove(ctx context.Context, bucket string, keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			s.log.Error("Failed to remove object",
				zap.Error(err),
				zap.String("bucket", bucket),
				zap.String("key", key),
			)
			return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
		}
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket, key string) string {
	return s.bucketBase(bucket) + "/" + key
}

func (s *S3Storage) KeyFromURL(bucket, url string) (string, bool) {
	prefix := s.bucketBase(bucket) + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}

func (s *S3Storage) bucketBase(bucket string) string {
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + bucket
	case s.endpoint != "":
		return s.endpoint + "/" + bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, s.region)
	}
}
