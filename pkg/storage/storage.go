// Package storage uploads and removes files in object storage buckets and
// resolves the public URLs the dashboard renders.
package storage

import (
	"context"
	"io"
)

type Provider interface {
	Upload(ctx context.Context, bucket string, req *UploadRequest) (*UploadResponse, error)
	Remove(ctx context.Context, bucket string, keys ...string) error
	PublicURL(bucket, key string) string
	// KeyFromURL reverses PublicURL. ok is false for URLs outside the bucket.
	KeyFromURL(bucket, url string) (key string, ok bool)
}

type UploadRequest struct {
	Key         string
	Reader      io.Reader
	ContentType string
	Size        int64
}

type UploadResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
	ETag   string `json:"etag,omitempty"`
}
