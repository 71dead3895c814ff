package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"fleet-admin/internal/dto/request"
	"fleet-admin/pkg/storage"

	"go.uber.org/zap"
)

var errStorageDisabled = errors.New("file storage is not configured")

// uploader wraps the optional storage provider shared by the driver and
// vehicle services
type uploader struct {
	store storage.Provider
	log   *zap.Logger
}

// objectKey builds "<owner>/<kind>-<unix>.<ext>" so replacements never
// collide with the object they replace
func objectKey(owner, kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s-%d%s", owner, kind, time.Now().UnixNano(), ext)
}

func (u uploader) put(ctx context.Context, bucket, key string, f *request.File) (string, error) {
	if u.store == nil {
		return "", errStorageDisabled
	}
	if f == nil || f.Content == nil {
		return "", errors.New("empty file")
	}

	res, err := u.store.Upload(ctx, bucket, &storage.UploadRequest{
		Key:         key,
		Reader:      f.Content,
		ContentType: f.ContentType,
		Size:        f.Size,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return res.URL, nil
}

// remove deletes the objects behind the given URLs. Failures are logged,
// never returned.
func (u uploader) remove(ctx context.Context, bucket string, urls ...*string) {
	if u.store == nil {
		return
	}

	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if isBlank(url) {
			continue
		}
		if key, ok := u.store.KeyFromURL(bucket, *url); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := u.store.Remove(ctx, bucket, keys...); err != nil {
		u.log.Warn("Failed to remove stored objects",
			zap.Error(err),
			zap.String("bucket", bucket),
			zap.Strings("keys", keys))
	}
}
