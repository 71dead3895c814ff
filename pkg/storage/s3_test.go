package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3PublicURLRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		store   *S3Storage
		wantURL string
	}{
		{
			name:    "aws virtual host",
			store:   &S3Storage{region: "ap-south-1"},
			wantURL: "https://driver-documents.s3.ap-south-1.amazonaws.com/d1/license.pdf",
		},
		{
			name:    "compatible endpoint",
			store:   &S3Storage{region: "ap-south-1", endpoint: "http://minio:9000"},
			wantURL: "http://minio:9000/driver-documents/d1/license.pdf",
		},
		{
			name:    "public base url wins",
			store:   &S3Storage{region: "ap-south-1", endpoint: "http://minio:9000", publicBaseURL: "https://cdn.example.com/storage"},
			wantURL: "https://cdn.example.com/storage/driver-documents/d1/license.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := tt.store.PublicURL("driver-documents", "d1/license.pdf")
			assert.Equal(t, tt.wantURL, url)

			key, ok := tt.store.KeyFromURL("driver-documents", url)
			assert.True(t, ok)
			assert.Equal(t, "d1/license.pdf", key)
		})
	}
}

func TestS3KeyFromForeignURL(t *testing.T) {
	store := &S3Storage{region: "ap-south-1"}

	_, ok := store.KeyFromURL("driver-documents", "https://elsewhere.example.com/x.png")
	assert.False(t, ok)

	_, ok = store.KeyFromURL("driver-documents", store.PublicURL("vehicle-documents", "v1/rc.pdf"))
	assert.False(t, ok)
}
