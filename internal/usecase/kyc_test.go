package usecase

import (
	"testing"
	"time"

	"fleet-admin/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestDriverDocumentStatus(t *testing.T) {
	url := "https://docs.example.com/licence.pdf"
	blank := "  "

	tests := []struct {
		name string
		url  *string
		kyc  entity.KYCStatus
		want DocumentStatus
	}{
		{"missing", nil, entity.KYCStatusApproved, DocumentNotUploaded},
		{"blank", &blank, entity.KYCStatusPending, DocumentNotUploaded},
		{"pending", &url, entity.KYCStatusPending, DocumentPendingReview},
		{"approved", &url, entity.KYCStatusApproved, DocumentApproved},
		{"rejected", &url, entity.KYCStatusRejected, DocumentRejected},
		{"resubmission", &url, entity.KYCStatusResubmissionRequested, DocumentResubmissionRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriverDocumentStatus(tt.url, tt.kyc))
		})
	}
}

func TestReviewActions(t *testing.T) {
	assert.Len(t, ReviewActions(entity.KYCStatusPending), 3)
	assert.Empty(t, ReviewActions(entity.KYCStatusApproved))
	assert.Empty(t, ReviewActions(entity.KYCStatusRejected))
	assert.Empty(t, ReviewActions(entity.KYCStatusResubmissionRequested))
}

func TestDocumentExpiryStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := func(d int) *time.Time {
		t := now.AddDate(0, 0, d)
		return &t
	}

	assert.Equal(t, ExpiryNone, DocumentExpiryStatus(nil, now))
	assert.Equal(t, ExpiryExpired, DocumentExpiryStatus(day(-1), now))
	assert.Equal(t, ExpiryExpiringSoon, DocumentExpiryStatus(day(0), now))
	assert.Equal(t, ExpiryExpiringSoon, DocumentExpiryStatus(day(29), now))
	assert.Equal(t, ExpiryValid, DocumentExpiryStatus(day(45), now))
}
