package usecase

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type DocumentStatus string

const (
	DocumentNotUploaded           DocumentStatus = "not_uploaded"
	DocumentPendingReview         DocumentStatus = "pending_review"
	DocumentApproved              DocumentStatus = "approved"
	DocumentRejected              DocumentStatus = "rejected"
	DocumentResubmissionRequested DocumentStatus = "resubmission_requested"
)

// DriverDocumentStatus derives a document badge from its URL and the
// driver's overall KYC status
func DriverDocumentStatus(url *string, kyc entity.KYCStatus) DocumentStatus {
	if isBlank(url) {
		return DocumentNotUploaded
	}
	switch kyc {
	case entity.KYCStatusApproved:
		return DocumentApproved
	case entity.KYCStatusRejected:
		return DocumentRejected
	case entity.KYCStatusResubmissionRequested:
		return DocumentResubmissionRequested
	default:
		return DocumentPendingReview
	}
}

type ReviewAction string

const (
	ReviewApprove             ReviewAction = "approve"
	ReviewReject              ReviewAction = "reject"
	ReviewRequestResubmission ReviewAction = "request_resubmission"
)

// ReviewActions lists what an admin may do with a driver's KYC. Only a
// pending review can be decided.
func ReviewActions(kyc entity.KYCStatus) []ReviewAction {
	if kyc != entity.KYCStatusPending {
		return []ReviewAction{}
	}
	return []ReviewAction{ReviewApprove, ReviewReject, ReviewRequestResubmission}
}

type ExpiryStatus string

const (
	ExpiryNone         ExpiryStatus = "no_expiry"
	ExpiryValid        ExpiryStatus = "valid"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryExpired      ExpiryStatus = "expired"
)

const expiringSoonWindow = 30 * 24 * time.Hour

// DocumentExpiryStatus classifies an expiry date relative to now. A
// document expiring today is still valid for the rest of the day.
func DocumentExpiryStatus(expiry *time.Time, now time.Time) ExpiryStatus {
	if expiry == nil {
		return ExpiryNone
	}
	endOfDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 23, 59, 59, 0, expiry.Location())
	switch {
	case now.After(endOfDay):
		return ExpiryExpired
	case endOfDay.Sub(now) <= expiringSoonWindow:
		return ExpiryExpiringSoon
	default:
		return ExpiryValid
	}
}
