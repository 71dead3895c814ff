package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type driverFixture struct {
	svc     DriverService
	drivers *fakeDriverRepo
	otps    *fakeOTPRepo
	store   *fakeStorage
	sms     *fakeSMS
}

func newDriverFixture(drivers ...*entity.Driver) *driverFixture {
	f := &driverFixture{
		drivers: newFakeDriverRepo(drivers...),
		otps:    &fakeOTPRepo{},
		store:   newFakeStorage(),
		sms:     &fakeSMS{},
	}
	repo := &repository.Repository{Driver: f.drivers, OTP: f.otps}
	f.svc = NewDriverService(repo, f.store, f.sms, testConfig(), zap.NewNop())
	return f
}

func driverWith(kyc entity.KYCStatus) *entity.Driver {
	return &entity.Driver{
		Base:          entity.NewBase(time.Now()),
		FullName:      "Ravi Kumar",
		Phone:         "+919800000002",
		LicenseNumber: "KA0120200001",
		KYCStatus:     kyc,
	}
}

func textFile(name string) *request.File {
	return &request.File{Name: name, ContentType: "image/jpeg", Size: 4, Content: strings.NewReader("data")}
}

func TestDriverDocumentsWithoutUploads(t *testing.T) {
	t.Run("approved driver gets no review actions", func(t *testing.T) {
		d := driverWith(entity.KYCStatusApproved)
		f := newDriverFixture(d)

		resp, err := f.svc.GetDocuments(context.Background(), d.ID.String())
		require.NoError(t, err)

		require.Len(t, resp.Documents, len(entity.RequiredDriverDocuments))
		for i, doc := range resp.Documents {
			assert.Equal(t, entity.RequiredDriverDocuments[i], doc.Type)
			assert.Equal(t, string(DocumentNotUploaded), doc.Status)
			assert.Nil(t, doc.URL)
		}
		assert.Empty(t, resp.ReviewActions)
	})

	t.Run("pending driver can be reviewed", func(t *testing.T) {
		d := driverWith(entity.KYCStatusPending)
		f := newDriverFixture(d)

		resp, err := f.svc.GetDocuments(context.Background(), d.ID.String())
		require.NoError(t, err)
		assert.Equal(t, []string{"approve", "reject", "request_resubmission"}, resp.ReviewActions)
	})
}

func TestKYCDecisions(t *testing.T) {
	t.Run("reject needs a reason", func(t *testing.T) {
		d := driverWith(entity.KYCStatusPending)
		f := newDriverFixture(d)
		blank := "  "

		_, err := f.svc.RejectKYC(context.Background(), d.ID.String(), &request.KYCDecisionRequest{Reason: &blank})
		require.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.drivers.updates)
	})

	t.Run("resubmission needs a reason", func(t *testing.T) {
		d := driverWith(entity.KYCStatusPending)
		f := newDriverFixture(d)

		_, err := f.svc.RequestResubmission(context.Background(), d.ID.String(), &request.KYCDecisionRequest{})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("only pending reviews are decided", func(t *testing.T) {
		d := driverWith(entity.KYCStatusApproved)
		f := newDriverFixture(d)

		_, err := f.svc.ApproveKYC(context.Background(), d.ID.String(), &request.KYCDecisionRequest{})
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Zero(t, f.drivers.updates)
	})

	t.Run("reject stores remarks", func(t *testing.T) {
		d := driverWith(entity.KYCStatusPending)
		f := newDriverFixture(d)
		reason := " blurry licence scan "

		resp, err := f.svc.RejectKYC(context.Background(), d.ID.String(), &request.KYCDecisionRequest{Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, entity.KYCStatusRejected, resp.KYCStatus)
		require.NotNil(t, resp.KYCRemarks)
		assert.Equal(t, "blurry licence scan", *resp.KYCRemarks)
		assert.Empty(t, resp.ReviewActions)
	})
}

func TestUploadDocumentAfterRejectionReopensReview(t *testing.T) {
	d := driverWith(entity.KYCStatusRejected)
	old := "https://files.test/driver-docs/" + d.ID.String() + "/id_proof-1.jpg"
	d.IDProofURL = &old
	f := newDriverFixture(d)

	resp, err := f.svc.UploadDocument(context.Background(), d.ID.String(), &request.UploadDriverDocumentRequest{
		DocumentType: string(entity.DriverDocIDProof),
		File:         textFile("id.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.KYCStatusPending, resp.KYCStatus)
	assert.Contains(t, f.store.removed, "driver-docs/"+d.ID.String()+"/id_proof-1.jpg")
	for _, doc := range resp.Documents {
		if doc.Type == entity.DriverDocIDProof {
			require.NotNil(t, doc.URL)
			assert.NotEqual(t, old, *doc.URL)
			assert.Equal(t, string(DocumentPendingReview), doc.Status)
		}
	}
}

func TestSendOTP(t *testing.T) {
	t.Run("registered phone", func(t *testing.T) {
		d := driverWith(entity.KYCStatusApproved)
		f := newDriverFixture(d)

		_, err := f.svc.SendOTP(context.Background(), &request.SendDriverOTPRequest{Phone: d.Phone})
		require.ErrorIs(t, err, ErrConflict)
		assert.Empty(t, f.sms.sent)
	})

	t.Run("new phone gets a code", func(t *testing.T) {
		f := newDriverFixture()
		phone := "+919811111111"

		resp, err := f.svc.SendOTP(context.Background(), &request.SendDriverOTPRequest{Phone: phone})
		require.NoError(t, err)
		assert.True(t, resp.ExpiresAt.After(time.Now()))

		require.Len(t, f.otps.codes, 1)
		assert.Len(t, f.otps.codes[0].OTPCode, 6)
		assert.Contains(t, f.sms.sent[phone], f.otps.codes[0].OTPCode)
	})
}

func TestCreateDriver(t *testing.T) {
	phone := "+919822222222"
	seed := func(f *driverFixture) {
		f.otps.codes = append(f.otps.codes, &entity.OTP{
			BaseSimple: entity.NewBaseSimple(time.Now()),
			Phone:      phone,
			OTPCode:    "123456",
			Purpose:    entity.OTPPurposeDriverOnboarding,
			ExpiresAt:  time.Now().Add(time.Minute),
		})
	}

	t.Run("otp length is checked first", func(t *testing.T) {
		f := newDriverFixture()
		seed(f)

		_, err := f.svc.CreateDriver(context.Background(), &request.CreateDriverRequest{
			Phone: phone, OTP: "1234", FullName: "Meena", LicenseNumber: "KA01",
		})
		require.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, f.drivers.items)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newDriverFixture()
		seed(f)

		_, err := f.svc.CreateDriver(context.Background(), &request.CreateDriverRequest{
			Phone: phone, OTP: "654321", FullName: "Meena", LicenseNumber: "KA01",
		})
		require.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, f.drivers.items)
	})

	t.Run("failed upload becomes a warning", func(t *testing.T) {
		f := newDriverFixture()
		seed(f)
		f.store.failOn = "id_proof"

		resp, err := f.svc.CreateDriver(context.Background(), &request.CreateDriverRequest{
			Phone:          phone,
			OTP:            "123456",
			FullName:       " Meena Iyer ",
			LicenseNumber:  "KA0120210002",
			ProfilePicture: textFile("me.jpg"),
			Documents: map[string]*request.File{
				string(entity.DriverDocDrivingLicense): textFile("dl.jpg"),
				string(entity.DriverDocIDProof):        textFile("id.jpg"),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Meena Iyer", resp.Driver.FullName)
		assert.Equal(t, entity.KYCStatusPending, resp.Driver.KYCStatus)
		assert.NotNil(t, resp.Driver.ProfilePictureURL)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "ID Proof")

		id, err := uuid.Parse(resp.Driver.ID)
		require.NoError(t, err)
		stored := f.drivers.items[id]
		assert.NotNil(t, stored.LicenseDocumentURL)
		assert.Nil(t, stored.IDProofURL)
		assert.True(t, f.otps.codes[0].IsUsed)
	})

	t.Run("failed insert keeps the code", func(t *testing.T) {
		f := newDriverFixture()
		seed(f)
		f.drivers.createErr = errors.New("connection reset")
		req := &request.CreateDriverRequest{
			Phone:          phone,
			OTP:            "123456",
			FullName:       "Meena Iyer",
			LicenseNumber:  "KA0120210002",
			ProfilePicture: textFile("me.jpg"),
		}

		_, err := f.svc.CreateDriver(context.Background(), req)
		require.Error(t, err)
		assert.False(t, f.otps.codes[0].IsUsed)
		assert.Len(t, f.store.removed, 1)

		f.drivers.createErr = nil
		req.ProfilePicture = nil
		resp, err := f.svc.CreateDriver(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Meena Iyer", resp.Driver.FullName)
		assert.True(t, f.otps.codes[0].IsUsed)
	})
}

func TestDeleteDriverRemovesStoredFiles(t *testing.T) {
	d := driverWith(entity.KYCStatusApproved)
	pic := "https://files.test/profiles/" + d.ID.String() + "/profile-1.jpg"
	dl := "https://files.test/driver-docs/" + d.ID.String() + "/driving_license-1.jpg"
	d.ProfilePictureURL = &pic
	d.LicenseDocumentURL = &dl
	f := newDriverFixture(d)

	require.NoError(t, f.svc.DeleteDriver(context.Background(), d.ID.String()))

	assert.NotNil(t, f.drivers.items[d.ID].DeletedAt)
	assert.ElementsMatch(t, []string{
		"profiles/" + d.ID.String() + "/profile-1.jpg",
		"driver-docs/" + d.ID.String() + "/driving_license-1.jpg",
	}, f.store.removed)

	_, err := f.svc.GetDriver(context.Background(), d.ID.String())
	require.ErrorIs(t, err, ErrNotFound)
}
