package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/pkg/sms"
	"fleet-admin/pkg/storage"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DriverService interface {
	SendOTP(ctx context.Context, req *request.SendDriverOTPRequest) (*response.SendOTPResponse, error)
	CreateDriver(ctx context.Context, req *request.CreateDriverRequest) (*response.CreateDriverResponse, error)
	ListDrivers(ctx context.Context, req *request.DriverListRequest) (*response.PaginatedResponse[response.DriverResponse], error)
	GetDriver(ctx context.Context, driverID string) (*response.DriverResponse, error)
	UpdateDriver(ctx context.Context, driverID string, req *request.UpdateDriverRequest) (*response.DriverResponse, error)
	DeleteDriver(ctx context.Context, driverID string) error
	Performance(ctx context.Context, driverID string) (*response.DriverPerformanceResponse, error)
	UpdateLocation(ctx context.Context, driverID string, req *request.UpdateDriverLocationRequest) (*response.DriverResponse, error)

	ListDocuments(ctx context.Context, req *request.DocumentListRequest) (*response.PaginatedResponse[response.DriverDocumentsResponse], error)
	GetDocuments(ctx context.Context, driverID string) (*response.DriverDocumentsResponse, error)
	UploadDocument(ctx context.Context, driverID string, req *request.UploadDriverDocumentRequest) (*response.DriverDocumentsResponse, error)
	ApproveKYC(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error)
	RejectKYC(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error)
	RequestResubmission(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error)
}

type driverService struct {
	repo   *repository.Repository
	files  uploader
	sms    sms.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewDriverService(repo *repository.Repository, store storage.Provider, sender sms.Sender, config *utils.Config, log *zap.Logger) DriverService {
	log = log.With(zap.String("service", "driver"))
	return &driverService{
		repo:   repo,
		files:  uploader{store: store, log: log},
		sms:    sender,
		config: config,
		log:    log,
	}
}

func (s *driverService) SendOTP(ctx context.Context, req *request.SendDriverOTPRequest) (*response.SendOTPResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Driver.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("find driver by phone: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("phone %s is already registered: %w", req.Phone, ErrConflict)
	}

	if err := s.repo.OTP.InvalidateForPhone(ctx, req.Phone, entity.OTPPurposeDriverOnboarding); err != nil {
		return nil, fmt.Errorf("invalidate previous otps: %w", err)
	}

	now := time.Now()
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		return nil, err
	}
	otp := &entity.OTP{
		BaseSimple: entity.NewBaseSimple(now),
		Phone:      req.Phone,
		OTPCode:    code,
		Purpose:    entity.OTPPurposeDriverOnboarding,
		ExpiresAt:  now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}
	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	body := fmt.Sprintf("Your %s driver verification code is %s. It expires in %d minutes.",
		s.config.App.Name, otp.OTPCode, s.config.OTP.ExpiryMinutes)
	if _, err := s.sms.Send(ctx, req.Phone, body); err != nil {
		s.log.Error("Failed to send OTP", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("send otp: %w", err)
	}

	s.log.Info("Driver OTP sent", zap.String("phone", req.Phone))
	return &response.SendOTPResponse{Phone: req.Phone, ExpiresAt: otp.ExpiresAt}, nil
}

func (s *driverService) CreateDriver(ctx context.Context, req *request.CreateDriverRequest) (*response.CreateDriverResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create driver validation failed", zap.Error(err))
		return nil, err
	}
	if len(req.OTP) != s.config.OTP.Length {
		return nil, newValidationError("otp", fmt.Sprintf("Must be %d digits", s.config.OTP.Length))
	}
	for docType := range req.Documents {
		if !entity.DriverDocumentType(docType).Valid() {
			return nil, newValidationError("documents", fmt.Sprintf("Unknown document type %q", docType))
		}
	}

	licenseExpiry, err := parseOptionalDate("license_expiry", req.LicenseExpiry)
	if err != nil {
		return nil, err
	}

	otp, err := s.repo.OTP.FindValidOTP(ctx, req.Phone, req.OTP, entity.OTPPurposeDriverOnboarding)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if otp == nil {
		return nil, newValidationError("otp", "Invalid or expired code")
	}

	existing, err := s.repo.Driver.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("find driver by phone: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("phone %s is already registered: %w", req.Phone, ErrConflict)
	}

	now := time.Now()
	driver := &entity.Driver{
		Base:          entity.NewBase(now),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		LicenseExpiry: licenseExpiry,
		Address:       req.Address,
		KYCStatus:     entity.KYCStatusPending,
	}

	// uploads run one after another before the insert; a failed file is
	// skipped and reported instead of aborting the onboarding
	warnings := []string{}
	owner := driver.ID.String()

	if req.ProfilePicture != nil {
		url, err := s.files.put(ctx, s.config.Storage.ProfilePictureBucket, objectKey(owner, "profile", req.ProfilePicture.Name), req.ProfilePicture)
		if err != nil {
			s.log.Warn("Profile picture upload failed", zap.Error(err), zap.String("driver_id", owner))
			warnings = append(warnings, fmt.Sprintf("profile picture was not uploaded: %v", err))
		} else {
			driver.ProfilePictureURL = &url
		}
	}

	for _, docType := range entity.RequiredDriverDocuments {
		file, ok := req.Documents[string(docType)]
		if !ok || file == nil {
			continue
		}
		url, err := s.files.put(ctx, s.config.Storage.DriverDocumentBucket, objectKey(owner, string(docType), file.Name), file)
		if err != nil {
			s.log.Warn("Document upload failed", zap.Error(err),
				zap.String("driver_id", owner),
				zap.String("document_type", string(docType)))
			warnings = append(warnings, fmt.Sprintf("%s was not uploaded: %v", docType.Label(), err))
			continue
		}
		driver.SetDocumentURL(docType, &url)
	}

	if err := s.repo.Driver.Create(ctx, driver); err != nil {
		// the code stays valid so the operator can retry
		s.files.remove(ctx, s.config.Storage.ProfilePictureBucket, driver.ProfilePictureURL)
		docs := make([]*string, 0, len(entity.RequiredDriverDocuments))
		for _, t := range entity.RequiredDriverDocuments {
			docs = append(docs, driver.DocumentURL(t))
		}
		s.files.remove(ctx, s.config.Storage.DriverDocumentBucket, docs...)
		return nil, fmt.Errorf("create driver: %w", err)
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
		s.log.Warn("Failed to consume onboarding OTP", zap.Error(err), zap.String("driver_id", owner))
	}

	s.log.Info("Driver created",
		zap.String("driver_id", owner),
		zap.Int("warnings", len(warnings)))

	created, err := s.loadDriver(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	return &response.CreateDriverResponse{
		Driver:   response.DriverToResponse(created),
		Warnings: warnings,
	}, nil
}

func (s *driverService) ListDrivers(ctx context.Context, req *request.DriverListRequest) (*response.PaginatedResponse[response.DriverResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.DriverFilter{IsOnline: req.Online, Search: strings.TrimSpace(req.Search)}
	if req.KYCStatus != "" {
		status := entity.KYCStatus(req.KYCStatus)
		filter.KYCStatus = &status
	}

	drivers, err := s.repo.Driver.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	total, err := s.repo.Driver.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}

	items := make([]response.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, response.DriverToResponse(d))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

func (s *driverService) loadDriver(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, err := s.repo.Driver.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find driver: %w", err)
	}
	if driver == nil {
		return nil, notFound("driver", id)
	}
	return driver, nil
}

func (s *driverService) load(ctx context.Context, rawID string) (*entity.Driver, error) {
	id, err := parseID("driver_id", rawID)
	if err != nil {
		return nil, err
	}
	return s.loadDriver(ctx, id)
}

func (s *driverService) GetDriver(ctx context.Context, driverID string) (*response.DriverResponse, error) {
	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}
	resp := response.DriverToResponse(driver)
	return &resp, nil
}

func (s *driverService) UpdateDriver(ctx context.Context, driverID string, req *request.UpdateDriverRequest) (*response.DriverResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	licenseExpiry, err := parseOptionalDate("license_expiry", req.LicenseExpiry)
	if err != nil {
		return nil, err
	}

	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		driver.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		driver.Email = req.Email
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = strings.TrimSpace(*req.LicenseNumber)
	}
	if licenseExpiry != nil {
		driver.LicenseExpiry = licenseExpiry
	}
	if req.Address != nil {
		driver.Address = req.Address
	}

	var replaced *string
	if req.ProfilePicture != nil {
		url, err := s.files.put(ctx, s.config.Storage.ProfilePictureBucket,
			objectKey(driver.ID.String(), "profile", req.ProfilePicture.Name), req.ProfilePicture)
		if err != nil {
			return nil, fmt.Errorf("upload profile picture: %w", err)
		}
		replaced = driver.ProfilePictureURL
		driver.ProfilePictureURL = &url
	}

	driver.UpdatedAt = time.Now()
	if err := s.repo.Driver.Update(ctx, driver); err != nil {
		return nil, mapRepoError(err)
	}

	// the old picture goes only once the new URL is persisted
	s.files.remove(ctx, s.config.Storage.ProfilePictureBucket, replaced)

	s.log.Info("Driver updated", zap.String("driver_id", driver.ID.String()))
	return s.GetDriver(ctx, driver.ID.String())
}

func (s *driverService) DeleteDriver(ctx context.Context, driverID string) error {
	driver, err := s.load(ctx, driverID)
	if err != nil {
		return err
	}

	if err := s.repo.Driver.Delete(ctx, driver.ID); err != nil {
		return mapRepoError(err)
	}

	s.files.remove(ctx, s.config.Storage.ProfilePictureBucket, driver.ProfilePictureURL)
	docs := make([]*string, 0, len(entity.RequiredDriverDocuments))
	for _, t := range entity.RequiredDriverDocuments {
		docs = append(docs, driver.DocumentURL(t))
	}
	s.files.remove(ctx, s.config.Storage.DriverDocumentBucket, docs...)

	s.log.Info("Driver deleted", zap.String("driver_id", driver.ID.String()))
	return nil
}

func (s *driverService) Performance(ctx context.Context, driverID string) (*response.DriverPerformanceResponse, error) {
	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}

	perf, err := s.repo.Driver.Performance(ctx, driver.ID)
	if err != nil {
		return nil, fmt.Errorf("driver performance: %w", err)
	}
	if perf == nil {
		perf = &entity.DriverPerformance{DriverID: driver.ID}
	}

	resp := response.DriverPerformanceToResponse(perf, driver.Rating)
	return &resp, nil
}

func (s *driverService) UpdateLocation(ctx context.Context, driverID string, req *request.UpdateDriverLocationRequest) (*response.DriverResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}

	online := true
	if req.IsOnline != nil {
		online = *req.IsOnline
	}

	if err := s.repo.Driver.UpdateLocation(ctx, driver.ID, req.Latitude, req.Longitude, online); err != nil {
		return nil, mapRepoError(err)
	}

	return s.GetDriver(ctx, driver.ID.String())
}

func driverDocuments(d *entity.Driver) response.DriverDocumentsResponse {
	docs := make([]response.DriverDocumentResponse, 0, len(entity.RequiredDriverDocuments))
	for _, t := range entity.RequiredDriverDocuments {
		url := d.DocumentURL(t)
		docs = append(docs, response.DriverDocumentResponse{
			Type:   t,
			Label:  t.Label(),
			URL:    url,
			Status: string(DriverDocumentStatus(url, d.KYCStatus)),
		})
	}

	actions := []string{}
	for _, a := range ReviewActions(d.KYCStatus) {
		actions = append(actions, string(a))
	}

	return response.DriverDocumentsResponse{
		DriverID:      d.ID.String(),
		FullName:      d.FullName,
		Phone:         d.Phone,
		KYCStatus:     d.KYCStatus,
		KYCRemarks:    d.KYCRemarks,
		KYCReviewedAt: d.KYCReviewedAt,
		Documents:     docs,
		ReviewActions: actions,
	}
}

func (s *driverService) ListDocuments(ctx context.Context, req *request.DocumentListRequest) (*response.PaginatedResponse[response.DriverDocumentsResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.DriverID != "" {
		one, err := s.GetDocuments(ctx, req.DriverID)
		if err != nil {
			return nil, err
		}
		return response.NewPaginatedResponse([]response.DriverDocumentsResponse{*one}, 1, req.Limit(), 1), nil
	}

	filter := repository.DriverFilter{}
	if req.KYCStatus != "" {
		status := entity.KYCStatus(req.KYCStatus)
		filter.KYCStatus = &status
	}

	drivers, err := s.repo.Driver.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list driver documents: %w", err)
	}

	total, err := s.repo.Driver.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}

	items := make([]response.DriverDocumentsResponse, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverDocuments(d))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

func (s *driverService) GetDocuments(ctx context.Context, driverID string) (*response.DriverDocumentsResponse, error) {
	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}
	resp := driverDocuments(driver)
	return &resp, nil
}

func (s *driverService) UploadDocument(ctx context.Context, driverID string, req *request.UploadDriverDocumentRequest) (*response.DriverDocumentsResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}

	docType := entity.DriverDocumentType(req.DocumentType)
	url, err := s.files.put(ctx, s.config.Storage.DriverDocumentBucket,
		objectKey(driver.ID.String(), string(docType), req.File.Name), req.File)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", docType, err)
	}

	replaced := driver.DocumentURL(docType)
	driver.SetDocumentURL(docType, &url)

	// a fresh document after a rejection goes back into the review queue
	if driver.KYCStatus == entity.KYCStatusRejected || driver.KYCStatus == entity.KYCStatusResubmissionRequested {
		driver.KYCStatus = entity.KYCStatusPending
	}

	driver.UpdatedAt = time.Now()
	if err := s.repo.Driver.Update(ctx, driver); err != nil {
		return nil, mapRepoError(err)
	}

	s.files.remove(ctx, s.config.Storage.DriverDocumentBucket, replaced)

	s.log.Info("Driver document uploaded",
		zap.String("driver_id", driver.ID.String()),
		zap.String("document_type", string(docType)))

	return s.GetDocuments(ctx, driver.ID.String())
}

func (s *driverService) ApproveKYC(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error) {
	return s.decide(ctx, driverID, entity.KYCStatusApproved, req, false)
}

func (s *driverService) RejectKYC(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error) {
	return s.decide(ctx, driverID, entity.KYCStatusRejected, req, true)
}

func (s *driverService) RequestResubmission(ctx context.Context, driverID string, req *request.KYCDecisionRequest) (*response.DriverDocumentsResponse, error) {
	return s.decide(ctx, driverID, entity.KYCStatusResubmissionRequested, req, true)
}

func (s *driverService) decide(ctx context.Context, driverID string, status entity.KYCStatus, req *request.KYCDecisionRequest, reasonRequired bool) (*response.DriverDocumentsResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if reasonRequired && isBlank(req.Reason) {
		return nil, newValidationError("reason", "A reason is required")
	}

	driver, err := s.load(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.KYCStatus != entity.KYCStatusPending {
		return nil, invalidState("KYC is %s, only pending reviews can be decided", driver.KYCStatus)
	}

	var remarks *string
	if !isBlank(req.Reason) {
		remarks = utils.StringPtr(*req.Reason)
	}

	if err := s.repo.Driver.UpdateKYC(ctx, driver.ID, status, remarks, actorFrom(ctx)); err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info("KYC decided",
		zap.String("driver_id", driver.ID.String()),
		zap.String("kyc_status", string(status)))

	return s.GetDocuments(ctx, driver.ID.String())
}
