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
	"fleet-admin/pkg/storage"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maintenanceDueWindow is how far ahead the alert scan looks for services
const maintenanceDueWindow = 7 * 24 * time.Hour

type VehicleService interface {
	ListVehicles(ctx context.Context, req *request.VehicleListRequest) (*response.PaginatedResponse[response.VehicleResponse], error)
	GetVehicle(ctx context.Context, vehicleID string) (*response.VehicleResponse, error)
	CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.CreateVehicleResponse, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	AssignDriver(ctx context.Context, vehicleID string, req *request.AssignVehicleDriverRequest) (*response.VehicleResponse, error)
	DeleteVehicle(ctx context.Context, vehicleID string) error

	ListDocuments(ctx context.Context, vehicleID string) ([]response.VehicleDocumentResponse, error)
	AddDocument(ctx context.Context, vehicleID string, req *request.CreateVehicleDocumentRequest) (*response.VehicleDocumentResponse, error)
	VerifyDocument(ctx context.Context, vehicleID, documentID string, req *request.VerifyVehicleDocumentRequest) (*response.VehicleDocumentResponse, error)
	DeleteDocument(ctx context.Context, vehicleID, documentID string) error

	ListMaintenance(ctx context.Context, vehicleID string) (*response.MaintenanceHistoryResponse, error)
	AddMaintenance(ctx context.Context, vehicleID string, req *request.CreateMaintenanceRequest) (*response.MaintenanceLogResponse, error)
	DeleteMaintenance(ctx context.Context, vehicleID, logID string) error

	Performance(ctx context.Context, vehicleID string) (*response.PerformanceSummaryResponse, error)
	AddPerformance(ctx context.Context, vehicleID string, req *request.CreatePerformanceRequest) (*response.PerformanceSummaryResponse, error)

	ListAlerts(ctx context.Context, vehicleID string, unresolvedOnly bool) ([]response.VehicleAlertResponse, error)
	CreateAlert(ctx context.Context, vehicleID string, req *request.CreateAlertRequest) (*response.VehicleAlertResponse, error)
	ResolveAlert(ctx context.Context, vehicleID, alertID string) (*response.VehicleAlertResponse, error)
	ScanAlerts(ctx context.Context) (*response.AlertScanResponse, error)
}

type vehicleService struct {
	repo   *repository.Repository
	files  uploader
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewVehicleService(repo *repository.Repository, store storage.Provider, config *utils.Config, log *zap.Logger) VehicleService {
	log = log.With(zap.String("service", "vehicle"))
	return &vehicleService{
		repo:   repo,
		files:  uploader{store: store, log: log},
		config: config,
		log:    log,
		now:    time.Now,
	}
}

func (s *vehicleService) ListVehicles(ctx context.Context, req *request.VehicleListRequest) (*response.PaginatedResponse[response.VehicleResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.VehicleFilter{Unassigned: req.Unassigned, Search: strings.TrimSpace(req.Search)}
	if req.Status != "" {
		status := entity.VehicleStatus(req.Status)
		filter.Status = &status
	}
	if req.VehicleType != "" {
		vt := entity.VehicleType(req.VehicleType)
		filter.VehicleType = &vt
	}
	driverID, err := parseOptionalID("driver_id", &req.DriverID)
	if err != nil {
		return nil, err
	}
	filter.DriverID = driverID

	vehicles, err := s.repo.Vehicle.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	total, err := s.repo.Vehicle.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}

	items := make([]response.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, response.VehicleToResponse(v))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

func (s *vehicleService) loadVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, notFound("vehicle", id)
	}
	return vehicle, nil
}

func (s *vehicleService) load(ctx context.Context, rawID string) (*entity.Vehicle, error) {
	id, err := parseID("vehicle_id", rawID)
	if err != nil {
		return nil, err
	}
	return s.loadVehicle(ctx, id)
}

func (s *vehicleService) GetVehicle(ctx context.Context, vehicleID string) (*response.VehicleResponse, error) {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return s.withDriver(ctx, vehicle)
}

func (s *vehicleService) withDriver(ctx context.Context, vehicle *entity.Vehicle) (*response.VehicleResponse, error) {
	resp := response.VehicleToResponse(vehicle)
	if vehicle.DriverID != nil {
		driver, err := s.repo.Driver.FindByID(ctx, *vehicle.DriverID)
		if err != nil {
			return nil, fmt.Errorf("find driver: %w", err)
		}
		resp.Driver = response.DriverToSummary(driver)
	}
	return &resp, nil
}

func (s *vehicleService) ensureDriver(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	driver, err := s.repo.Driver.FindByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("find driver: %w", err)
	}
	if driver == nil {
		return notFound("driver", *id)
	}
	return nil
}

func (s *vehicleService) ensurePlateFree(ctx context.Context, plate string, self uuid.UUID) error {
	existing, err := s.repo.Vehicle.FindByPlate(ctx, plate)
	if err != nil {
		return fmt.Errorf("find vehicle by plate: %w", err)
	}
	if existing != nil && existing.ID != self {
		return fmt.Errorf("plate %s is already registered: %w", plate, ErrConflict)
	}
	return nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.CreateVehicleResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create vehicle validation failed", zap.Error(err))
		return nil, err
	}
	for docType := range req.Documents {
		if !entity.VehicleDocumentType(docType).Valid() {
			return nil, newValidationError("documents", fmt.Sprintf("Unknown document type %q", docType))
		}
	}

	driverID, err := parseOptionalID("driver_id", req.DriverID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDriver(ctx, driverID); err != nil {
		return nil, err
	}

	plate := strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	if err := s.ensurePlateFree(ctx, plate, uuid.Nil); err != nil {
		return nil, err
	}

	status := entity.VehicleStatusActive
	if req.Status != "" {
		status = entity.VehicleStatus(req.Status)
	}

	now := s.now()
	vehicle := &entity.Vehicle{
		Base:        entity.NewBase(now),
		Make:        strings.TrimSpace(req.Make),
		Model:       strings.TrimSpace(req.Model),
		Year:        req.Year,
		PlateNumber: plate,
		Color:       req.Color,
		VehicleType: entity.VehicleType(req.VehicleType),
		Status:      status,
		Capacity:    req.Capacity,
		DriverID:    driverID,
		Version:     1,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	warnings := []string{}
	for docType, file := range req.Documents {
		if file == nil {
			continue
		}
		if _, err := s.storeDocument(ctx, vehicle.ID, &request.CreateVehicleDocumentRequest{
			DocumentType: docType,
			File:         file,
		}); err != nil {
			s.log.Warn("Vehicle document upload failed", zap.Error(err),
				zap.String("vehicle_id", vehicle.ID.String()),
				zap.String("document_type", docType))
			warnings = append(warnings, fmt.Sprintf("%s was not uploaded: %v", docType, err))
		}
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("plate_number", plate))

	created, err := s.GetVehicle(ctx, vehicle.ID.String())
	if err != nil {
		return nil, err
	}
	return &response.CreateVehicleResponse{Vehicle: *created, Warnings: warnings}, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		vehicle.Make = strings.TrimSpace(*req.Make)
	}
	if req.Model != nil {
		vehicle.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.PlateNumber != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.PlateNumber))
		if err := s.ensurePlateFree(ctx, plate, vehicle.ID); err != nil {
			return nil, err
		}
		vehicle.PlateNumber = plate
	}
	if req.Color != nil {
		vehicle.Color = req.Color
	}
	if req.VehicleType != nil {
		vehicle.VehicleType = entity.VehicleType(*req.VehicleType)
	}
	if req.Status != nil {
		vehicle.Status = entity.VehicleStatus(*req.Status)
	}
	if req.Capacity != nil {
		vehicle.Capacity = *req.Capacity
	}

	if err := s.save(ctx, vehicle, req.Version); err != nil {
		return nil, err
	}

	s.log.Info("Vehicle updated", zap.String("vehicle_id", vehicle.ID.String()))
	return s.GetVehicle(ctx, vehicle.ID.String())
}

func (s *vehicleService) AssignDriver(ctx context.Context, vehicleID string, req *request.AssignVehicleDriverRequest) (*response.VehicleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	driverID, err := parseOptionalID("driver_id", req.DriverID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDriver(ctx, driverID); err != nil {
		return nil, err
	}

	vehicle.DriverID = driverID
	if err := s.save(ctx, vehicle, req.Version); err != nil {
		return nil, err
	}

	if driverID == nil {
		s.log.Info("Vehicle unassigned", zap.String("vehicle_id", vehicle.ID.String()))
	} else {
		s.log.Info("Vehicle assigned",
			zap.String("vehicle_id", vehicle.ID.String()),
			zap.String("driver_id", driverID.String()))
	}

	return s.GetVehicle(ctx, vehicle.ID.String())
}

func (s *vehicleService) save(ctx context.Context, vehicle *entity.Vehicle, expectedVersion *int) error {
	vehicle.UpdatedAt = s.now()
	if err := s.repo.Vehicle.Update(ctx, vehicle, expectedVersion); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return err
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicle.ID); err != nil {
		return mapRepoError(err)
	}

	s.log.Info("Vehicle deleted", zap.String("vehicle_id", vehicle.ID.String()))
	return nil
}

func (s *vehicleService) documentResponse(d *entity.VehicleDocument) response.VehicleDocumentResponse {
	return response.VehicleDocumentToResponse(d, string(DocumentExpiryStatus(d.ExpiryDate, s.now())))
}

func (s *vehicleService) ListDocuments(ctx context.Context, vehicleID string) ([]response.VehicleDocumentResponse, error) {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.VehicleDocument.FindByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle documents: %w", err)
	}

	items := make([]response.VehicleDocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, s.documentResponse(d))
	}
	return items, nil
}

func (s *vehicleService) AddDocument(ctx context.Context, vehicleID string, req *request.CreateVehicleDocumentRequest) (*response.VehicleDocumentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	doc, err := s.storeDocument(ctx, vehicle.ID, req)
	if err != nil {
		return nil, err
	}

	resp := s.documentResponse(doc)
	return &resp, nil
}

func (s *vehicleService) storeDocument(ctx context.Context, vehicleID uuid.UUID, req *request.CreateVehicleDocumentRequest) (*entity.VehicleDocument, error) {
	issue, err := parseOptionalDate("issue_date", req.IssueDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if issue != nil && expiry != nil && expiry.Before(*issue) {
		return nil, newValidationError("expiry_date", "Must not be before the issue date")
	}

	url, err := s.files.put(ctx, s.config.Storage.VehicleDocumentBucket,
		objectKey(vehicleID.String(), req.DocumentType, req.File.Name), req.File)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", req.DocumentType, err)
	}

	doc := &entity.VehicleDocument{
		BaseNoDelete:   entity.NewBaseNoDelete(s.now()),
		VehicleID:      vehicleID,
		DocumentType:   entity.VehicleDocumentType(req.DocumentType),
		DocumentNumber: req.DocumentNumber,
		FileURL:        url,
		IssueDate:      issue,
		ExpiryDate:     expiry,
		Notes:          req.Notes,
	}

	if err := s.repo.VehicleDocument.Create(ctx, doc); err != nil {
		s.files.remove(ctx, s.config.Storage.VehicleDocumentBucket, &url)
		return nil, fmt.Errorf("create vehicle document: %w", err)
	}

	return doc, nil
}

func (s *vehicleService) loadDocument(ctx context.Context, vehicleID, documentID string) (*entity.VehicleDocument, error) {
	vID, err := parseID("vehicle_id", vehicleID)
	if err != nil {
		return nil, err
	}
	dID, err := parseID("document_id", documentID)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.VehicleDocument.FindByID(ctx, dID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle document: %w", err)
	}
	if doc == nil || doc.VehicleID != vID {
		return nil, notFound("vehicle document", dID)
	}
	return doc, nil
}

func (s *vehicleService) VerifyDocument(ctx context.Context, vehicleID, documentID string, req *request.VerifyVehicleDocumentRequest) (*response.VehicleDocumentResponse, error) {
	doc, err := s.loadDocument(ctx, vehicleID, documentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc.IsVerified = req.IsVerified
	doc.VerifiedAt = nil
	if req.IsVerified {
		doc.VerifiedAt = &now
	}
	doc.UpdatedAt = now

	if err := s.repo.VehicleDocument.Update(ctx, doc); err != nil {
		return nil, mapRepoError(err)
	}

	updated, err := s.loadDocument(ctx, vehicleID, documentID)
	if err != nil {
		return nil, err
	}
	resp := s.documentResponse(updated)
	return &resp, nil
}

func (s *vehicleService) DeleteDocument(ctx context.Context, vehicleID, documentID string) error {
	doc, err := s.loadDocument(ctx, vehicleID, documentID)
	if err != nil {
		return err
	}

	if err := s.repo.VehicleDocument.Delete(ctx, doc.ID); err != nil {
		return mapRepoError(err)
	}

	s.files.remove(ctx, s.config.Storage.VehicleDocumentBucket, &doc.FileURL)
	return nil
}

func (s *vehicleService) ListMaintenance(ctx context.Context, vehicleID string) (*response.MaintenanceHistoryResponse, error) {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.VehicleMaintenance.FindByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}

	resp := &response.MaintenanceHistoryResponse{Logs: make([]response.MaintenanceLogResponse, 0, len(logs))}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, response.MaintenanceLogToResponse(l))
		resp.TotalCost += l.Cost
	}
	resp.TotalCost = utils.Round2(resp.TotalCost)

	return resp, nil
}

func (s *vehicleService) AddMaintenance(ctx context.Context, vehicleID string, req *request.CreateMaintenanceRequest) (*response.MaintenanceLogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	serviceDate, err := parseOptionalDate("service_date", &req.ServiceDate)
	if err != nil {
		return nil, err
	}
	nextDate, err := parseOptionalDate("next_service_date", req.NextServiceDate)
	if err != nil {
		return nil, err
	}
	if nextDate != nil && nextDate.Before(*serviceDate) {
		return nil, newValidationError("next_service_date", "Must not be before the service date")
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	entry := &entity.VehicleMaintenanceLog{
		BaseSimple:            entity.NewBaseSimple(s.now()),
		VehicleID:             vehicle.ID,
		ServiceType:           strings.TrimSpace(req.ServiceType),
		Description:           req.Description,
		Cost:                  utils.Round2(req.Cost),
		OdometerKm:            req.OdometerKm,
		ServiceDate:           *serviceDate,
		NextServiceDate:       nextDate,
		NextServiceOdometerKm: req.NextServiceOdometerKm,
		ServiceProvider:       req.ServiceProvider,
	}

	if err := s.repo.VehicleMaintenance.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create maintenance log: %w", err)
	}

	if req.OdometerKm > vehicle.OdometerKm {
		if err := s.repo.Vehicle.UpdateStats(ctx, vehicle.ID, req.OdometerKm, vehicle.FuelEfficiencyKmpl); err != nil {
			s.log.Warn("Failed to update odometer", zap.Error(err), zap.String("vehicle_id", vehicle.ID.String()))
		}
	}

	resp := response.MaintenanceLogToResponse(entry)
	return &resp, nil
}

func (s *vehicleService) DeleteMaintenance(ctx context.Context, vehicleID, logID string) error {
	vID, err := parseID("vehicle_id", vehicleID)
	if err != nil {
		return err
	}
	lID, err := parseID("log_id", logID)
	if err != nil {
		return err
	}

	entry, err := s.repo.VehicleMaintenance.FindByID(ctx, lID)
	if err != nil {
		return fmt.Errorf("find maintenance log: %w", err)
	}
	if entry == nil || entry.VehicleID != vID {
		return notFound("maintenance log", lID)
	}

	if err := s.repo.VehicleMaintenance.Delete(ctx, lID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// SummarizePerformance derives per-interval distance and fuel economy from
// samples ordered oldest first. An interval counts only when the odometer
// did not go backwards; economy needs fuel consumed.
func SummarizePerformance(samples []*entity.VehiclePerformance) response.PerformanceSummaryResponse {
	summary := response.PerformanceSummaryResponse{
		Samples: make([]response.PerformanceSampleResponse, 0, len(samples)),
	}

	var economyKm, economyFuel float64
	for i, sm := range samples {
		item := response.PerformanceSampleResponse{
			ID:                 sm.ID.String(),
			RecordedAt:         sm.RecordedAt,
			OdometerKm:         sm.OdometerKm,
			FuelConsumedLiters: sm.FuelConsumedLiters,
			TripsCount:         sm.TripsCount,
			Notes:              sm.Notes,
		}
		summary.TotalTrips += sm.TripsCount
		summary.TotalFuelLiters += sm.FuelConsumedLiters

		if i > 0 {
			if distance := sm.OdometerKm - samples[i-1].OdometerKm; distance >= 0 {
				d := utils.Round2(distance)
				item.DistanceKm = &d
				summary.TotalDistanceKm += distance
				if sm.FuelConsumedLiters > 0 {
					kmpl := utils.Round2(distance / sm.FuelConsumedLiters)
					item.FuelEconomyKmpl = &kmpl
					economyKm += distance
					economyFuel += sm.FuelConsumedLiters
				}
			}
		}
		summary.Samples = append(summary.Samples, item)
	}

	summary.TotalDistanceKm = utils.Round2(summary.TotalDistanceKm)
	summary.TotalFuelLiters = utils.Round2(summary.TotalFuelLiters)
	if economyFuel > 0 {
		avg := utils.Round2(economyKm / economyFuel)
		summary.AverageKmpl = &avg
	}

	return summary
}

func (s *vehicleService) Performance(ctx context.Context, vehicleID string) (*response.PerformanceSummaryResponse, error) {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	samples, err := s.repo.VehiclePerformance.FindByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}

	summary := SummarizePerformance(samples)
	return &summary, nil
}

func (s *vehicleService) AddPerformance(ctx context.Context, vehicleID string, req *request.CreatePerformanceRequest) (*response.PerformanceSummaryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	recordedAt := s.now()
	if req.RecordedAt != nil {
		t, err := parseOptionalDate("recorded_at", req.RecordedAt)
		if err != nil {
			return nil, err
		}
		if t != nil {
			recordedAt = *t
		}
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	sample := &entity.VehiclePerformance{
		BaseSimple:         entity.NewBaseSimple(s.now()),
		VehicleID:          vehicle.ID,
		RecordedAt:         recordedAt,
		OdometerKm:         req.OdometerKm,
		FuelConsumedLiters: req.FuelConsumedLiters,
		TripsCount:         req.TripsCount,
		Notes:              req.Notes,
	}
	if err := s.repo.VehiclePerformance.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("create performance sample: %w", err)
	}

	samples, err := s.repo.VehiclePerformance.FindByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}
	summary := SummarizePerformance(samples)

	odometer := vehicle.OdometerKm
	if req.OdometerKm > odometer {
		odometer = req.OdometerKm
	}
	efficiency := vehicle.FuelEfficiencyKmpl
	if summary.AverageKmpl != nil {
		efficiency = summary.AverageKmpl
	}
	if err := s.repo.Vehicle.UpdateStats(ctx, vehicle.ID, odometer, efficiency); err != nil {
		s.log.Warn("Failed to update vehicle stats", zap.Error(err), zap.String("vehicle_id", vehicle.ID.String()))
	}

	return &summary, nil
}

func (s *vehicleService) ListAlerts(ctx context.Context, vehicleID string, unresolvedOnly bool) ([]response.VehicleAlertResponse, error) {
	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.repo.VehicleAlert.FindByVehicleID(ctx, vehicle.ID, unresolvedOnly)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	items := make([]response.VehicleAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, response.VehicleAlertToResponse(a))
	}
	return items, nil
}

func (s *vehicleService) CreateAlert(ctx context.Context, vehicleID string, req *request.CreateAlertRequest) (*response.VehicleAlertResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.load(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	alert := &entity.VehicleAlert{
		BaseNoDelete: entity.NewBaseNoDelete(s.now()),
		VehicleID:    vehicle.ID,
		AlertType:    entity.AlertType(req.AlertType),
		Priority:     entity.AlertPriority(req.Priority),
		Title:        strings.TrimSpace(req.Title),
		Message:      req.Message,
		DueDate:      dueDate,
	}
	if err := s.repo.VehicleAlert.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	resp := response.VehicleAlertToResponse(alert)
	return &resp, nil
}

func (s *vehicleService) ResolveAlert(ctx context.Context, vehicleID, alertID string) (*response.VehicleAlertResponse, error) {
	vID, err := parseID("vehicle_id", vehicleID)
	if err != nil {
		return nil, err
	}
	aID, err := parseID("alert_id", alertID)
	if err != nil {
		return nil, err
	}

	alert, err := s.repo.VehicleAlert.FindByID(ctx, aID)
	if err != nil {
		return nil, fmt.Errorf("find alert: %w", err)
	}
	if alert == nil || alert.VehicleID != vID {
		return nil, notFound("alert", aID)
	}
	if alert.IsResolved {
		return nil, invalidState("alert is already resolved")
	}

	if err := s.repo.VehicleAlert.Resolve(ctx, aID, actorFrom(ctx)); err != nil {
		return nil, mapRepoError(err)
	}

	resolved, err := s.repo.VehicleAlert.FindByID(ctx, aID)
	if err != nil {
		return nil, fmt.Errorf("reload alert: %w", err)
	}
	if resolved == nil {
		return nil, notFound("alert", aID)
	}
	resp := response.VehicleAlertToResponse(resolved)
	return &resp, nil
}

// ScanAlerts raises alerts for documents expiring within the expiry window
// and maintenance due within a week, fleet wide. An open alert for the same
// document or log suppresses a duplicate.
func (s *vehicleService) ScanAlerts(ctx context.Context) (*response.AlertScanResponse, error) {
	now := s.now()
	result := &response.AlertScanResponse{Alerts: []response.VehicleAlertResponse{}}

	docs, err := s.repo.VehicleDocument.FindExpiringBefore(ctx, now.Add(expiringSoonWindow))
	if err != nil {
		return nil, fmt.Errorf("find expiring documents: %w", err)
	}
	for _, d := range docs {
		priority := entity.AlertPriorityHigh
		title := fmt.Sprintf("%s expires on %s", d.DocumentType, d.ExpiryDate.Format("2006-01-02"))
		if DocumentExpiryStatus(d.ExpiryDate, now) == ExpiryExpired {
			priority = entity.AlertPriorityCritical
			title = fmt.Sprintf("%s expired on %s", d.DocumentType, d.ExpiryDate.Format("2006-01-02"))
		}
		created, err := s.raise(ctx, d.VehicleID, entity.AlertTypeDocumentExpiry, priority, title, d.ExpiryDate, d.ID)
		if err != nil {
			return nil, err
		}
		if created != nil {
			result.Alerts = append(result.Alerts, response.VehicleAlertToResponse(created))
		}
	}

	logs, err := s.repo.VehicleMaintenance.FindDueBefore(ctx, now.Add(maintenanceDueWindow))
	if err != nil {
		return nil, fmt.Errorf("find due maintenance: %w", err)
	}
	for _, l := range logs {
		priority := entity.AlertPriorityMedium
		title := fmt.Sprintf("%s due on %s", l.ServiceType, l.NextServiceDate.Format("2006-01-02"))
		if l.NextServiceDate.Before(now) {
			priority = entity.AlertPriorityHigh
			title = fmt.Sprintf("%s overdue since %s", l.ServiceType, l.NextServiceDate.Format("2006-01-02"))
		}
		created, err := s.raise(ctx, l.VehicleID, entity.AlertTypeMaintenanceDue, priority, title, l.NextServiceDate, l.ID)
		if err != nil {
			return nil, err
		}
		if created != nil {
			result.Alerts = append(result.Alerts, response.VehicleAlertToResponse(created))
		}
	}

	result.Created = len(result.Alerts)
	s.log.Info("Alert scan finished",
		zap.Int("documents", len(docs)),
		zap.Int("maintenance", len(logs)),
		zap.Int("created", result.Created))

	return result, nil
}

func (s *vehicleService) raise(ctx context.Context, vehicleID uuid.UUID, alertType entity.AlertType, priority entity.AlertPriority, title string, due *time.Time, ref uuid.UUID) (*entity.VehicleAlert, error) {
	exists, err := s.repo.VehicleAlert.ExistsUnresolved(ctx, vehicleID, alertType, ref)
	if err != nil {
		return nil, fmt.Errorf("check existing alert: %w", err)
	}
	if exists {
		return nil, nil
	}

	alert := &entity.VehicleAlert{
		BaseNoDelete: entity.NewBaseNoDelete(s.now()),
		VehicleID:    vehicleID,
		AlertType:    alertType,
		Priority:     priority,
		Title:        title,
		DueDate:      due,
		ReferenceID:  &ref,
	}
	if err := s.repo.VehicleAlert.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return alert, nil
}
