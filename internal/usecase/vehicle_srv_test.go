package usecase

import (
	"context"
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

type fakeVehicleDocumentRepo struct {
	repository.VehicleDocumentRepository
	docs []*entity.VehicleDocument
}

func (r *fakeVehicleDocumentRepo) FindExpiringBefore(_ context.Context, cutoff time.Time) ([]*entity.VehicleDocument, error) {
	var out []*entity.VehicleDocument
	for _, d := range r.docs {
		if d.ExpiryDate != nil && d.ExpiryDate.Before(cutoff) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeMaintenanceRepo struct {
	repository.VehicleMaintenanceRepository
	logs []*entity.VehicleMaintenanceLog
}

func (r *fakeMaintenanceRepo) FindDueBefore(_ context.Context, cutoff time.Time) ([]*entity.VehicleMaintenanceLog, error) {
	var out []*entity.VehicleMaintenanceLog
	for _, l := range r.logs {
		if l.NextServiceDate != nil && l.NextServiceDate.Before(cutoff) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	repository.VehicleAlertRepository
	alerts []*entity.VehicleAlert
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.VehicleAlert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *fakeAlertRepo) ExistsUnresolved(_ context.Context, vehicleID uuid.UUID, t entity.AlertType, ref uuid.UUID) (bool, error) {
	for _, a := range r.alerts {
		if a.VehicleID == vehicleID && a.AlertType == t && a.ReferenceID != nil && *a.ReferenceID == ref && !a.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

type fakePerformanceRepo struct {
	repository.VehiclePerformanceRepository
	samples []*entity.VehiclePerformance
}

func (r *fakePerformanceRepo) Create(_ context.Context, s *entity.VehiclePerformance) error {
	r.samples = append(r.samples, s)
	return nil
}

func (r *fakePerformanceRepo) FindByVehicleID(_ context.Context, id uuid.UUID) ([]*entity.VehiclePerformance, error) {
	var out []*entity.VehiclePerformance
	for _, s := range r.samples {
		if s.VehicleID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func sedan() *entity.Vehicle {
	return &entity.Vehicle{
		Base:        entity.NewBase(time.Now()),
		Make:        "Maruti",
		Model:       "Dzire",
		Year:        2021,
		PlateNumber: "KA01AB1234",
		VehicleType: entity.VehicleTypeSedan,
		Status:      entity.VehicleStatusActive,
		Capacity:    4,
		OdometerKm:  12000,
		Version:     1,
	}
}

func TestUpdateVehicleThenGetReturnsSavedValues(t *testing.T) {
	v := sedan()
	vehicles := newFakeVehicleRepo(v)
	repo := &repository.Repository{Vehicle: vehicles, Driver: newFakeDriverRepo()}
	svc := NewVehicleService(repo, newFakeStorage(), testConfig(), zap.NewNop())

	color, status, capacity, version := "White", "maintenance", 5, 1
	updated, err := svc.UpdateVehicle(context.Background(), v.ID.String(), &request.UpdateVehicleRequest{
		Color:    &color,
		Status:   &status,
		Capacity: &capacity,
		Version:  &version,
	})
	require.NoError(t, err)

	got, err := svc.GetVehicle(context.Background(), v.ID.String())
	require.NoError(t, err)

	assert.Equal(t, updated, got)
	require.NotNil(t, got.Color)
	assert.Equal(t, "White", *got.Color)
	assert.Equal(t, entity.VehicleStatusMaintenance, got.Status)
	assert.Equal(t, 5, got.Capacity)
	assert.Equal(t, 2, got.Version)

	t.Run("stale version", func(t *testing.T) {
		_, err := svc.UpdateVehicle(context.Background(), v.ID.String(), &request.UpdateVehicleRequest{
			Color:   &color,
			Version: &version,
		})
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestCreateVehicleRejectsDuplicatePlate(t *testing.T) {
	existing := sedan()
	repo := &repository.Repository{Vehicle: newFakeVehicleRepo(existing), Driver: newFakeDriverRepo()}
	svc := NewVehicleService(repo, newFakeStorage(), testConfig(), zap.NewNop())

	_, err := svc.CreateVehicle(context.Background(), &request.CreateVehicleRequest{
		Make:        "Hyundai",
		Model:       "Aura",
		Year:        2022,
		PlateNumber: " ka01ab1234 ",
		VehicleType: string(entity.VehicleTypeSedan),
		Capacity:    4,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestAssignVehicleDriver(t *testing.T) {
	v := sedan()
	d := driverWith(entity.KYCStatusApproved)
	repo := &repository.Repository{Vehicle: newFakeVehicleRepo(v), Driver: newFakeDriverRepo(d)}
	svc := NewVehicleService(repo, nil, testConfig(), zap.NewNop())

	id := d.ID.String()
	resp, err := svc.AssignDriver(context.Background(), v.ID.String(), &request.AssignVehicleDriverRequest{DriverID: &id})
	require.NoError(t, err)
	require.NotNil(t, resp.Driver)
	assert.Equal(t, d.FullName, resp.Driver.FullName)

	resp, err = svc.AssignDriver(context.Background(), v.ID.String(), &request.AssignVehicleDriverRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp.DriverID)
	assert.Nil(t, resp.Driver)
}

func TestSummarizePerformance(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := []*entity.VehiclePerformance{
		{BaseSimple: entity.NewBaseSimple(day), RecordedAt: day, OdometerKm: 1000, FuelConsumedLiters: 0, TripsCount: 0},
		{BaseSimple: entity.NewBaseSimple(day), RecordedAt: day.AddDate(0, 0, 7), OdometerKm: 1300, FuelConsumedLiters: 20, TripsCount: 14},
		{BaseSimple: entity.NewBaseSimple(day), RecordedAt: day.AddDate(0, 0, 14), OdometerKm: 1500, FuelConsumedLiters: 10, TripsCount: 9},
	}

	s := SummarizePerformance(samples)

	require.Len(t, s.Samples, 3)
	assert.Nil(t, s.Samples[0].DistanceKm)
	assert.Nil(t, s.Samples[0].FuelEconomyKmpl)
	assert.Equal(t, 300.0, *s.Samples[1].DistanceKm)
	assert.Equal(t, 15.0, *s.Samples[1].FuelEconomyKmpl)
	assert.Equal(t, 20.0, *s.Samples[2].FuelEconomyKmpl)
	assert.Equal(t, 500.0, s.TotalDistanceKm)
	assert.Equal(t, 30.0, s.TotalFuelLiters)
	assert.Equal(t, 23, s.TotalTrips)
	require.NotNil(t, s.AverageKmpl)
	assert.Equal(t, 16.67, *s.AverageKmpl)

	t.Run("no samples", func(t *testing.T) {
		empty := SummarizePerformance(nil)
		assert.Empty(t, empty.Samples)
		assert.Nil(t, empty.AverageKmpl)
	})
}

func TestAddPerformanceUpdatesVehicleStats(t *testing.T) {
	v := sedan()
	vehicles := newFakeVehicleRepo(v)
	perf := &fakePerformanceRepo{samples: []*entity.VehiclePerformance{{
		BaseSimple: entity.NewBaseSimple(time.Now()),
		VehicleID:  v.ID,
		RecordedAt: time.Now().AddDate(0, 0, -7),
		OdometerKm: 12000,
	}}}
	repo := &repository.Repository{Vehicle: vehicles, VehiclePerformance: perf}
	svc := NewVehicleService(repo, nil, testConfig(), zap.NewNop())

	summary, err := svc.AddPerformance(context.Background(), v.ID.String(), &request.CreatePerformanceRequest{
		OdometerKm:         12450,
		FuelConsumedLiters: 30,
		TripsCount:         20,
	})
	require.NoError(t, err)
	require.NotNil(t, summary.AverageKmpl)
	assert.Equal(t, 15.0, *summary.AverageKmpl)

	stored := vehicles.items[v.ID]
	assert.Equal(t, 12450.0, stored.OdometerKm)
	require.NotNil(t, stored.FuelEfficiencyKmpl)
	assert.Equal(t, 15.0, *stored.FuelEfficiencyKmpl)
}

func TestScanAlertsIsIdempotent(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	vehicleID := uuid.New()

	expired := now.AddDate(0, 0, -2)
	soon := now.AddDate(0, 0, 12)
	later := now.AddDate(0, 3, 0)
	due := now.AddDate(0, 0, 3)

	docs := &fakeVehicleDocumentRepo{docs: []*entity.VehicleDocument{
		{BaseNoDelete: entity.NewBaseNoDelete(now), VehicleID: vehicleID, DocumentType: entity.VehicleDocInsurance, ExpiryDate: &expired},
		{BaseNoDelete: entity.NewBaseNoDelete(now), VehicleID: vehicleID, DocumentType: entity.VehicleDocPollution, ExpiryDate: &soon},
		{BaseNoDelete: entity.NewBaseNoDelete(now), VehicleID: vehicleID, DocumentType: entity.VehicleDocPermit, ExpiryDate: &later},
	}}
	logs := &fakeMaintenanceRepo{logs: []*entity.VehicleMaintenanceLog{
		{BaseSimple: entity.NewBaseSimple(now), VehicleID: vehicleID, ServiceType: "oil change", NextServiceDate: &due},
	}}
	alerts := &fakeAlertRepo{}

	repo := &repository.Repository{VehicleDocument: docs, VehicleMaintenance: logs, VehicleAlert: alerts}
	svc := NewVehicleService(repo, nil, testConfig(), zap.NewNop()).(*vehicleService)
	svc.now = func() time.Time { return now }

	first, err := svc.ScanAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Created)

	priorities := map[entity.AlertType][]entity.AlertPriority{}
	for _, a := range alerts.alerts {
		priorities[a.AlertType] = append(priorities[a.AlertType], a.Priority)
	}
	assert.ElementsMatch(t, []entity.AlertPriority{entity.AlertPriorityCritical, entity.AlertPriorityHigh}, priorities[entity.AlertTypeDocumentExpiry])
	assert.Equal(t, []entity.AlertPriority{entity.AlertPriorityMedium}, priorities[entity.AlertTypeMaintenanceDue])

	second, err := svc.ScanAlerts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Len(t, alerts.alerts, 3)
}
