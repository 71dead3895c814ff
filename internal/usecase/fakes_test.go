package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/maps"
	"fleet-admin/pkg/storage"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
)

// Fakes embed the repository interface so unused methods panic if a
// service starts calling them unexpectedly.

type fakeBookingRepo struct {
	repository.BookingRepository
	items   map[uuid.UUID]*entity.Booking
	finds   int
	updates int
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{items: map[uuid.UUID]*entity.Booking{}}
	for _, b := range bookings {
		r.items[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.finds++
	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking, expectedVersion *int) error {
	stored, ok := r.items[b.ID]
	if !ok {
		return fmt.Errorf("booking %s: %w", b.ID, repository.ErrNotFound)
	}
	if expectedVersion != nil && *expectedVersion != stored.Version {
		return fmt.Errorf("booking %s: %w", b.ID, repository.ErrVersionConflict)
	}
	r.updates++
	cp := *b
	cp.Version = stored.Version + 1
	r.items[b.ID] = &cp
	return nil
}

type fakeAuditRepo struct {
	repository.BookingAuditRepository
	entries []*entity.BookingAuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, e *entity.BookingAuditLog) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeAuditRepo) FindByBookingID(_ context.Context, id uuid.UUID) ([]*entity.BookingAuditLog, error) {
	var out []*entity.BookingAuditLog
	for _, e := range r.entries {
		if e.BookingID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	items map[uuid.UUID]*entity.Customer
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.items[id], nil
}

type fakeDriverRepo struct {
	repository.DriverRepository
	items     map[uuid.UUID]*entity.Driver
	updates   int
	createErr error
}

func newFakeDriverRepo(drivers ...*entity.Driver) *fakeDriverRepo {
	r := &fakeDriverRepo{items: map[uuid.UUID]*entity.Driver{}}
	for _, d := range drivers {
		r.items[d.ID] = d
	}
	return r
}

func (r *fakeDriverRepo) Create(_ context.Context, d *entity.Driver) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDriverRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Driver, error) {
	d, ok := r.items[id]
	if !ok || d.DeletedAt != nil {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDriverRepo) FindByPhone(_ context.Context, phone string) (*entity.Driver, error) {
	for _, d := range r.items {
		if d.Phone == phone && d.DeletedAt == nil {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDriverRepo) Update(_ context.Context, d *entity.Driver) error {
	if _, ok := r.items[d.ID]; !ok {
		return fmt.Errorf("driver %s: %w", d.ID, repository.ErrNotFound)
	}
	r.updates++
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDriverRepo) UpdateKYC(_ context.Context, id uuid.UUID, status entity.KYCStatus, remarks *string, reviewer *uuid.UUID) error {
	d, ok := r.items[id]
	if !ok {
		return fmt.Errorf("driver %s: %w", id, repository.ErrNotFound)
	}
	r.updates++
	now := time.Now()
	d.KYCStatus = status
	d.KYCRemarks = remarks
	d.KYCReviewedBy = reviewer
	d.KYCReviewedAt = &now
	return nil
}

func (r *fakeDriverRepo) Delete(_ context.Context, id uuid.UUID) error {
	d, ok := r.items[id]
	if !ok {
		return fmt.Errorf("driver %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	d.DeletedAt = &now
	return nil
}

type fakeVehicleRepo struct {
	repository.VehicleRepository
	items map[uuid.UUID]*entity.Vehicle
}

func newFakeVehicleRepo(vehicles ...*entity.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{items: map[uuid.UUID]*entity.Vehicle{}}
	for _, v := range vehicles {
		r.items[v.ID] = v
	}
	return r
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	v, ok := r.items[id]
	if !ok || v.DeletedAt != nil {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) FindByPlate(_ context.Context, plate string) (*entity.Vehicle, error) {
	for _, v := range r.items {
		if strings.EqualFold(v.PlateNumber, plate) && v.DeletedAt == nil {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *entity.Vehicle, expectedVersion *int) error {
	stored, ok := r.items[v.ID]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", v.ID, repository.ErrNotFound)
	}
	if expectedVersion != nil && *expectedVersion != stored.Version {
		return fmt.Errorf("vehicle %s: %w", v.ID, repository.ErrVersionConflict)
	}
	cp := *v
	cp.Version = stored.Version + 1
	r.items[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) UpdateStats(_ context.Context, id uuid.UUID, odometerKm float64, efficiency *float64) error {
	v, ok := r.items[id]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", id, repository.ErrNotFound)
	}
	v.OdometerKm = odometerKm
	v.FuelEfficiencyKmpl = efficiency
	return nil
}

type fakePricingRepo struct {
	repository.PricingRuleRepository
	rules []*entity.PricingRule
}

func (r *fakePricingRepo) FindActive(_ context.Context, st entity.ServiceType, vt entity.VehicleType) (*entity.PricingRule, error) {
	for _, rule := range r.rules {
		if rule.IsActive && rule.ServiceType == st && rule.VehicleType == vt {
			return rule, nil
		}
	}
	return nil, nil
}

func (r *fakePricingRepo) Create(_ context.Context, rule *entity.PricingRule) error {
	r.rules = append(r.rules, rule)
	return nil
}

func (r *fakePricingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PricingRule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			cp := *rule
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePricingRepo) Update(_ context.Context, rule *entity.PricingRule) error {
	for i, existing := range r.rules {
		if existing.ID == rule.ID {
			cp := *rule
			r.rules[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("pricing rule %s: %w", rule.ID.String(), repository.ErrNotFound)
}

func (r *fakePricingRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, rule := range r.rules {
		if rule.ID == id {
			rule.IsActive = false
			return nil
		}
	}
	return fmt.Errorf("pricing rule %s: %w", id.String(), repository.ErrNotFound)
}

type fakeZoneRepo struct {
	repository.ZonePricingRepository
	zones []*entity.ZonePricing
}

func (r *fakeZoneRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ZonePricing, error) {
	for _, z := range r.zones {
		if z.ID == id {
			cp := *z
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeZoneRepo) FindAll(_ context.Context, _ repository.PricingFilter) ([]*entity.ZonePricing, error) {
	return r.zones, nil
}

func (r *fakeZoneRepo) Update(_ context.Context, zone *entity.ZonePricing) error {
	for i, existing := range r.zones {
		if existing.ID == zone.ID {
			cp := *zone
			r.zones[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("zone pricing %s: %w", zone.ID.String(), repository.ErrNotFound)
}

func (r *fakeZoneRepo) FindActive(_ context.Context, st entity.ServiceType, vt entity.VehicleType, from, to string) (*entity.ZonePricing, error) {
	for _, z := range r.zones {
		if z.IsActive && z.ServiceType == st && z.VehicleType == vt &&
			strings.EqualFold(z.FromZone, from) && strings.EqualFold(z.ToZone, to) {
			return z, nil
		}
	}
	return nil, nil
}

type fakeOTPRepo struct {
	repository.OTPRepository
	codes []*entity.OTP
}

func (r *fakeOTPRepo) Create(_ context.Context, otp *entity.OTP) error {
	r.codes = append(r.codes, otp)
	return nil
}

func (r *fakeOTPRepo) FindValidOTP(_ context.Context, phone, code string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	for _, o := range r.codes {
		if o.Phone == phone && o.OTPCode == code && o.Purpose == purpose && !o.IsUsed && o.ExpiresAt.After(time.Now()) {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOTPRepo) MarkAsUsed(_ context.Context, id uuid.UUID) error {
	for _, o := range r.codes {
		if o.ID == id {
			o.IsUsed = true
		}
	}
	return nil
}

func (r *fakeOTPRepo) InvalidateForPhone(_ context.Context, phone string, purpose entity.OTPPurpose) error {
	for _, o := range r.codes {
		if o.Phone == phone && o.Purpose == purpose {
			o.IsUsed = true
		}
	}
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]string
	removed []string
	failOn  string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (s *fakeStorage) Upload(_ context.Context, bucket string, req *storage.UploadRequest) (*storage.UploadResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && strings.Contains(req.Key, s.failOn) {
		return nil, errors.New("bucket unavailable")
	}
	s.objects[bucket+"/"+req.Key] = req.ContentType
	return &storage.UploadResponse{Bucket: bucket, Key: req.Key, URL: s.PublicURL(bucket, req.Key)}, nil
}

func (s *fakeStorage) Remove(_ context.Context, bucket string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, bucket+"/"+k)
		s.removed = append(s.removed, bucket+"/"+k)
	}
	return nil
}

func (s *fakeStorage) PublicURL(bucket, key string) string {
	return "https://files.test/" + bucket + "/" + key
}

func (s *fakeStorage) KeyFromURL(bucket, url string) (string, bool) {
	prefix := "https://files.test/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

type fakeSMS struct {
	sent map[string]string
}

func (f *fakeSMS) Send(_ context.Context, to, body string) (string, error) {
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = body
	return "SM-test", nil
}

type fakeRoutes struct {
	err error
}

func (f *fakeRoutes) Route(_ context.Context, origin, destination maps.Location) (*maps.Route, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &maps.Route{
		DistanceMeters:  4200,
		DurationSeconds: 600,
		Polyline:        "abc",
		Points:          []maps.Location{origin, destination},
	}, nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "fleet-admin"},
		OTP: utils.OTPConfig{Length: 6, ExpiryMinutes: 10},
		Storage: utils.StorageConfig{
			ProfilePictureBucket:  "profiles",
			DriverDocumentBucket:  "driver-docs",
			VehicleDocumentBucket: "vehicle-docs",
		},
		Tracking: utils.TrackingConfig{PollInterval: time.Second, SnapshotTTL: time.Minute},
	}
}
