package usecase

import (
	"context"
	"testing"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc      BookingService
	bookings *fakeBookingRepo
	audit    *fakeAuditRepo
	drivers  *fakeDriverRepo
	customer *entity.Customer
}

func newBookingFixture(t *testing.T, bookings ...*entity.Booking) *bookingFixture {
	t.Helper()

	customer := &entity.Customer{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		FullName:     "Asha Rao",
		Phone:        "+919800000001",
	}
	rule := cityRule()
	rule.IsActive = true

	f := &bookingFixture{
		bookings: newFakeBookingRepo(bookings...),
		audit:    &fakeAuditRepo{},
		drivers:  newFakeDriverRepo(),
		customer: customer,
	}
	repo := &repository.Repository{
		Booking:      f.bookings,
		BookingAudit: f.audit,
		Customer:     &fakeCustomerRepo{items: map[uuid.UUID]*entity.Customer{customer.ID: customer}},
		Driver:       f.drivers,
		Vehicle:      newFakeVehicleRepo(),
		PricingRule:  &fakePricingRepo{rules: []*entity.PricingRule{rule}},
		ZonePricing:  &fakeZoneRepo{},
	}
	f.svc = NewBookingService(repo, zap.NewNop())
	return f
}

func bookingWith(status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		BaseNoDelete:  entity.NewBaseNoDelete(time.Now()),
		BookingNumber: "BK-TEST",
		CustomerID:    uuid.New(),
		ServiceType:   entity.ServiceTypeCityRide,
		VehicleType:   entity.VehicleTypeSedan,
		FareAmount:    180,
		PaymentStatus: entity.PaymentStatusPending,
		Status:        status,
		Version:       1,
	}
}

func TestChangeStatusToSameStatusWritesNothing(t *testing.T) {
	b := bookingWith(entity.BookingStatusAccepted)
	f := newBookingFixture(t, b)

	_, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusAccepted),
	})

	require.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, f.bookings.updates)
	assert.Empty(t, f.audit.entries)
}

func TestChangeStatus(t *testing.T) {
	t.Run("disallowed transition", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusCompleted)
		f := newBookingFixture(t, b)

		_, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
			Status: string(entity.BookingStatusPending),
		})
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("entering started sets start time only", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusAccepted)
		f := newBookingFixture(t, b)
		adminID := uuid.New()
		ctx := utils.SetUserContext(context.Background(), adminID)

		resp, err := f.svc.ChangeStatus(ctx, b.ID.String(), &request.UpdateBookingStatusRequest{
			Status: string(entity.BookingStatusStarted),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusStarted, resp.Status)
		assert.NotNil(t, resp.StartTime)
		assert.Nil(t, resp.EndTime)
		assert.Equal(t, 2, resp.Version)

		require.Len(t, f.audit.entries, 1)
		entry := f.audit.entries[0]
		assert.Equal(t, entity.AuditActionStatusChanged, entry.Action)
		assert.Equal(t, entity.BookingStatusAccepted, *entry.FromStatus)
		assert.Equal(t, entity.BookingStatusStarted, *entry.ToStatus)
		require.NotNil(t, entry.ActorID)
		assert.Equal(t, adminID, *entry.ActorID)
	})

	t.Run("entering completed sets end time", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusStarted)
		f := newBookingFixture(t, b)

		resp, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
			Status: string(entity.BookingStatusCompleted),
		})
		require.NoError(t, err)
		assert.NotNil(t, resp.EndTime)
	})

	t.Run("cancelling needs a reason", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)
		blank := "   "

		_, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
			Status: string(entity.BookingStatusCancelled),
			Reason: &blank,
		})
		require.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)
		stale := 3

		_, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
			Status:  string(entity.BookingStatusNoDriver),
			Version: &stale,
		})
		require.ErrorIs(t, err, ErrConflict)
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.ChangeStatus(context.Background(), uuid.NewString(), &request.UpdateBookingStatusRequest{
			Status: string(entity.BookingStatusAccepted),
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateFareRejectsBadInputBeforeAnyWrite(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "NaN", "Inf", "  "} {
		t.Run(raw, func(t *testing.T) {
			b := bookingWith(entity.BookingStatusPending)
			f := newBookingFixture(t, b)

			_, err := f.svc.UpdateFare(context.Background(), b.ID.String(), &request.UpdateFareRequest{FareAmount: raw})

			require.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, f.bookings.finds)
			assert.Zero(t, f.bookings.updates)
		})
	}
}

func TestUpdateFare(t *testing.T) {
	b := bookingWith(entity.BookingStatusAccepted)
	f := newBookingFixture(t, b)

	resp, err := f.svc.UpdateFare(context.Background(), b.ID.String(), &request.UpdateFareRequest{FareAmount: "245.556"})
	require.NoError(t, err)
	assert.Equal(t, 245.56, resp.FareAmount)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, 180.0, f.audit.entries[0].Details["from"])
	assert.Equal(t, 245.56, f.audit.entries[0].Details["to"])

	t.Run("locked once completed", func(t *testing.T) {
		done := bookingWith(entity.BookingStatusCompleted)
		f := newBookingFixture(t, done)
		_, err := f.svc.UpdateFare(context.Background(), done.ID.String(), &request.UpdateFareRequest{FareAmount: "100"})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("whitespace reason is rejected", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)

		_, err := f.svc.CancelBooking(context.Background(), b.ID.String(), &request.CancelBookingRequest{Reason: " \t "})
		require.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.bookings.finds)
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("reason is trimmed and stored", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusAccepted)
		f := newBookingFixture(t, b)

		resp, err := f.svc.CancelBooking(context.Background(), b.ID.String(), &request.CancelBookingRequest{Reason: "  customer no-show "})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "customer no-show", *resp.CancellationReason)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusCompleted)
		f := newBookingFixture(t, b)

		_, err := f.svc.CancelBooking(context.Background(), b.ID.String(), &request.CancelBookingRequest{Reason: "late"})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestUpdatePaymentStatusSameValueIsNoop(t *testing.T) {
	b := bookingWith(entity.BookingStatusCompleted)
	f := newBookingFixture(t, b)

	resp, err := f.svc.UpdatePaymentStatus(context.Background(), b.ID.String(), &request.UpdatePaymentStatusRequest{
		PaymentStatus: string(entity.PaymentStatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Zero(t, f.bookings.updates)
	assert.Empty(t, f.audit.entries)
}

func TestAssignBooking(t *testing.T) {
	driver := &entity.Driver{Base: entity.NewBase(time.Now()), FullName: "Ravi", Phone: "+919800000002"}

	t.Run("needs a driver or vehicle", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)

		_, err := f.svc.AssignBooking(context.Background(), b.ID.String(), &request.AssignBookingRequest{})
		require.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("driver moves pending to accepted", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)
		f.drivers.items[driver.ID] = driver
		id := driver.ID.String()

		resp, err := f.svc.AssignBooking(context.Background(), b.ID.String(), &request.AssignBookingRequest{DriverID: &id})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusAccepted, resp.Status)
		require.NotNil(t, resp.DriverID)
		assert.Equal(t, id, *resp.DriverID)
	})

	t.Run("unknown driver", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusPending)
		f := newBookingFixture(t, b)
		id := uuid.NewString()

		_, err := f.svc.AssignBooking(context.Background(), b.ID.String(), &request.AssignBookingRequest{DriverID: &id})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("started booking cannot be reassigned", func(t *testing.T) {
		b := bookingWith(entity.BookingStatusStarted)
		f := newBookingFixture(t, b)
		f.drivers.items[driver.ID] = driver
		id := driver.ID.String()

		_, err := f.svc.AssignBooking(context.Background(), b.ID.String(), &request.AssignBookingRequest{DriverID: &id})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCreateBooking(t *testing.T) {
	distance, duration := 10.0, 30.0
	newRequest := func(customerID string) *request.CreateBookingRequest {
		return &request.CreateBookingRequest{
			CustomerID:     customerID,
			ServiceType:    string(entity.ServiceTypeCityRide),
			VehicleType:    string(entity.VehicleTypeSedan),
			PickupAddress:  "MG Road",
			PickupLat:      12.9756,
			PickupLng:      77.6050,
			DropoffAddress: "Indiranagar",
			DropoffLat:     12.9784,
			DropoffLng:     77.6408,
			DistanceKm:     &distance,
			DurationMin:    &duration,
			PaymentMethod:  "cash",
		}
	}

	t.Run("priced by the active rule", func(t *testing.T) {
		f := newBookingFixture(t)

		resp, err := f.svc.CreateBooking(context.Background(), newRequest(f.customer.ID.String()))
		require.NoError(t, err)
		assert.Equal(t, 210.0, resp.FareAmount)
		assert.Equal(t, entity.BookingStatusPending, resp.Status)
		assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
		assert.Equal(t, 1, resp.Version)
		assert.NotEmpty(t, resp.BookingNumber)

		require.Len(t, f.audit.entries, 1)
		assert.Equal(t, entity.AuditActionCreated, f.audit.entries[0].Action)
	})

	t.Run("no active rule", func(t *testing.T) {
		f := newBookingFixture(t)
		req := newRequest(f.customer.ID.String())
		req.VehicleType = string(entity.VehicleTypeLuxury)

		_, err := f.svc.CreateBooking(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, f.bookings.items)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.CreateBooking(context.Background(), newRequest(uuid.NewString()))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetBookingDetail(t *testing.T) {
	f := newBookingFixture(t)
	b := bookingWith(entity.BookingStatusPending)
	b.CustomerID = f.customer.ID
	f.bookings.items[b.ID] = b

	_, err := f.svc.ChangeStatus(context.Background(), b.ID.String(), &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusNoDriver),
	})
	require.NoError(t, err)

	detail, err := f.svc.GetBooking(context.Background(), b.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Asha Rao", detail.Customer.FullName)
	assert.Nil(t, detail.Driver)
	assert.Len(t, detail.AuditTrail, 1)
	assert.ElementsMatch(t,
		[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusCancelled},
		detail.AllowedTransitions)
}
