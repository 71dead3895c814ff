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
	"fleet-admin/pkg/maps"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	AssignBooking(ctx context.Context, bookingID string, req *request.AssignBookingRequest) (*response.BookingResponse, error)
	ChangeStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	UpdateFare(ctx context.Context, bookingID string, req *request.UpdateFareRequest) (*response.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{Search: strings.TrimSpace(req.Search)}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.ServiceType != "" {
		st := entity.ServiceType(req.ServiceType)
		filter.ServiceType = &st
	}

	var err error
	if filter.DriverID, err = parseOptionalID("driver_id", &req.DriverID); err != nil {
		return nil, err
	}
	if filter.CustomerID, err = parseOptionalID("customer_id", &req.CustomerID); err != nil {
		return nil, err
	}
	if filter.From, err = parseOptionalDate("from", &req.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseOptionalDate("to", &req.To); err != nil {
		return nil, err
	}
	if filter.To != nil {
		// the range is inclusive of the whole end day
		end := filter.To.AddDate(0, 0, 1)
		filter.To = &end
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

func (s *bookingService) load(ctx context.Context, rawID string) (*entity.Booking, error) {
	id, err := parseID("booking_id", rawID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking", id)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse:    response.BookingToResponse(booking),
		AuditTrail:         []response.AuditLogResponse{},
		AllowedTransitions: AllowedTransitions(booking.Status),
	}

	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	detail.Customer = response.CustomerToResponse(customer)

	if booking.DriverID != nil {
		driver, err := s.repo.Driver.FindByID(ctx, *booking.DriverID)
		if err != nil {
			return nil, fmt.Errorf("find driver: %w", err)
		}
		detail.Driver = response.DriverToSummary(driver)
	}

	if booking.VehicleID != nil {
		vehicle, err := s.repo.Vehicle.FindByID(ctx, *booking.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("find vehicle: %w", err)
		}
		detail.Vehicle = response.VehicleToSummary(vehicle)
	}

	entries, err := s.repo.BookingAudit.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}
	for _, e := range entries {
		detail.AuditTrail = append(detail.AuditTrail, response.AuditLogToResponse(e))
	}

	return detail, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	customerID, err := parseID("customer_id", req.CustomerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, notFound("customer", customerID)
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, newValidationError("scheduled_at", "Must be an RFC 3339 timestamp")
		}
		scheduledAt = &t
	}

	pickup := maps.Location{Latitude: req.PickupLat, Longitude: req.PickupLng}
	dropoff := maps.Location{Latitude: req.DropoffLat, Longitude: req.DropoffLng}
	estimate := maps.StraightLine(pickup, dropoff)

	distanceKm := utils.Round2(estimate.DistanceMeters / 1000)
	if req.DistanceKm != nil {
		distanceKm = *req.DistanceKm
	}
	durationMin := utils.Round2(float64(estimate.DurationSeconds) / 60)
	if req.DurationMin != nil {
		durationMin = *req.DurationMin
	}

	serviceType := entity.ServiceType(req.ServiceType)
	vehicleType := entity.VehicleType(req.VehicleType)

	quote, err := quoteTrip(ctx, s.repo, serviceType, vehicleType, req.FromZone, req.ToZone, FareInput{
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
	})
	if err != nil {
		return nil, err
	}
	fare := quote.breakdown

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete:   entity.NewBaseNoDelete(now),
		BookingNumber:  utils.GenerateBookingNumber(),
		CustomerID:     customer.ID,
		ServiceType:    serviceType,
		VehicleType:    vehicleType,
		PickupAddress:  strings.TrimSpace(req.PickupAddress),
		PickupLat:      req.PickupLat,
		PickupLng:      req.PickupLng,
		DropoffAddress: strings.TrimSpace(req.DropoffAddress),
		DropoffLat:     req.DropoffLat,
		DropoffLng:     req.DropoffLng,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		FareAmount:     fare.Total,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  entity.PaymentStatusPending,
		Status:         entity.BookingStatusPending,
		ScheduledAt:    scheduledAt,
		StopCount:      req.StopCount,
		Notes:          req.Notes,
		Version:        1,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	to := booking.Status
	s.audit(ctx, booking.ID, entity.AuditActionCreated, nil, &to, map[string]any{
		"fare_amount": booking.FareAmount,
		"zone_fare":   fare.ZoneFare,
	})

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.Float64("fare", booking.FareAmount))

	return s.reread(ctx, booking.ID)
}

func (s *bookingService) AssignBooking(ctx context.Context, bookingID string, req *request.AssignBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if isBlank(req.DriverID) && isBlank(req.VehicleID) {
		return nil, &ValidationError{Fields: map[string]string{
			"driver_id":  "Select a driver or a vehicle",
			"vehicle_id": "Select a driver or a vehicle",
		}}
	}

	driverID, err := parseOptionalID("driver_id", req.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := parseOptionalID("vehicle_id", req.VehicleID)
	if err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanAssign(booking.Status) {
		return nil, invalidState("cannot assign a %s booking", booking.Status)
	}

	details := map[string]any{}
	if driverID != nil {
		driver, err := s.repo.Driver.FindByID(ctx, *driverID)
		if err != nil {
			return nil, fmt.Errorf("find driver: %w", err)
		}
		if driver == nil {
			return nil, notFound("driver", *driverID)
		}
		booking.DriverID = driverID
		details["driver_id"] = driverID.String()
	}
	if vehicleID != nil {
		vehicle, err := s.repo.Vehicle.FindByID(ctx, *vehicleID)
		if err != nil {
			return nil, fmt.Errorf("find vehicle: %w", err)
		}
		if vehicle == nil {
			return nil, notFound("vehicle", *vehicleID)
		}
		booking.VehicleID = vehicleID
		details["vehicle_id"] = vehicleID.String()
	}

	from := booking.Status
	if booking.Status == entity.BookingStatusPending && booking.DriverID != nil {
		booking.Status = entity.BookingStatusAccepted
	}
	to := booking.Status

	if err := s.update(ctx, booking, req.Version); err != nil {
		return nil, err
	}

	s.audit(ctx, booking.ID, entity.AuditActionAssigned, &from, &to, details)
	return s.reread(ctx, booking.ID)
}

func (s *bookingService) ChangeStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from, to := booking.Status, entity.BookingStatus(req.Status)
	if from == to {
		return nil, invalidState("booking is already %s", from)
	}
	if !CanTransition(from, to) {
		return nil, invalidState("cannot move booking from %s to %s", from, to)
	}
	if to == entity.BookingStatusCancelled && isBlank(req.Reason) {
		return nil, newValidationError("reason", "A cancellation reason is required")
	}

	now := time.Now()
	booking.Status = to
	switch to {
	case entity.BookingStatusStarted:
		booking.StartTime = &now
	case entity.BookingStatusCompleted:
		booking.EndTime = &now
	case entity.BookingStatusCancelled:
		reason := strings.TrimSpace(*req.Reason)
		booking.CancellationReason = &reason
		booking.CancelledAt = &now
	}

	if err := s.update(ctx, booking, req.Version); err != nil {
		return nil, err
	}

	details := map[string]any{}
	if req.Reason != nil {
		details["reason"] = strings.TrimSpace(*req.Reason)
	}
	s.audit(ctx, booking.ID, entity.AuditActionStatusChanged, &from, &to, details)

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return s.reread(ctx, booking.ID)
}

func (s *bookingService) UpdateFare(ctx context.Context, bookingID string, req *request.UpdateFareRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	amount, err := ParseFareAmount(req.FareAmount)
	if err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanEditFare(booking.Status) {
		return nil, invalidState("cannot edit the fare of a %s booking", booking.Status)
	}

	previous := booking.FareAmount
	booking.FareAmount = amount

	if err := s.update(ctx, booking, req.Version); err != nil {
		return nil, err
	}

	s.audit(ctx, booking.ID, entity.AuditActionFareUpdated, nil, nil, map[string]any{
		"from": previous,
		"to":   amount,
	})
	return s.reread(ctx, booking.ID)
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	status := entity.PaymentStatus(req.PaymentStatus)
	if booking.PaymentStatus == status {
		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	previous := booking.PaymentStatus
	booking.PaymentStatus = status

	if err := s.update(ctx, booking, req.Version); err != nil {
		return nil, err
	}

	s.audit(ctx, booking.ID, entity.AuditActionPaymentUpdate, nil, nil, map[string]any{
		"from": previous,
		"to":   status,
	})
	return s.reread(ctx, booking.ID)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanCancel(booking.Status) {
		return nil, invalidState("cannot cancel a %s booking", booking.Status)
	}

	now := time.Now()
	reason := strings.TrimSpace(req.Reason)
	from := booking.Status
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &now
	to := booking.Status

	if err := s.update(ctx, booking, req.Version); err != nil {
		return nil, err
	}

	s.audit(ctx, booking.ID, entity.AuditActionCancelled, &from, &to, map[string]any{"reason": reason})
	s.log.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()))

	return s.reread(ctx, booking.ID)
}

func (s *bookingService) update(ctx context.Context, booking *entity.Booking, expectedVersion *int) error {
	booking.UpdatedAt = time.Now()
	if err := s.repo.Booking.Update(ctx, booking, expectedVersion); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// reread returns the stored row so callers see what was persisted
func (s *bookingService) reread(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking", id)
	}
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// audit appends a trail entry. The mutation has already been committed, so
// a failed append is logged rather than returned.
func (s *bookingService) audit(ctx context.Context, bookingID uuid.UUID, action string, from, to *entity.BookingStatus, details map[string]any) {
	entry := &entity.BookingAuditLog{
		BaseSimple: entity.NewBaseSimple(time.Now()),
		BookingID:  bookingID,
		Action:     action,
		ActorID:    actorFrom(ctx),
		FromStatus: from,
		ToStatus:   to,
		Details:    details,
	}
	if err := s.repo.BookingAudit.Create(ctx, entry); err != nil {
		s.log.Warn("Failed to write audit entry",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("action", action))
	}
}
