package usecase

import (
	"context"
	"fmt"

	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

const defaultTopDrivers = 10

type AnalyticsService interface {
	Dashboard(ctx context.Context, req *request.AnalyticsRequest) (*response.AnalyticsDashboardResponse, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
	log  *zap.Logger
}

func NewAnalyticsService(repo repository.AnalyticsRepository, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo: repo,
		log:  log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, req *request.AnalyticsRequest) (*response.AnalyticsDashboardResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate("from", &req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", &req.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, newValidationError("to", "Must not be before from")
	}

	dr := repository.DateRange{From: from}
	if to != nil {
		// the end day is included
		end := to.AddDate(0, 0, 1)
		dr.To = &end
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultTopDrivers
	}

	summary, err := s.repo.Summary(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	trend, err := s.repo.RevenueTrend(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("revenue trend: %w", err)
	}
	byService, err := s.repo.BookingsByServiceType(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("bookings by service type: %w", err)
	}
	top, err := s.repo.TopDrivers(ctx, dr, limit)
	if err != nil {
		return nil, fmt.Errorf("top drivers: %w", err)
	}

	resp := &response.AnalyticsDashboardResponse{
		From: utils.StringPtr(req.From),
		To:   utils.StringPtr(req.To),
		Summary: response.AnalyticsSummaryResponse{
			TotalBookings:     summary.TotalBookings,
			PendingBookings:   summary.PendingBookings,
			ActiveBookings:    summary.ActiveBookings,
			CompletedBookings: summary.CompletedBookings,
			CancelledBookings: summary.CancelledBookings,
			NoDriverBookings:  summary.NoDriverBookings,
			TotalRevenue:      utils.Round2(summary.TotalRevenue),
			AverageFare:       utils.Round2(summary.AverageFare),
			ActiveDrivers:     summary.ActiveDrivers,
			OnlineDrivers:     summary.OnlineDrivers,
			ActiveVehicles:    summary.ActiveVehicles,
			PendingKYC:        summary.PendingKYC,
		},
		RevenueTrend:  make([]response.DailyRevenueResponse, 0, len(trend)),
		ByServiceType: make([]response.ServiceTypeBreakdownResponse, 0, len(byService)),
		TopDrivers:    make([]response.DriverRankingResponse, 0, len(top)),
	}
	if summary.TotalBookings > 0 {
		resp.Summary.CompletionRate = utils.Round2(100 * float64(summary.CompletedBookings) / float64(summary.TotalBookings))
	}

	for _, d := range trend {
		resp.RevenueTrend = append(resp.RevenueTrend, response.DailyRevenueResponse{
			Day:       d.Day.Format("2006-01-02"),
			Bookings:  d.Bookings,
			Completed: d.Completed,
			Revenue:   utils.Round2(d.Revenue),
		})
	}

	var totalByService int
	for _, b := range byService {
		totalByService += b.Bookings
	}
	for _, b := range byService {
		item := response.ServiceTypeBreakdownResponse{
			ServiceType: b.ServiceType,
			Bookings:    b.Bookings,
			Revenue:     utils.Round2(b.Revenue),
		}
		if totalByService > 0 {
			item.Share = utils.Round2(100 * float64(b.Bookings) / float64(totalByService))
		}
		resp.ByServiceType = append(resp.ByServiceType, item)
	}

	for _, d := range top {
		resp.TopDrivers = append(resp.TopDrivers, response.DriverRankingResponse{
			DriverID:       d.DriverID.String(),
			FullName:       d.FullName,
			Rating:         d.Rating,
			CompletedRides: d.CompletedRides,
			Earnings:       utils.Round2(d.Earnings),
		})
	}

	return resp, nil
}
