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

type fakeAnalyticsRepo struct {
	summary   entity.AnalyticsSummary
	trend     []*entity.DailyRevenue
	byService []*entity.ServiceTypeBreakdown
	top       []*entity.DriverRanking

	gotRange repository.DateRange
	gotLimit int
}

func (r *fakeAnalyticsRepo) Summary(_ context.Context, dr repository.DateRange) (*entity.AnalyticsSummary, error) {
	r.gotRange = dr
	s := r.summary
	return &s, nil
}

func (r *fakeAnalyticsRepo) RevenueTrend(_ context.Context, _ repository.DateRange) ([]*entity.DailyRevenue, error) {
	return r.trend, nil
}

func (r *fakeAnalyticsRepo) BookingsByServiceType(_ context.Context, _ repository.DateRange) ([]*entity.ServiceTypeBreakdown, error) {
	return r.byService, nil
}

func (r *fakeAnalyticsRepo) TopDrivers(_ context.Context, _ repository.DateRange, limit int) ([]*entity.DriverRanking, error) {
	r.gotLimit = limit
	return r.top, nil
}

func TestDashboardDateRange(t *testing.T) {
	ctx := context.Background()

	t.Run("to before from", func(t *testing.T) {
		svc := NewAnalyticsService(&fakeAnalyticsRepo{}, zap.NewNop())
		_, err := svc.Dashboard(ctx, &request.AnalyticsRequest{From: "2024-03-10", To: "2024-03-09"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "to")
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := NewAnalyticsService(&fakeAnalyticsRepo{}, zap.NewNop())
		_, err := svc.Dashboard(ctx, &request.AnalyticsRequest{From: "10/03/2024"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("end day is included", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(repo, zap.NewNop())

		resp, err := svc.Dashboard(ctx, &request.AnalyticsRequest{From: "2024-03-10", To: "2024-03-10"})
		require.NoError(t, err)
		require.NotNil(t, repo.gotRange.From)
		require.NotNil(t, repo.gotRange.To)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *repo.gotRange.From)
		assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *repo.gotRange.To)
		require.NotNil(t, resp.To)
		assert.Equal(t, "2024-03-10", *resp.To)
	})

	t.Run("open range", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(repo, zap.NewNop())

		resp, err := svc.Dashboard(ctx, &request.AnalyticsRequest{})
		require.NoError(t, err)
		assert.Nil(t, repo.gotRange.From)
		assert.Nil(t, repo.gotRange.To)
		assert.Nil(t, resp.From)
		assert.NotNil(t, resp.RevenueTrend)
		assert.NotNil(t, resp.TopDrivers)
	})
}

func TestDashboardTopDriverLimit(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, zap.NewNop())

	_, err := svc.Dashboard(ctx, &request.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, defaultTopDrivers, repo.gotLimit)

	_, err = svc.Dashboard(ctx, &request.AnalyticsRequest{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.gotLimit)

	_, err = svc.Dashboard(ctx, &request.AnalyticsRequest{Limit: 51})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDashboardPercentages(t *testing.T) {
	ctx := context.Background()
	driverID := uuid.New()
	repo := &fakeAnalyticsRepo{
		summary: entity.AnalyticsSummary{
			TotalBookings:     3,
			CompletedBookings: 2,
			CancelledBookings: 1,
			TotalRevenue:      420.456,
			AverageFare:       210.228,
		},
		trend: []*entity.DailyRevenue{
			{Day: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Bookings: 3, Completed: 2, Revenue: 420.456},
		},
		byService: []*entity.ServiceTypeBreakdown{
			{ServiceType: entity.ServiceTypeCityRide, Bookings: 2, Revenue: 300},
			{ServiceType: entity.ServiceTypeAirport, Bookings: 1, Revenue: 120.456},
		},
		top: []*entity.DriverRanking{
			{DriverID: driverID, FullName: "Ravi Kumar", Rating: 4.8, CompletedRides: 2, Earnings: 420.456},
		},
	}
	svc := NewAnalyticsService(repo, zap.NewNop())

	resp, err := svc.Dashboard(ctx, &request.AnalyticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 66.67, resp.Summary.CompletionRate)
	assert.Equal(t, 420.46, resp.Summary.TotalRevenue)
	assert.Equal(t, 210.23, resp.Summary.AverageFare)

	require.Len(t, resp.RevenueTrend, 1)
	assert.Equal(t, "2024-03-10", resp.RevenueTrend[0].Day)
	assert.Equal(t, 420.46, resp.RevenueTrend[0].Revenue)

	require.Len(t, resp.ByServiceType, 2)
	assert.Equal(t, 66.67, resp.ByServiceType[0].Share)
	assert.Equal(t, 33.33, resp.ByServiceType[1].Share)

	require.Len(t, resp.TopDrivers, 1)
	assert.Equal(t, driverID.String(), resp.TopDrivers[0].DriverID)
	assert.Equal(t, 420.46, resp.TopDrivers[0].Earnings)
}

func TestDashboardEmptyPeriod(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		byService: []*entity.ServiceTypeBreakdown{
			{ServiceType: entity.ServiceTypeCityRide},
		},
	}
	svc := NewAnalyticsService(repo, zap.NewNop())

	resp, err := svc.Dashboard(context.Background(), &request.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Summary.CompletionRate)
	require.Len(t, resp.ByServiceType, 1)
	assert.Zero(t, resp.ByServiceType[0].Share)
	assert.Empty(t, resp.TopDrivers)
}
