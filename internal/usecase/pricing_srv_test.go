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

func newPricingService(rules []*entity.PricingRule, zones []*entity.ZonePricing) PricingService {
	repo := &repository.Repository{
		PricingRule: &fakePricingRepo{rules: rules},
		ZonePricing: &fakeZoneRepo{zones: zones},
	}
	return NewPricingService(repo, zap.NewNop())
}

func TestCalculate(t *testing.T) {
	rule := cityRule()
	rule.IsActive = true
	svc := newPricingService([]*entity.PricingRule{rule}, nil)

	t.Run("worked example", func(t *testing.T) {
		quote, err := svc.Calculate(context.Background(), &request.FareCalculatorRequest{
			ServiceType: string(entity.ServiceTypeCityRide),
			VehicleType: string(entity.VehicleTypeSedan),
			Distance:    "10",
			Duration:    " 30 ",
		})
		require.NoError(t, err)
		assert.Equal(t, 210.0, quote.Total)
		assert.Equal(t, 210.0, quote.Breakdown.Total)
		require.NotNil(t, quote.PricingRuleID)
		assert.Nil(t, quote.ZonePricingID)
	})

	t.Run("bad inputs", func(t *testing.T) {
		for _, tc := range []struct{ distance, duration, waiting string }{
			{"ten", "30", ""},
			{"10", "-1", ""},
			{"10", "30", "x"},
		} {
			_, err := svc.Calculate(context.Background(), &request.FareCalculatorRequest{
				ServiceType:    string(entity.ServiceTypeCityRide),
				VehicleType:    string(entity.VehicleTypeSedan),
				Distance:       tc.distance,
				Duration:       tc.duration,
				WaitingMinutes: tc.waiting,
			})
			assert.ErrorIs(t, err, ErrValidation, "%+v", tc)
		}
	})

	t.Run("no rule for the pair", func(t *testing.T) {
		_, err := svc.Calculate(context.Background(), &request.FareCalculatorRequest{
			ServiceType: string(entity.ServiceTypeRental),
			VehicleType: string(entity.VehicleTypeSedan),
			Distance:    "10",
			Duration:    "30",
		})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCalculateUsesZoneFareForAirportTrips(t *testing.T) {
	airportRule := cityRule()
	airportRule.ServiceType = entity.ServiceTypeAirport
	airportRule.IsActive = true
	zone := &entity.ZonePricing{
		ServiceType: entity.ServiceTypeAirport,
		VehicleType: entity.VehicleTypeSedan,
		FromZone:    "Airport",
		ToZone:      "Whitefield",
		FixedFare:   899,
		IsActive:    true,
	}
	svc := newPricingService([]*entity.PricingRule{airportRule}, []*entity.ZonePricing{zone})

	quote, err := svc.Calculate(context.Background(), &request.FareCalculatorRequest{
		ServiceType: string(entity.ServiceTypeAirport),
		VehicleType: string(entity.VehicleTypeSedan),
		Distance:    "38",
		Duration:    "70",
		FromZone:    "airport",
		ToZone:      "whitefield",
	})
	require.NoError(t, err)
	assert.Equal(t, 899.0, quote.Total)
	assert.NotNil(t, quote.ZonePricingID)
	assert.True(t, quote.Breakdown.ZoneFare)

	t.Run("unknown zone falls back to the rule", func(t *testing.T) {
		quote, err := svc.Calculate(context.Background(), &request.FareCalculatorRequest{
			ServiceType: string(entity.ServiceTypeAirport),
			VehicleType: string(entity.VehicleTypeSedan),
			Distance:    "10",
			Duration:    "30",
			FromZone:    "Airport",
			ToZone:      "Hosur",
		})
		require.NoError(t, err)
		assert.Equal(t, 210.0, quote.Total)
		assert.NotNil(t, quote.PricingRuleID)
		assert.False(t, quote.Breakdown.ZoneFare)
	})
}

func sedanRuleRequest(active *bool) *request.CreatePricingRuleRequest {
	return &request.CreatePricingRuleRequest{
		ServiceType:   string(entity.ServiceTypeCityRide),
		VehicleType:   string(entity.VehicleTypeSedan),
		BaseFare:      50,
		PerKmRate:     10,
		PerMinuteRate: 2,
		MinimumFare:   100,
		IsActive:      active,
	}
}

func TestPricingRuleLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newPricingService(nil, nil)
	on, off := true, false

	first, err := svc.CreateRule(ctx, sedanRuleRequest(nil))
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	assert.Equal(t, 1.0, first.SurgeMultiplier)

	t.Run("second active rule for the pair conflicts", func(t *testing.T) {
		_, err := svc.CreateRule(ctx, sedanRuleRequest(&on))
		assert.ErrorIs(t, err, ErrConflict)
	})

	draft, err := svc.CreateRule(ctx, sedanRuleRequest(&off))
	require.NoError(t, err)
	assert.False(t, draft.IsActive)

	t.Run("reactivating while another rule is active conflicts", func(t *testing.T) {
		_, err := svc.UpdateRule(ctx, draft.ID, &request.UpdatePricingRuleRequest{IsActive: &on})
		assert.ErrorIs(t, err, ErrConflict)

		got, err := svc.GetRule(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("deactivate keeps the rule", func(t *testing.T) {
		require.NoError(t, svc.DeactivateRule(ctx, first.ID))

		got, err := svc.GetRule(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("draft can go live once the pair is free", func(t *testing.T) {
		surge := 1.5
		got, err := svc.UpdateRule(ctx, draft.ID, &request.UpdatePricingRuleRequest{IsActive: &on, SurgeMultiplier: &surge})
		require.NoError(t, err)
		assert.True(t, got.IsActive)
		assert.Equal(t, 1.5, got.SurgeMultiplier)

		_, err = svc.UpdateRule(ctx, first.ID, &request.UpdatePricingRuleRequest{IsActive: &on})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown rule", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeactivateRule(ctx, uuid.NewString()), ErrNotFound)
		assert.ErrorIs(t, svc.DeactivateRule(ctx, "not-a-uuid"), ErrValidation)
	})
}

func TestUpdateZoneKeepsAFare(t *testing.T) {
	ctx := context.Background()
	zone := &entity.ZonePricing{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		ServiceType:  entity.ServiceTypeAirport,
		VehicleType:  entity.VehicleTypeSedan,
		FromZone:     "Airport",
		ToZone:       "Whitefield",
		FixedFare:    899,
		IsActive:     true,
	}
	svc := newPricingService(nil, []*entity.ZonePricing{zone})
	zero := 0.0

	_, err := svc.UpdateZone(ctx, zone.ID.String(), &request.UpdateZonePricingRequest{FixedFare: &zero})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fixed_fare")

	got, err := svc.ListZones(ctx, &request.PricingListRequest{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 899.0, got[0].FixedFare)

	base, perKm := 300.0, 18.0
	updated, err := svc.UpdateZone(ctx, zone.ID.String(), &request.UpdateZonePricingRequest{
		FixedFare: &zero,
		BaseFare:  &base,
		PerKmRate: &perKm,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.FixedFare)
	assert.Equal(t, 300.0, updated.BaseFare)
}
