package usecase

import (
	"testing"

	"fleet-admin/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cityRule() *entity.PricingRule {
	return &entity.PricingRule{
		ServiceType:     entity.ServiceTypeCityRide,
		VehicleType:     entity.VehicleTypeSedan,
		BaseFare:        50,
		PerKmRate:       10,
		PerMinuteRate:   2,
		MinimumFare:     100,
		SurgeMultiplier: 1,
	}
}

func TestCalculateFare(t *testing.T) {
	t.Run("distance and time", func(t *testing.T) {
		b := CalculateFare(cityRule(), FareInput{DistanceKm: 10, DurationMin: 30})
		assert.Equal(t, 210.0, b.Total)
		assert.Equal(t, 100.0, b.DistanceCharge)
		assert.Equal(t, 60.0, b.TimeCharge)
		assert.False(t, b.MinimumApplied)
	})

	t.Run("minimum fare", func(t *testing.T) {
		b := CalculateFare(cityRule(), FareInput{DistanceKm: 1, DurationMin: 2})
		assert.Equal(t, 100.0, b.Total)
		assert.True(t, b.MinimumApplied)
	})

	t.Run("surge", func(t *testing.T) {
		rule := cityRule()
		rule.SurgeMultiplier = 1.5
		b := CalculateFare(rule, FareInput{DistanceKm: 10, DurationMin: 30})
		assert.Equal(t, 315.0, b.Total)
	})

	t.Run("zero surge treated as one", func(t *testing.T) {
		rule := cityRule()
		rule.SurgeMultiplier = 0
		b := CalculateFare(rule, FareInput{DistanceKm: 10, DurationMin: 30})
		assert.Equal(t, 1.0, b.SurgeMultiplier)
		assert.Equal(t, 210.0, b.Total)
	})

	t.Run("waiting beyond free minutes", func(t *testing.T) {
		rule := cityRule()
		rule.FreeWaitingMinutes = 5
		rule.WaitingChargePerMinute = 1.5
		b := CalculateFare(rule, FareInput{DistanceKm: 10, DurationMin: 30, WaitingMin: 9})
		assert.Equal(t, 4.0, b.BillableWaiting)
		assert.Equal(t, 6.0, b.WaitingCharge)
		assert.Equal(t, 216.0, b.Total)
	})

	t.Run("rounds to cents", func(t *testing.T) {
		rule := cityRule()
		rule.PerKmRate = 12.333
		b := CalculateFare(rule, FareInput{DistanceKm: 10, DurationMin: 30})
		assert.Equal(t, 233.33, b.Total)
	})
}

func TestZoneFare(t *testing.T) {
	fixed := ZoneFare(&entity.ZonePricing{FixedFare: 750, BaseFare: 100, PerKmRate: 20}, 40)
	assert.Equal(t, 750.0, fixed.Total)
	assert.True(t, fixed.ZoneFare)

	metered := ZoneFare(&entity.ZonePricing{BaseFare: 100, PerKmRate: 20}, 40)
	assert.Equal(t, 900.0, metered.Total)
}

func TestUsesZonePricing(t *testing.T) {
	assert.True(t, UsesZonePricing(entity.ServiceTypeAirport, "T1", "City Centre"))
	assert.True(t, UsesZonePricing(entity.ServiceTypeOutstation, "Pune", "Mumbai"))
	assert.False(t, UsesZonePricing(entity.ServiceTypeAirport, "T1", " "))
	assert.False(t, UsesZonePricing(entity.ServiceTypeCityRide, "A", "B"))
}

func TestParseFareAmount(t *testing.T) {
	v, err := ParseFareAmount(" 245.556 ")
	require.NoError(t, err)
	assert.Equal(t, 245.56, v)

	v, err = ParseFareAmount("0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	for _, bad := range []string{"", "abc", "12abc", "-5", "NaN", "Inf", "-Inf"} {
		_, err := ParseFareAmount(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
