package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/utils"
)

type FareInput struct {
	DistanceKm  float64
	DurationMin float64
	WaitingMin  float64
}

// FareBreakdown itemises a fare. Total is the amount charged.
type FareBreakdown struct {
	BaseFare        float64
	DistanceCharge  float64
	TimeCharge      float64
	Subtotal        float64
	SurgeMultiplier float64
	SurgedFare      float64
	MinimumFare     float64
	MinimumApplied  bool
	BillableWaiting float64
	WaitingCharge   float64
	ZoneFare        bool
	Total           float64
}

// CalculateFare prices a trip against a pricing rule. Both the calculator
// and booking creation go through here.
func CalculateFare(rule *entity.PricingRule, in FareInput) FareBreakdown {
	surge := rule.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}

	b := FareBreakdown{
		BaseFare:        rule.BaseFare,
		DistanceCharge:  rule.PerKmRate * in.DistanceKm,
		TimeCharge:      rule.PerMinuteRate * in.DurationMin,
		SurgeMultiplier: surge,
		MinimumFare:     rule.MinimumFare,
	}
	b.Subtotal = b.BaseFare + b.DistanceCharge + b.TimeCharge
	b.SurgedFare = b.Subtotal * surge

	fare := b.SurgedFare
	if fare < rule.MinimumFare {
		fare = rule.MinimumFare
		b.MinimumApplied = true
	}

	b.BillableWaiting = math.Max(0, in.WaitingMin-float64(rule.FreeWaitingMinutes))
	b.WaitingCharge = b.BillableWaiting * rule.WaitingChargePerMinute

	b.DistanceCharge = utils.Round2(b.DistanceCharge)
	b.TimeCharge = utils.Round2(b.TimeCharge)
	b.Subtotal = utils.Round2(b.Subtotal)
	b.SurgedFare = utils.Round2(b.SurgedFare)
	b.WaitingCharge = utils.Round2(b.WaitingCharge)
	b.Total = utils.Round2(fare + b.BillableWaiting*rule.WaitingChargePerMinute)
	return b
}

// ZoneFare prices a fixed origin/destination zone pair: the fixed fare
// when set, otherwise base plus per km.
func ZoneFare(zone *entity.ZonePricing, distanceKm float64) FareBreakdown {
	b := FareBreakdown{ZoneFare: true, SurgeMultiplier: 1}
	if zone.FixedFare > 0 {
		b.BaseFare = zone.FixedFare
	} else {
		b.BaseFare = zone.BaseFare
		b.DistanceCharge = utils.Round2(zone.PerKmRate * distanceKm)
	}
	b.Subtotal = utils.Round2(b.BaseFare + b.DistanceCharge)
	b.SurgedFare = b.Subtotal
	b.Total = b.Subtotal
	return b
}

// UsesZonePricing reports whether a service type is priced by zone table
// when both zones are given
func UsesZonePricing(s entity.ServiceType, fromZone, toZone string) bool {
	if strings.TrimSpace(fromZone) == "" || strings.TrimSpace(toZone) == "" {
		return false
	}
	return s == entity.ServiceTypeAirport || s == entity.ServiceTypeOutstation
}

// ParseAmount parses a non-negative finite number as typed into a form
// field. field names the input in the returned validation error.
func ParseAmount(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, newValidationError(field, fmt.Sprintf("%s is required", field))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newValidationError(field, fmt.Sprintf("%s must be a number", field))
	}
	if v < 0 {
		return 0, newValidationError(field, fmt.Sprintf("%s must not be negative", field))
	}
	return v, nil
}

// ParseFareAmount validates an edited fare before any write
func ParseFareAmount(raw string) (float64, error) {
	v, err := ParseAmount("fare_amount", raw)
	if err != nil {
		return 0, err
	}
	return utils.Round2(v), nil
}
