package response

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type PricingRuleResponse struct {
	ID                     string             `json:"id"`
	ServiceType            entity.ServiceType `json:"service_type"`
	VehicleType            entity.VehicleType `json:"vehicle_type"`
	BaseFare               float64            `json:"base_fare"`
	PerKmRate              float64            `json:"per_km_rate"`
	PerMinuteRate          float64            `json:"per_minute_rate"`
	MinimumFare            float64            `json:"minimum_fare"`
	SurgeMultiplier        float64            `json:"surge_multiplier"`
	CancellationFee        float64            `json:"cancellation_fee"`
	NoShowFee              float64            `json:"no_show_fee"`
	WaitingChargePerMinute float64            `json:"waiting_charge_per_minute"`
	FreeWaitingMinutes     int                `json:"free_waiting_minutes"`
	IsActive               bool               `json:"is_active"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

type ZonePricingResponse struct {
	ID          string             `json:"id"`
	ServiceType entity.ServiceType `json:"service_type"`
	VehicleType entity.VehicleType `json:"vehicle_type"`
	FromZone    string             `json:"from_zone"`
	ToZone      string             `json:"to_zone"`
	FixedFare   float64            `json:"fixed_fare"`
	BaseFare    float64            `json:"base_fare"`
	PerKmRate   float64            `json:"per_km_rate"`
	IsActive    bool               `json:"is_active"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type FareBreakdownResponse struct {
	BaseFare        float64 `json:"base_fare"`
	DistanceCharge  float64 `json:"distance_charge"`
	TimeCharge      float64 `json:"time_charge"`
	Subtotal        float64 `json:"subtotal"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	SurgedFare      float64 `json:"surged_fare"`
	MinimumFare     float64 `json:"minimum_fare"`
	MinimumApplied  bool    `json:"minimum_applied"`
	BillableWaiting float64 `json:"billable_waiting_minutes"`
	WaitingCharge   float64 `json:"waiting_charge"`
	ZoneFare        bool    `json:"zone_fare"`
	Total           float64 `json:"total"`
}

type FareQuoteResponse struct {
	ServiceType   entity.ServiceType    `json:"service_type"`
	VehicleType   entity.VehicleType    `json:"vehicle_type"`
	DistanceKm    float64               `json:"distance_km"`
	DurationMin   float64               `json:"duration_minutes"`
	PricingRuleID *string               `json:"pricing_rule_id,omitempty"`
	ZonePricingID *string               `json:"zone_pricing_id,omitempty"`
	Breakdown     FareBreakdownResponse `json:"breakdown"`
	Total         float64               `json:"total"`
}

// Helper converters
func PricingRuleToResponse(p *entity.PricingRule) PricingRuleResponse {
	return PricingRuleResponse{
		ID:                     p.ID.String(),
		ServiceType:            p.ServiceType,
		VehicleType:            p.VehicleType,
		BaseFare:               p.BaseFare,
		PerKmRate:              p.PerKmRate,
		PerMinuteRate:          p.PerMinuteRate,
		MinimumFare:            p.MinimumFare,
		SurgeMultiplier:        p.SurgeMultiplier,
		CancellationFee:        p.CancellationFee,
		NoShowFee:              p.NoShowFee,
		WaitingChargePerMinute: p.WaitingChargePerMinute,
		FreeWaitingMinutes:     p.FreeWaitingMinutes,
		IsActive:               p.IsActive,
		UpdatedAt:              p.UpdatedAt,
	}
}

func ZonePricingToResponse(z *entity.ZonePricing) ZonePricingResponse {
	return ZonePricingResponse{
		ID:          z.ID.String(),
		ServiceType: z.ServiceType,
		VehicleType: z.VehicleType,
		FromZone:    z.FromZone,
		ToZone:      z.ToZone,
		FixedFare:   z.FixedFare,
		BaseFare:    z.BaseFare,
		PerKmRate:   z.PerKmRate,
		IsActive:    z.IsActive,
		UpdatedAt:   z.UpdatedAt,
	}
}
