package request

type PricingListRequest struct {
	ServiceType string `json:"service_type" validate:"omitempty,oneof=city_ride rental airport outstation sharing"`
	VehicleType string `json:"vehicle_type" validate:"omitempty,oneof=hatchback sedan suv auto bike luxury"`
	Active      *bool  `json:"active"`
}

type CreatePricingRuleRequest struct {
	ServiceType            string   `json:"service_type" validate:"required,oneof=city_ride rental airport outstation sharing"`
	VehicleType            string   `json:"vehicle_type" validate:"required,oneof=hatchback sedan suv auto bike luxury"`
	BaseFare               float64  `json:"base_fare" validate:"gte=0"`
	PerKmRate              float64  `json:"per_km_rate" validate:"gte=0"`
	PerMinuteRate          float64  `json:"per_minute_rate" validate:"gte=0"`
	MinimumFare            float64  `json:"minimum_fare" validate:"gte=0"`
	SurgeMultiplier        *float64 `json:"surge_multiplier,omitempty" validate:"omitempty,gte=1,lte=10"`
	CancellationFee        float64  `json:"cancellation_fee" validate:"gte=0"`
	NoShowFee              float64  `json:"no_show_fee" validate:"gte=0"`
	WaitingChargePerMinute float64  `json:"waiting_charge_per_minute" validate:"gte=0"`
	FreeWaitingMinutes     int      `json:"free_waiting_minutes" validate:"gte=0,lte=120"`
	IsActive               *bool    `json:"is_active,omitempty"`
}

type UpdatePricingRuleRequest struct {
	BaseFare               *float64 `json:"base_fare,omitempty" validate:"omitempty,gte=0"`
	PerKmRate              *float64 `json:"per_km_rate,omitempty" validate:"omitempty,gte=0"`
	PerMinuteRate          *float64 `json:"per_minute_rate,omitempty" validate:"omitempty,gte=0"`
	MinimumFare            *float64 `json:"minimum_fare,omitempty" validate:"omitempty,gte=0"`
	SurgeMultiplier        *float64 `json:"surge_multiplier,omitempty" validate:"omitempty,gte=1,lte=10"`
	CancellationFee        *float64 `json:"cancellation_fee,omitempty" validate:"omitempty,gte=0"`
	NoShowFee              *float64 `json:"no_show_fee,omitempty" validate:"omitempty,gte=0"`
	WaitingChargePerMinute *float64 `json:"waiting_charge_per_minute,omitempty" validate:"omitempty,gte=0"`
	FreeWaitingMinutes     *int     `json:"free_waiting_minutes,omitempty" validate:"omitempty,gte=0,lte=120"`
	IsActive               *bool    `json:"is_active,omitempty"`
}

type CreateZonePricingRequest struct {
	ServiceType string  `json:"service_type" validate:"required,oneof=airport outstation"`
	VehicleType string  `json:"vehicle_type" validate:"required,oneof=hatchback sedan suv auto bike luxury"`
	FromZone    string  `json:"from_zone" validate:"required,notblank,max=100"`
	ToZone      string  `json:"to_zone" validate:"required,notblank,max=100"`
	FixedFare   float64 `json:"fixed_fare" validate:"gte=0"`
	BaseFare    float64 `json:"base_fare" validate:"gte=0"`
	PerKmRate   float64 `json:"per_km_rate" validate:"gte=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateZonePricingRequest struct {
	FromZone  *string  `json:"from_zone,omitempty" validate:"omitempty,notblank,max=100"`
	ToZone    *string  `json:"to_zone,omitempty" validate:"omitempty,notblank,max=100"`
	FixedFare *float64 `json:"fixed_fare,omitempty" validate:"omitempty,gte=0"`
	BaseFare  *float64 `json:"base_fare,omitempty" validate:"omitempty,gte=0"`
	PerKmRate *float64 `json:"per_km_rate,omitempty" validate:"omitempty,gte=0"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

// FareCalculatorRequest mirrors the calculator form: numeric inputs arrive
// as typed and are parsed server-side.
type FareCalculatorRequest struct {
	ServiceType    string `json:"service_type" validate:"required,oneof=city_ride rental airport outstation sharing"`
	VehicleType    string `json:"vehicle_type" validate:"required,oneof=hatchback sedan suv auto bike luxury"`
	Distance       string `json:"distance" validate:"required"`
	Duration       string `json:"duration" validate:"required"`
	WaitingMinutes string `json:"waiting_minutes,omitempty"`
	FromZone       string `json:"from_zone,omitempty" validate:"omitempty,max=100"`
	ToZone         string `json:"to_zone,omitempty" validate:"omitempty,max=100"`
}
