package entity

type PricingRule struct {
	BaseNoDelete
	ServiceType            ServiceType `db:"service_type"`
	VehicleType            VehicleType `db:"vehicle_type"`
	BaseFare               float64     `db:"base_fare"`
	PerKmRate              float64     `db:"per_km_rate"`
	PerMinuteRate          float64     `db:"per_minute_rate"`
	MinimumFare            float64     `db:"minimum_fare"`
	SurgeMultiplier        float64     `db:"surge_multiplier"`
	CancellationFee        float64     `db:"cancellation_fee"`
	NoShowFee              float64     `db:"no_show_fee"`
	WaitingChargePerMinute float64     `db:"waiting_charge_per_minute"`
	FreeWaitingMinutes     int         `db:"free_waiting_minutes"`
	IsActive               bool        `db:"is_active"`
}

// ZonePricing is a fare table entry keyed by named origin/destination zones
type ZonePricing struct {
	BaseNoDelete
	ServiceType ServiceType `db:"service_type"`
	VehicleType VehicleType `db:"vehicle_type"`
	FromZone    string      `db:"from_zone"`
	ToZone      string      `db:"to_zone"`
	FixedFare   float64     `db:"fixed_fare"`
	BaseFare    float64     `db:"base_fare"`
	PerKmRate   float64     `db:"per_km_rate"`
	IsActive    bool        `db:"is_active"`
}
