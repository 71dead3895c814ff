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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingService interface {
	ListRules(ctx context.Context, req *request.PricingListRequest) ([]response.PricingRuleResponse, error)
	GetRule(ctx context.Context, ruleID string) (*response.PricingRuleResponse, error)
	CreateRule(ctx context.Context, req *request.CreatePricingRuleRequest) (*response.PricingRuleResponse, error)
	UpdateRule(ctx context.Context, ruleID string, req *request.UpdatePricingRuleRequest) (*response.PricingRuleResponse, error)
	DeactivateRule(ctx context.Context, ruleID string) error

	ListZones(ctx context.Context, req *request.PricingListRequest) ([]response.ZonePricingResponse, error)
	CreateZone(ctx context.Context, req *request.CreateZonePricingRequest) (*response.ZonePricingResponse, error)
	UpdateZone(ctx context.Context, zoneID string, req *request.UpdateZonePricingRequest) (*response.ZonePricingResponse, error)
	DeactivateZone(ctx context.Context, zoneID string) error

	Calculate(ctx context.Context, req *request.FareCalculatorRequest) (*response.FareQuoteResponse, error)
}

type pricingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo: repo,
		log:  log.With(zap.String("service", "pricing")),
	}
}

type fareQuote struct {
	breakdown FareBreakdown
	rule      *entity.PricingRule
	zone      *entity.ZonePricing
}

// quoteTrip prices a trip with the zone table when it applies and a
// matching zone exists, otherwise with the active pricing rule
func quoteTrip(ctx context.Context, repo *repository.Repository, st entity.ServiceType, vt entity.VehicleType, fromZone, toZone string, in FareInput) (*fareQuote, error) {
	if UsesZonePricing(st, fromZone, toZone) {
		zone, err := repo.ZonePricing.FindActive(ctx, st, vt, strings.TrimSpace(fromZone), strings.TrimSpace(toZone))
		if err != nil {
			return nil, fmt.Errorf("find zone pricing: %w", err)
		}
		if zone != nil {
			return &fareQuote{breakdown: ZoneFare(zone, in.DistanceKm), zone: zone}, nil
		}
	}

	rule, err := repo.PricingRule.FindActive(ctx, st, vt)
	if err != nil {
		return nil, fmt.Errorf("find pricing rule: %w", err)
	}
	if rule == nil {
		return nil, invalidState("no active pricing rule for %s / %s", st, vt)
	}

	return &fareQuote{breakdown: CalculateFare(rule, in), rule: rule}, nil
}

func fareBreakdownToResponse(b FareBreakdown) response.FareBreakdownResponse {
	return response.FareBreakdownResponse{
		BaseFare:        b.BaseFare,
		DistanceCharge:  b.DistanceCharge,
		TimeCharge:      b.TimeCharge,
		Subtotal:        b.Subtotal,
		SurgeMultiplier: b.SurgeMultiplier,
		SurgedFare:      b.SurgedFare,
		MinimumFare:     b.MinimumFare,
		MinimumApplied:  b.MinimumApplied,
		BillableWaiting: b.BillableWaiting,
		WaitingCharge:   b.WaitingCharge,
		ZoneFare:        b.ZoneFare,
		Total:           b.Total,
	}
}

func pricingFilter(req *request.PricingListRequest) repository.PricingFilter {
	filter := repository.PricingFilter{IsActive: req.Active}
	if req.ServiceType != "" {
		st := entity.ServiceType(req.ServiceType)
		filter.ServiceType = &st
	}
	if req.VehicleType != "" {
		vt := entity.VehicleType(req.VehicleType)
		filter.VehicleType = &vt
	}
	return filter
}

func (s *pricingService) ListRules(ctx context.Context, req *request.PricingListRequest) ([]response.PricingRuleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rules, err := s.repo.PricingRule.FindAll(ctx, pricingFilter(req))
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}

	items := make([]response.PricingRuleResponse, 0, len(rules))
	for _, r := range rules {
		items = append(items, response.PricingRuleToResponse(r))
	}
	return items, nil
}

func (s *pricingService) loadRule(ctx context.Context, rawID string) (*entity.PricingRule, error) {
	id, err := parseID("rule_id", rawID)
	if err != nil {
		return nil, err
	}
	rule, err := s.repo.PricingRule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find pricing rule: %w", err)
	}
	if rule == nil {
		return nil, notFound("pricing rule", id)
	}
	return rule, nil
}

func (s *pricingService) GetRule(ctx context.Context, ruleID string) (*response.PricingRuleResponse, error) {
	rule, err := s.loadRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	resp := response.PricingRuleToResponse(rule)
	return &resp, nil
}

// ensureSingleActive rejects a second active rule for the same pair
func (s *pricingService) ensureSingleActive(ctx context.Context, st entity.ServiceType, vt entity.VehicleType, self uuid.UUID) error {
	active, err := s.repo.PricingRule.FindActive(ctx, st, vt)
	if err != nil {
		return fmt.Errorf("find active rule: %w", err)
	}
	if active != nil && active.ID != self {
		return fmt.Errorf("an active rule for %s / %s already exists: %w", st, vt, ErrConflict)
	}
	return nil
}

func (s *pricingService) CreateRule(ctx context.Context, req *request.CreatePricingRuleRequest) (*response.PricingRuleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	st, vt := entity.ServiceType(req.ServiceType), entity.VehicleType(req.VehicleType)
	active := req.IsActive == nil || *req.IsActive
	if active {
		if err := s.ensureSingleActive(ctx, st, vt, uuid.Nil); err != nil {
			return nil, err
		}
	}

	surge := 1.0
	if req.SurgeMultiplier != nil {
		surge = *req.SurgeMultiplier
	}

	rule := &entity.PricingRule{
		BaseNoDelete:           entity.NewBaseNoDelete(time.Now()),
		ServiceType:            st,
		VehicleType:            vt,
		BaseFare:               req.BaseFare,
		PerKmRate:              req.PerKmRate,
		PerMinuteRate:          req.PerMinuteRate,
		MinimumFare:            req.MinimumFare,
		SurgeMultiplier:        surge,
		CancellationFee:        req.CancellationFee,
		NoShowFee:              req.NoShowFee,
		WaitingChargePerMinute: req.WaitingChargePerMinute,
		FreeWaitingMinutes:     req.FreeWaitingMinutes,
		IsActive:               active,
	}

	if err := s.repo.PricingRule.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create pricing rule: %w", err)
	}

	s.log.Info("Pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("service_type", string(st)),
		zap.String("vehicle_type", string(vt)))

	return s.GetRule(ctx, rule.ID.String())
}

func (s *pricingService) UpdateRule(ctx context.Context, ruleID string, req *request.UpdatePricingRuleRequest) (*response.PricingRuleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rule, err := s.loadRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setFloat(&rule.BaseFare, req.BaseFare)
	setFloat(&rule.PerKmRate, req.PerKmRate)
	setFloat(&rule.PerMinuteRate, req.PerMinuteRate)
	setFloat(&rule.MinimumFare, req.MinimumFare)
	setFloat(&rule.SurgeMultiplier, req.SurgeMultiplier)
	setFloat(&rule.CancellationFee, req.CancellationFee)
	setFloat(&rule.NoShowFee, req.NoShowFee)
	setFloat(&rule.WaitingChargePerMinute, req.WaitingChargePerMinute)
	if req.FreeWaitingMinutes != nil {
		rule.FreeWaitingMinutes = *req.FreeWaitingMinutes
	}
	if req.IsActive != nil {
		if *req.IsActive && !rule.IsActive {
			if err := s.ensureSingleActive(ctx, rule.ServiceType, rule.VehicleType, rule.ID); err != nil {
				return nil, err
			}
		}
		rule.IsActive = *req.IsActive
	}

	rule.UpdatedAt = time.Now()
	if err := s.repo.PricingRule.Update(ctx, rule); err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info("Pricing rule updated", zap.String("rule_id", rule.ID.String()))
	return s.GetRule(ctx, rule.ID.String())
}

func (s *pricingService) DeactivateRule(ctx context.Context, ruleID string) error {
	rule, err := s.loadRule(ctx, ruleID)
	if err != nil {
		return err
	}
	if err := s.repo.PricingRule.Deactivate(ctx, rule.ID); err != nil {
		return mapRepoError(err)
	}
	s.log.Info("Pricing rule deactivated", zap.String("rule_id", rule.ID.String()))
	return nil
}

func (s *pricingService) ListZones(ctx context.Context, req *request.PricingListRequest) ([]response.ZonePricingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	zones, err := s.repo.ZonePricing.FindAll(ctx, pricingFilter(req))
	if err != nil {
		return nil, fmt.Errorf("list zone pricing: %w", err)
	}

	items := make([]response.ZonePricingResponse, 0, len(zones))
	for _, z := range zones {
		items = append(items, response.ZonePricingToResponse(z))
	}
	return items, nil
}

func (s *pricingService) loadZone(ctx context.Context, rawID string) (*entity.ZonePricing, error) {
	id, err := parseID("zone_id", rawID)
	if err != nil {
		return nil, err
	}
	zone, err := s.repo.ZonePricing.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find zone pricing: %w", err)
	}
	if zone == nil {
		return nil, notFound("zone pricing", id)
	}
	return zone, nil
}

func (s *pricingService) zoneResponse(ctx context.Context, id uuid.UUID) (*response.ZonePricingResponse, error) {
	zone, err := s.loadZone(ctx, id.String())
	if err != nil {
		return nil, err
	}
	resp := response.ZonePricingToResponse(zone)
	return &resp, nil
}

// checkZoneFare rejects a zone that would price every trip at zero
func checkZoneFare(fixed, base, perKm float64) error {
	if fixed <= 0 && base <= 0 && perKm <= 0 {
		return newValidationError("fixed_fare", "Set a fixed fare or a base fare and per km rate")
	}
	return nil
}

func (s *pricingService) CreateZone(ctx context.Context, req *request.CreateZonePricingRequest) (*response.ZonePricingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkZoneFare(req.FixedFare, req.BaseFare, req.PerKmRate); err != nil {
		return nil, err
	}

	zone := &entity.ZonePricing{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		ServiceType:  entity.ServiceType(req.ServiceType),
		VehicleType:  entity.VehicleType(req.VehicleType),
		FromZone:     strings.TrimSpace(req.FromZone),
		ToZone:       strings.TrimSpace(req.ToZone),
		FixedFare:    req.FixedFare,
		BaseFare:     req.BaseFare,
		PerKmRate:    req.PerKmRate,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.ZonePricing.Create(ctx, zone); err != nil {
		return nil, fmt.Errorf("create zone pricing: %w", err)
	}

	s.log.Info("Zone pricing created",
		zap.String("zone_id", zone.ID.String()),
		zap.String("from_zone", zone.FromZone),
		zap.String("to_zone", zone.ToZone))

	return s.zoneResponse(ctx, zone.ID)
}

func (s *pricingService) UpdateZone(ctx context.Context, zoneID string, req *request.UpdateZonePricingRequest) (*response.ZonePricingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	zone, err := s.loadZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	if req.FromZone != nil {
		zone.FromZone = strings.TrimSpace(*req.FromZone)
	}
	if req.ToZone != nil {
		zone.ToZone = strings.TrimSpace(*req.ToZone)
	}
	if req.FixedFare != nil {
		zone.FixedFare = *req.FixedFare
	}
	if req.BaseFare != nil {
		zone.BaseFare = *req.BaseFare
	}
	if req.PerKmRate != nil {
		zone.PerKmRate = *req.PerKmRate
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}
	if err := checkZoneFare(zone.FixedFare, zone.BaseFare, zone.PerKmRate); err != nil {
		return nil, err
	}

	zone.UpdatedAt = time.Now()
	if err := s.repo.ZonePricing.Update(ctx, zone); err != nil {
		return nil, mapRepoError(err)
	}

	return s.zoneResponse(ctx, zone.ID)
}

func (s *pricingService) DeactivateZone(ctx context.Context, zoneID string) error {
	zone, err := s.loadZone(ctx, zoneID)
	if err != nil {
		return err
	}
	if err := s.repo.ZonePricing.Deactivate(ctx, zone.ID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *pricingService) Calculate(ctx context.Context, req *request.FareCalculatorRequest) (*response.FareQuoteResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	distance, err := ParseAmount("distance", req.Distance)
	if err != nil {
		return nil, err
	}
	duration, err := ParseAmount("duration", req.Duration)
	if err != nil {
		return nil, err
	}
	var waiting float64
	if strings.TrimSpace(req.WaitingMinutes) != "" {
		if waiting, err = ParseAmount("waiting_minutes", req.WaitingMinutes); err != nil {
			return nil, err
		}
	}

	st, vt := entity.ServiceType(req.ServiceType), entity.VehicleType(req.VehicleType)
	quote, err := quoteTrip(ctx, s.repo, st, vt, req.FromZone, req.ToZone, FareInput{
		DistanceKm:  distance,
		DurationMin: duration,
		WaitingMin:  waiting,
	})
	if err != nil {
		return nil, err
	}

	resp := &response.FareQuoteResponse{
		ServiceType: st,
		VehicleType: vt,
		DistanceKm:  distance,
		DurationMin: duration,
		Breakdown:   fareBreakdownToResponse(quote.breakdown),
		Total:       quote.breakdown.Total,
	}
	if quote.rule != nil {
		id := quote.rule.ID.String()
		resp.PricingRuleID = &id
	}
	if quote.zone != nil {
		id := quote.zone.ID.String()
		resp.ZonePricingID = &id
	}

	return resp, nil
}
