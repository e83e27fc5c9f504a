package service

import (
	"context"
	"fmt"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/logger"
	"aquascout-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetPricingSettings(ctx context.Context) (*domain.PricingSettings, error) {
	return s.settingsRepo.GetPricing(ctx)
}

// UpdatePricingSettings affects future quotes only; amounts on existing
// bookings are frozen at creation time.
func (s *settingsService) UpdatePricingSettings(ctx context.Context, settings *domain.PricingSettings) error {
	if settings.TravelChargePerKmPaise < 0 {
		return fmt.Errorf("%w: travel charge per km must not be negative", domain.ErrValidation)
	}
	if settings.BaseRadiusKm < 0 {
		return fmt.Errorf("%w: base radius must not be negative", domain.ErrValidation)
	}
	if settings.GSTPercentage < 0 || settings.GSTPercentage > 100 {
		return fmt.Errorf("%w: gst percentage must be between 0 and 100", domain.ErrValidation)
	}
	if err := s.settingsRepo.UpdatePricing(ctx, settings); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Pricing settings updated",
		"travel_charge_per_km_paise", settings.TravelChargePerKmPaise,
		"base_radius_km", settings.BaseRadiusKm,
		"gst_percentage", settings.GSTPercentage)
	return nil
}
