package postgres

import (
	"context"
	"database/sql"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Pricing settings live in a single-row table; the upsert keeps it that way.
func (r *settingsRepository) GetPricing(ctx context.Context) (*domain.PricingSettings, error) {
	s := &domain.PricingSettings{}
	query := `SELECT travel_charge_per_km_paise, base_radius_km, gst_percentage, updated_on FROM pricing_settings WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.TravelChargePerKmPaise, &s.BaseRadiusKm, &s.GSTPercentage, &s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) UpdatePricing(ctx context.Context, s *domain.PricingSettings) error {
	query := `INSERT INTO pricing_settings (id, travel_charge_per_km_paise, base_radius_km, gst_percentage, updated_on)
	          VALUES (1, $1, $2, $3, $4)
	          ON CONFLICT (id) DO UPDATE SET travel_charge_per_km_paise = $1, base_radius_km = $2, gst_percentage = $3, updated_on = $4`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, s.TravelChargePerKmPaise, s.BaseRadiusKm, s.GSTPercentage, now)
	if err == nil {
		s.UpdatedOn = now
	}
	return err
}
