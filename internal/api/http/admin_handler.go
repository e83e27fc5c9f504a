package http

import (
	"net/http"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

// AdminHandler covers the admin-only configuration surface. Booking approval
// actions live on BookingHandler; this handler owns platform settings.
type AdminHandler struct {
	settingsSvc service.SettingsService
	validate    *validator.Validate
}

func NewAdminHandler(settingsSvc service.SettingsService) *AdminHandler {
	return &AdminHandler{
		settingsSvc: settingsSvc,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *AdminHandler) GetPricingSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetPricingSettings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdatePricingSettings(w http.ResponseWriter, r *http.Request) {
	var req pricingSettingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings := &domain.PricingSettings{
		TravelChargePerKmPaise: req.TravelChargePerKmPaise,
		BaseRadiusKm:           req.BaseRadiusKm,
		GSTPercentage:          req.GSTPercentage,
	}
	if err := h.settingsSvc.UpdatePricingSettings(r.Context(), settings); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
