package http

import (
	"net/http"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/security"
	"aquascout-backend/internal/service"
	"aquascout-backend/internal/storage"

	"github.com/gorilla/mux"
)

// NewRouter assembles the full REST surface. The payment webhook and artifact
// transfer endpoints sit outside auth; everything else requires a bearer
// token, with admin-only routes additionally guarded by role.
func NewRouter(
	bookingSvc service.BookingService,
	settingsSvc service.SettingsService,
	noteSvc service.NotificationService,
	tokens security.TokenManager,
	artifactStore storage.ArtifactStorage,
	webhookSecret string,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	bookings := NewBookingHandler(bookingSvc)
	payments := NewPaymentHandler(bookingSvc, webhookSecret)
	admin := NewAdminHandler(settingsSvc)
	notes := NewNotificationHandler(noteSvc)
	artifacts := NewArtifactHandler(artifactStore)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/payments/webhook", payments.Webhook).Methods(http.MethodPost)
	RegisterArtifactRoutes(router, artifactStore)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/bookings", RequireRole(domain.RoleUser, bookings.Create)).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)

	api.HandleFunc("/bookings/{id}/assign", RequireRole(domain.RoleAdmin, bookings.Assign)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/accept", RequireRole(domain.RoleVendor, bookings.Accept)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/visit", RequireRole(domain.RoleVendor, bookings.Visit)).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{id}/report", RequireRole(domain.RoleVendor, bookings.UploadReport)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/report/approve", RequireRole(domain.RoleAdmin, bookings.ApproveReport)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/report/reject", RequireRole(domain.RoleAdmin, bookings.RejectReport)).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{id}/travel-charges", RequireRole(domain.RoleVendor, bookings.RequestTravelCharges)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/travel-charges/approve", RequireRole(domain.RoleAdmin, bookings.ApproveTravelCharges)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/travel-charges/reject", RequireRole(domain.RoleAdmin, bookings.RejectTravelCharges)).Methods(http.MethodPost)

	// Either party may record the borewell outcome; ownership is enforced in
	// the service against the booking itself.
	api.HandleFunc("/bookings/{id}/borewell-result", bookings.UploadBorewellResult).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/borewell-result/approve", RequireRole(domain.RoleAdmin, bookings.ApproveBorewellResult)).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{id}/settlement", RequireRole(domain.RoleAdmin, bookings.Settle)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/ledger", RequireRole(domain.RoleAdmin, bookings.Ledger)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notes.MarkAsRead).Methods(http.MethodPost)

	api.HandleFunc("/artifacts/upload-url", artifacts.GenerateUploadURL).Methods(http.MethodGet)

	api.HandleFunc("/admin/settings/pricing", RequireRole(domain.RoleAdmin, admin.GetPricingSettings)).Methods(http.MethodGet)
	api.HandleFunc("/admin/settings/pricing", RequireRole(domain.RoleAdmin, admin.UpdatePricingSettings)).Methods(http.MethodPut)

	return router
}
