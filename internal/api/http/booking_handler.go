package http

import (
	"net/http"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

// BookingHandler exposes the booking lifecycle over REST. Role enforcement
// happens in two layers: route-level RequireRole guards, and ownership checks
// inside the service.
type BookingHandler struct {
	bookingSvc service.BookingService
	validate   *validator.Validate
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingSvc: bookingSvc,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *BookingHandler) decodeValid(r *http.Request, dst any) error {
	if err := decodeBody(r, dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// respond projects the booking for the caller's role before writing it out.
// Admins get the canonical record.
func (h *BookingHandler) respond(w http.ResponseWriter, r *http.Request, status int, b *domain.Booking) {
	switch actorRole(r) {
	case domain.RoleUser:
		writeJSON(w, status, domain.ProjectUserView(b))
	case domain.RoleVendor:
		writeJSON(w, status, domain.ProjectVendorView(b))
	default:
		writeJSON(w, status, b)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.CreateBooking(r.Context(), actorID(r), req.SiteAddress, req.DistanceKm, req.BaseServiceFeePaise)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusCreated, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.GetBooking(r.Context(), actorID(r), actorRole(r), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	var (
		bookings []domain.Booking
		total    int32
		err      error
	)
	switch actorRole(r) {
	case domain.RoleUser:
		bookings, total, err = h.bookingSvc.ListUserBookings(r.Context(), actorID(r), status, page, pageSize)
	case domain.RoleVendor:
		bookings, total, err = h.bookingSvc.ListVendorBookings(r.Context(), actorID(r), status, page, pageSize)
	case domain.RoleAdmin:
		bookings, total, err = h.bookingSvc.ListAllBookings(r.Context(), status, page, pageSize)
	default:
		writeError(w, http.StatusForbidden, "insufficient role")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch actorRole(r) {
	case domain.RoleUser:
		views := make([]domain.UserBookingView, 0, len(bookings))
		for i := range bookings {
			views = append(views, domain.ProjectUserView(&bookings[i]))
		}
		writeJSON(w, http.StatusOK, listResponse{Items: views, TotalCount: total, Page: page, PageSize: pageSize})
	case domain.RoleVendor:
		views := make([]domain.VendorBookingView, 0, len(bookings))
		for i := range bookings {
			views = append(views, domain.ProjectVendorView(&bookings[i]))
		}
		writeJSON(w, http.StatusOK, listResponse{Items: views, TotalCount: total, Page: page, PageSize: pageSize})
	default:
		// Admins see canonical records.
		writeJSON(w, http.StatusOK, listResponse{Items: bookings, TotalCount: total, Page: page, PageSize: pageSize})
	}
}

// Ledger returns the money movements recorded against one booking.
func (h *BookingHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.bookingSvc.ListLedgerEntries(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *BookingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req assignVendorRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.AssignVendor(r.Context(), id, req.VendorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.AcceptBooking(r.Context(), actorID(r), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) Visit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.MarkVisited(r.Context(), actorID(r), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req uploadReportRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report := domain.SurveyReport{
		WaterFound:      req.WaterFound,
		Images:          req.Images,
		ReportFileURL:   req.ReportFileURL,
		MachineReadings: req.MachineReadings,
		Notes:           req.Notes,
	}
	b, err := h.bookingSvc.UploadReport(r.Context(), actorID(r), id, report)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.ApproveReport(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) RejectReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req rejectionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.RejectReport(r.Context(), id, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) RequestTravelCharges(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req travelChargeRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.RequestTravelCharges(r.Context(), actorID(r), id, req.AmountPaise, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) ApproveTravelCharges(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.ApproveTravelCharges(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) RejectTravelCharges(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req rejectionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.RejectTravelCharges(r.Context(), id, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) UploadBorewellResult(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req borewellResultRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.UploadBorewellResult(r.Context(), actorID(r), actorRole(r), id, req.Outcome, req.Images)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) ApproveBorewellResult(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req borewellApprovalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.ApproveBorewellResult(r.Context(), id, req.Approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req settlementRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	input := domain.SettlementInput{
		IncentivePaise: req.IncentivePaise,
		PenaltyPaise:   req.PenaltyPaise,
		RefundPaise:    req.RefundPaise,
	}
	b, err := h.bookingSvc.ProcessFinalSettlement(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.bookingSvc.CancelBooking(r.Context(), actorID(r), actorRole(r), id, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}
