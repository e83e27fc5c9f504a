package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"aquascout-backend/internal/logger"
	"aquascout-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

const signatureHeader = "X-Webhook-Signature"

// PaymentHandler receives capture callbacks from the payment gateway. The
// endpoint is unauthenticated but each request must carry an HMAC-SHA256
// signature of the raw body under X-Webhook-Signature.
type PaymentHandler struct {
	bookingSvc    service.BookingService
	webhookSecret []byte
	validate      *validator.Validate
}

func NewPaymentHandler(bookingSvc service.BookingService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		bookingSvc:    bookingSvc,
		webhookSecret: []byte(webhookSecret),
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *PaymentHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, h.webhookSecret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	r.Body.Close()

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		logger.WarnContext(r.Context(), "Webhook signature mismatch", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var req paymentWebhookRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Failed captures are acknowledged without touching the booking; the
	// gateway retries captured events until it sees a 2xx.
	if req.Status != "captured" {
		logger.InfoContext(r.Context(), "Ignoring non-captured webhook event",
			"booking_id", req.BookingID, "installment", req.Installment, "status", req.Status)
		writeJSON(w, http.StatusOK, map[string]string{"result": "ignored"})
		return
	}

	switch req.Installment {
	case "ADVANCE":
		_, err = h.bookingSvc.ConfirmAdvancePayment(r.Context(), req.BookingID, req.TxnRef, req.AmountPaise)
	case "REMAINING":
		_, err = h.bookingSvc.ConfirmRemainingPayment(r.Context(), req.BookingID, req.TxnRef, req.AmountPaise)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}
