package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/roamstack/tourism-api/internal/domain"
	mw "github.com/roamstack/tourism-api/internal/http/middleware"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/events"
	"github.com/roamstack/tourism-api/internal/platform/payments"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type PaymentsHandler struct {
	payments postgres.PaymentsRepo
	gateway  payments.IntentCreator
	bus      events.Publisher
	currency string
}

func NewPaymentsHandler(repo postgres.PaymentsRepo, gateway payments.IntentCreator, bus events.Publisher, currency string) *PaymentsHandler {
	return &PaymentsHandler{payments: repo, gateway: gateway, bus: bus, currency: currency}
}

// CreateIntent asks the payment gateway for a card payment intent; the
// amount is the package price in major units.
func (h *PaymentsHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Price <= 0 {
		response.BadRequest(w, "a positive price is required")
		return
	}

	amountCents := int64(math.Round(in.Price * 100))
	intent, err := h.gateway.CreateIntent(r.Context(), amountCents, h.currency)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create payment intent", "error", err)
		response.InternalError(w, "failed to create payment intent")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

// Record persists a completed payment. A failed insert after a successful
// charge is not reconciled; it is logged and surfaced to the caller.
func (h *PaymentsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var p domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Email == "" || p.TransactionID == "" {
		response.BadRequest(w, "email and transactionId are required")
		return
	}

	id, err := h.payments.Insert(r.Context(), &p)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to record payment",
			"error", err, "transaction_id", p.TransactionID)
		response.InternalError(w, "failed to record payment")
		return
	}

	event := events.PaymentRecordedEvent{
		PaymentID:     id,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
	}
	if err := h.bus.Publish(r.Context(), events.PaymentRecorded, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish payment event", "error", err)
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"paymentResult": response.InsertAck{InsertedID: &id},
	})
}

// History lists the caller's own payments; the email comes from the verified
// claims, never from the query string.
func (h *PaymentsHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	list, err := h.payments.ListByEmail(r.Context(), claims.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list payments", "error", err)
		response.InternalError(w, "failed to fetch payments")
		return
	}
	if list == nil {
		list = []domain.Payment{}
	}
	response.JSON(w, http.StatusOK, list)
}
